package model

import (
	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// DeriveOutputView returns the servable representation of a stored
// container graph. The stored graph must already carry its sequences as
// rdf:_n statements (see sequence.Materialize). The input is not modified.
//
// The result is renamed to the preference-scoped view IRI, carries
// as:totalItems, as:first/as:last when there are annotations, and one
// ldp:contains per sub-container unless PreferMinimal is set. The two
// sequence subgraphs are dropped.
func DeriveOutputView(stored *rdf.Graph, prefs Preferences, pageSize int) (*rdf.Graph, error) {
	out := stored.Clone()
	root, err := rdf.RootIdentity(out, typePredicate, rdf.IRI(vocab.LDPBasicContainer))
	if err != nil {
		return nil, waperr.Wrap(waperr.CodeInvalidContainer, err, "stored graph is not a container")
	}
	if !root.IsIRI() {
		return nil, waperr.New(waperr.CodeInvalidContainer, "container identity is not an IRI").WithIdentity(root.String())
	}

	base := root.Value
	annoSeq := rdf.IRI(base + vocab.AnnotationSeqSuffix)
	contSeq := rdf.IRI(base + vocab.ContainerSeqSuffix)

	// the rdf:type rdf:Seq head is one of the statements counted here
	annoCount := len(out.Match(annoSeq, rdf.Any, rdf.Any)) - 1
	if annoCount < 0 {
		annoCount = 0
	}
	var contains []rdf.Term
	if !prefs.PreferMinimal {
		contains = rdf.Members(out, contSeq)
	}
	out.RemoveMatching(annoSeq, rdf.Any, rdf.Any)
	out.RemoveMatching(contSeq, rdf.Any, rdf.Any)

	view := rdf.IRI(ViewIRI(base, prefs.PreferIrisOnly))
	rdf.Rename(out, root, view, false)

	out.Add(rdf.T(view, rdf.IRI(vocab.ASTotalItems), count(annoCount)))
	if annoCount != 0 {
		pg := Pagination{TotalItems: annoCount, PageSize: pageSize}
		out.Add(
			rdf.T(view, rdf.IRI(vocab.ASFirst), rdf.IRI(PageIRI(base, prefs.PreferIrisOnly, 0))),
			rdf.T(view, rdf.IRI(vocab.ASLast), rdf.IRI(PageIRI(base, prefs.PreferIrisOnly, pg.PageCount()-1))),
		)
	}
	for _, m := range contains {
		out.Add(rdf.T(view, rdf.IRI(vocab.LDPContains), m))
	}
	return out, nil
}

// OutputView is a derived container representation ready to serve.
type OutputView struct {
	id    rdf.Term
	base  string
	etag  string
	graph *rdf.Graph
	codec codec.Codec
}

func (v *OutputView) IRI() string { return v.id.Value }

// ContainerIRI is the stored identity the view was derived from.
func (v *OutputView) ContainerIRI() string { return v.base }

func (v *OutputView) Graph() *rdf.Graph { return v.graph }

// ETag is the etag of the stored container.
func (v *OutputView) ETag() string { return v.etag }

func (v *OutputView) ETagQuoted() string {
	if v.etag == "" {
		return ""
	}
	return `"` + v.etag + `"`
}

func (v *OutputView) ToText(format string) (string, error) {
	if v.codec == nil {
		return "", waperr.New(waperr.CodeFormat, "view has no codec")
	}
	return v.codec.Serialize(v.graph, format)
}
