package model

import (
	"strconv"
	"time"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// PageParams describes the page to assemble.
type PageParams struct {
	ContainerIRI   string
	PageNr         int
	PageSize       int
	TotalItems     int
	PreferIrisOnly bool
	// Embedded pages are served inside their container and omit the
	// collection-level statements.
	Embedded bool
	Modified time.Time
	Label    string
}

// Page is a transient as:OrderedCollectionPage over a container view. It is
// filled with AddAnnotation or AddAnnotationIri and sealed by CloseAdding.
type Page struct {
	params PageParams
	id     rdf.Term
	graph  *rdf.Graph
	items  *itemList
	codec  codec.Codec
}

// NewPage builds the page skeleton: type, collection links, start index and
// next/prev. The items list starts empty.
func NewPage(p PageParams, c codec.Codec) (*Page, error) {
	if p.PageSize < 1 {
		return nil, waperr.Newf(waperr.CodeInvalidRequest, "page size must be positive, got %d", p.PageSize)
	}
	if p.PageNr < 0 {
		return nil, waperr.Newf(waperr.CodeInvalidRequest, "page number must not be negative, got %d", p.PageNr)
	}

	pg := Pagination{TotalItems: p.TotalItems, PageSize: p.PageSize}
	id := rdf.IRI(PageIRI(p.ContainerIRI, p.PreferIrisOnly, p.PageNr))
	g := rdf.NewGraph(rdf.T(id, typePredicate, rdf.IRI(vocab.ASOrderedCollectionPage)))

	if !p.Embedded {
		view := rdf.IRI(ViewIRI(p.ContainerIRI, p.PreferIrisOnly))
		g.Add(
			rdf.T(id, rdf.IRI(vocab.ASPartOf), view),
			rdf.T(view, rdf.IRI(vocab.ASTotalItems), count(p.TotalItems)),
		)
		if !p.Modified.IsZero() {
			g.Add(rdf.T(view, rdf.IRI(vocab.DCTermsModified), timestamp(p.Modified)))
		}
		if n := pg.PageCount(); n > 0 {
			g.Add(
				rdf.T(view, rdf.IRI(vocab.ASFirst), rdf.IRI(PageIRI(p.ContainerIRI, p.PreferIrisOnly, 0))),
				rdf.T(view, rdf.IRI(vocab.ASLast), rdf.IRI(PageIRI(p.ContainerIRI, p.PreferIrisOnly, n-1))),
			)
		}
		if p.Label != "" {
			g.Add(rdf.T(view, rdf.IRI(vocab.RDFSLabel), rdf.Literal(p.Label)))
		}
	}

	g.Add(rdf.T(id, rdf.IRI(vocab.ASStartIndex), count(pg.FirstPosition(p.PageNr))))
	if pg.HasNext(p.PageNr) {
		g.Add(rdf.T(id, rdf.IRI(vocab.ASNext), rdf.IRI(PageIRI(p.ContainerIRI, p.PreferIrisOnly, p.PageNr+1))))
	}
	if pg.HasPrev(p.PageNr) {
		g.Add(rdf.T(id, rdf.IRI(vocab.ASPrev), rdf.IRI(PageIRI(p.ContainerIRI, p.PreferIrisOnly, p.PageNr-1))))
	}

	return &Page{params: p, id: id, graph: g, items: newItemList(g, id), codec: c}, nil
}

func (p *Page) IRI() string { return p.id.Value }

func (p *Page) Params() PageParams { return p.params }

func (p *Page) Graph() *rdf.Graph { return p.graph }

// AddAnnotation appends a full annotation and merges its graph. Only legal
// on pages that do not prefer IRIs.
func (p *Page) AddAnnotation(a *Annotation) error {
	if p.items.sealed {
		return waperr.New(waperr.CodePageSealed, "page is closed for adding")
	}
	if p.params.PreferIrisOnly {
		return waperr.New(waperr.CodePreferenceMismatch, "page prefers IRIs; add the annotation IRI instead")
	}
	if err := p.items.append(a.Identity()); err != nil {
		return err
	}
	p.graph.Merge(a.Graph())
	return nil
}

// AddAnnotationIri appends a bare annotation reference. Only legal on pages
// that prefer IRIs.
func (p *Page) AddAnnotationIri(iri string) error {
	if p.items.sealed {
		return waperr.New(waperr.CodePageSealed, "page is closed for adding")
	}
	if !p.params.PreferIrisOnly {
		return waperr.New(waperr.CodePreferenceMismatch, "page embeds annotations; add the full annotation instead")
	}
	return p.items.append(rdf.IRI(iri))
}

// CloseAdding terminates the items list. It is idempotent.
func (p *Page) CloseAdding() { p.items.seal() }

func (p *Page) Sealed() bool { return p.items.sealed }

// Items returns the listed identities in order.
func (p *Page) Items() []rdf.Term {
	out := make([]rdf.Term, len(p.items.items))
	copy(out, p.items.items)
	return out
}

// ETagQuoted is always empty: pages are derived views without an etag.
func (p *Page) ETagQuoted() string { return "" }

func (p *Page) ToText(format string) (string, error) {
	if p.codec == nil {
		return "", waperr.New(waperr.CodeFormat, "page has no codec")
	}
	return p.codec.Serialize(p.graph, format)
}

func count(n int) rdf.Term {
	return rdf.TypedLiteral(strconv.Itoa(n), vocab.XSDNonNegativeInteger)
}
