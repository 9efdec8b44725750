package model

import (
	"time"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// TimestampLayout is the xsd:dateTime rendering used for created/modified.
const TimestampLayout = "2006-01-02T15:04:05Z"

var (
	typePredicate = rdf.IRI(vocab.RDFType)
	etagPredicate = rdf.IRI(vocab.WAPETag)
)

// Object is the capability set shared by every stored WAP object: an owned
// graph, a root identity inside it, and an etag kept outside the content.
type Object struct {
	id    rdf.Term
	etag  string
	graph *rdf.Graph
	codec codec.Codec
}

// newObject takes ownership of g, locates the root typed expectedType and
// moves the wap:etag statements about it out of the graph. The first literal
// one becomes the etag. Etag statements about other subjects are content.
func newObject(g *rdf.Graph, expectedType string, c codec.Codec) (Object, error) {
	id, err := rdf.RootIdentity(g, typePredicate, rdf.IRI(expectedType))
	if err != nil {
		return Object{}, err
	}
	o := Object{id: id, graph: g, codec: c}
	for _, t := range g.Match(id, etagPredicate, rdf.Any) {
		if o.etag == "" && t.O.IsLiteral() {
			o.etag = t.O.Value
		}
	}
	g.RemoveMatching(id, etagPredicate, rdf.Any)
	return o, nil
}

// Identity returns the root subject, which may still be a blank node.
func (o *Object) Identity() rdf.Term { return o.id }

// IRI returns the identity as a string. Blank identities render as _:label.
func (o *Object) IRI() string {
	if o.id.IsBlank() {
		return o.id.String()
	}
	return o.id.Value
}

// Graph returns the owned content graph. Callers must clone before handing
// it to another object.
func (o *Object) Graph() *rdf.Graph { return o.graph }

func (o *Object) ETag() string { return o.etag }

// ETagQuoted renders the etag for an HTTP ETag header, or "" when unset.
func (o *Object) ETagQuoted() string {
	if o.etag == "" {
		return ""
	}
	return `"` + o.etag + `"`
}

func (o *Object) SetETag(etag string) { o.etag = etag }

// ComputeETag sets the etag to the content hash of the current graph.
func (o *Object) ComputeETag() string {
	o.etag = rdf.ContentHash(o.graph)
	return o.etag
}

// Rename moves the object to a new identity. A blank identity is promoted
// without provenance; an IRI leaves an oa:via link when preserveProvenance
// is set.
func (o *Object) Rename(to rdf.Term, preserveProvenance bool) {
	if rdf.Rename(o.graph, o.id, to, preserveProvenance) || o.id == to {
		o.id = to
	}
}

func (o *Object) SetCreated(t time.Time) {
	o.graph.Set(o.id, rdf.IRI(vocab.DCTermsCreated), timestamp(t))
}

// Created reports the dcterms:created value when present.
func (o *Object) Created() (time.Time, bool) {
	return o.timeOf(vocab.DCTermsCreated)
}

func (o *Object) SetModified(t time.Time) {
	o.graph.Set(o.id, rdf.IRI(vocab.DCTermsModified), timestamp(t))
}

func (o *Object) Modified() (time.Time, bool) {
	return o.timeOf(vocab.DCTermsModified)
}

func (o *Object) IsDeleted() bool {
	v, ok := o.graph.Object(o.id, rdf.IRI(vocab.WAPDeleted))
	return ok && v.Value == "true"
}

func (o *Object) MarkDeleted() {
	o.graph.Set(o.id, rdf.IRI(vocab.WAPDeleted), rdf.TypedLiteral("true", vocab.XSDBoolean))
}

// ToText serializes the content graph. The etag is not part of the output.
func (o *Object) ToText(format string) (string, error) {
	if o.codec == nil {
		return "", waperr.New(waperr.CodeFormat, "object has no codec")
	}
	return o.codec.Serialize(o.graph, format)
}

// StorageGraph returns a copy of the content with the etag attached, which
// is what gets written to the named graph.
func (o *Object) StorageGraph() *rdf.Graph {
	g := o.graph.Clone()
	if o.etag != "" {
		g.Add(rdf.T(o.id, etagPredicate, rdf.Literal(o.etag)))
	}
	return g
}

func (o *Object) timeOf(predicate string) (time.Time, bool) {
	v, ok := o.graph.Object(o.id, rdf.IRI(predicate))
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v.Value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func timestamp(t time.Time) rdf.Term {
	return rdf.TypedLiteral(t.UTC().Format(TimestampLayout), vocab.XSDDateTime)
}
