package model

import (
	"time"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// Factory builds model objects from text and stored graphs with one codec
// and page size.
type Factory struct {
	Codec    codec.Codec
	PageSize int
	Clock    Clock
}

// NewFactory returns a factory using the system clock.
func NewFactory(c codec.Codec, pageSize int) *Factory {
	return &Factory{Codec: c, PageSize: pageSize, Clock: SystemClock{}}
}

// CreateAnnotation parses text holding a single annotation.
func (f *Factory) CreateAnnotation(text, format string) (*Annotation, error) {
	g, err := f.Codec.Parse(text, format)
	if err != nil {
		return nil, err
	}
	return NewAnnotation(g, f.Codec)
}

// CreateAnnotations parses text that may hold several annotations and
// returns one object per top-level annotation, each over the statements
// reachable from its root.
func (f *Factory) CreateAnnotations(text, format string) ([]*Annotation, error) {
	g, err := f.Codec.Parse(text, format)
	if err != nil {
		return nil, err
	}
	if g.Len() == 0 {
		return nil, waperr.New(waperr.CodeEmptyGraph, "graph has no statements")
	}
	roots := rdf.Roots(g, typePredicate, rdf.IRI(vocab.OAAnnotation))
	if len(roots) <= 1 {
		a, err := NewAnnotation(g, f.Codec)
		if err != nil {
			return nil, err
		}
		return []*Annotation{a}, nil
	}

	out := make([]*Annotation, 0, len(roots))
	for _, root := range roots {
		a, err := NewAnnotation(rdf.SubGraph(g, root), f.Codec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// CreateContainer parses a container and renames it to newIdentity when
// that is non-empty.
func (f *Factory) CreateContainer(text, format, newIdentity string) (*Container, error) {
	g, err := f.Codec.Parse(text, format)
	if err != nil {
		return nil, err
	}
	return NewContainer(g, newIdentity, Preferences{}, f.Codec)
}

// AnnotationFromGraph wraps a stored graph. The graph is cloned.
func (f *Factory) AnnotationFromGraph(g *rdf.Graph) (*Annotation, error) {
	return NewAnnotation(g.Clone(), f.Codec)
}

// ContainerFromGraph wraps a stored graph. The graph is cloned.
func (f *Factory) ContainerFromGraph(g *rdf.Graph, prefs Preferences) (*Container, error) {
	return NewContainer(g.Clone(), "", prefs, f.Codec)
}

// NewPage builds a page, defaulting the page size to the factory's.
func (f *Factory) NewPage(p PageParams) (*Page, error) {
	if p.PageSize == 0 {
		p.PageSize = f.PageSize
	}
	return NewPage(p, f.Codec)
}

// OutputView derives the servable view of a container whose graph already
// has its sequences materialized.
func (f *Factory) OutputView(c *Container) (*OutputView, error) {
	g, err := DeriveOutputView(c.Graph(), c.Preferences(), f.PageSize)
	if err != nil {
		return nil, err
	}
	return &OutputView{
		id:    rdf.IRI(ViewIRI(c.IRI(), c.Preferences().PreferIrisOnly)),
		base:  c.IRI(),
		etag:  c.ETag(),
		graph: g,
		codec: f.Codec,
	}, nil
}

// PublishAnnotation moves a freshly parsed annotation to iri, stamps
// dcterms:created and computes its etag.
func (f *Factory) PublishAnnotation(a *Annotation, iri string) {
	a.Rename(rdf.IRI(iri), true)
	a.SetCreated(f.now())
	a.ComputeETag()
}

// PublishContainer stamps dcterms:created, defaults the label and computes
// the etag of a container that already carries its final identity.
func (f *Factory) PublishContainer(c *Container) {
	c.SetCreated(f.now())
	c.EnsureLabel()
	c.ComputeETag()
}

func (f *Factory) now() time.Time {
	if f.Clock == nil {
		return time.Now()
	}
	return f.Clock.Now()
}
