package model

import (
	"strings"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
)

// Annotation is an object typed oa:Annotation.
type Annotation struct {
	Object
}

// NewAnnotation takes ownership of g.
func NewAnnotation(g *rdf.Graph, c codec.Codec) (*Annotation, error) {
	obj, err := newObject(g, vocab.OAAnnotation, c)
	if err != nil {
		return nil, err
	}
	return &Annotation{Object: obj}, nil
}

// ContainerIRI derives the parent container by dropping the last path
// segment: http://x/wap/c1/a1 belongs to http://x/wap/c1/.
func (a *Annotation) ContainerIRI() string {
	iri := strings.TrimSuffix(a.id.Value, "/")
	i := strings.LastIndex(iri, "/")
	if i < 0 {
		return ""
	}
	return iri[:i+1]
}

// Targets lists the oa:hasTarget objects of the annotation.
func (a *Annotation) Targets() []rdf.Term {
	return a.graph.Objects(a.id, rdf.IRI(vocab.OAHasTarget))
}
