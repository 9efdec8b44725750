package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
)

const (
	base   = "http://x/wap/"
	c1     = base + "c1/"
	a1     = c1 + "a1"
	map1   = "http://x/map1"
	format = "nquads"
)

var (
	rdfType   = rdf.IRI(vocab.RDFType)
	hasTarget = rdf.IRI(vocab.OAHasTarget)
)

const annotationText = `<http://x/wap/c1/a1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/oa#Annotation> .
<http://x/wap/c1/a1> <http://www.w3.org/ns/oa#hasTarget> <http://x/map1> .
<http://x/wap/c1/a1> <http://www.w3.org/ns/oa#hasBody> _:b .
_:b <http://www.w3.org/1999/02/22-rdf-syntax-ns#value> "a note" .
`

const containerText = `_:c <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/ldp#BasicContainer> .
_:c <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/activitystreams#OrderedCollection> .
_:c <http://www.w3.org/2000/01/rdf-schema#label> "maps" .
`

func testFactory(t *testing.T) *Factory {
	t.Helper()
	return &Factory{Codec: codec.New(), PageSize: 10}
}

func annotationGraph(iri string) *rdf.Graph {
	id := rdf.IRI(iri)
	return rdf.NewGraph(
		rdf.T(id, rdfType, rdf.IRI(vocab.OAAnnotation)),
		rdf.T(id, hasTarget, rdf.IRI(map1)),
	)
}

func containerGraph(iri string) *rdf.Graph {
	id := rdf.IRI(iri)
	return rdf.NewGraph(
		rdf.T(id, rdfType, rdf.IRI(vocab.LDPBasicContainer)),
		rdf.T(id, rdfType, rdf.IRI(vocab.ASOrderedCollection)),
	)
}

func mustAnnotation(t *testing.T, iri string) *Annotation {
	t.Helper()
	a, err := NewAnnotation(annotationGraph(iri), codec.New())
	require.NoError(t, err)
	return a
}
