package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/wapgraph/internal/vocab"
)

var (
	anno   = IRI("http://x/wap/c1/a1")
	target = IRI("http://x/map1")
	rdfTyp = IRI(vocab.RDFType)
	hasTgt = IRI(vocab.OAHasTarget)
)

func TestGraph_AddIgnoresDuplicates(t *testing.T) {
	g := NewGraph()
	added := g.Add(
		T(anno, rdfTyp, IRI(vocab.OAAnnotation)),
		T(anno, rdfTyp, IRI(vocab.OAAnnotation)),
		T(anno, hasTgt, target),
	)

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, g.Len())
}

func TestGraph_PreservesInsertionOrder(t *testing.T) {
	first := T(anno, hasTgt, target)
	second := T(anno, rdfTyp, IRI(vocab.OAAnnotation))
	g := NewGraph(first, second)

	assert.Equal(t, []Triple{first, second}, g.Triples())

	g.Remove(first)
	g.Add(first)
	assert.Equal(t, []Triple{second, first}, g.Triples())
}

func TestGraph_MatchWildcards(t *testing.T) {
	g := NewGraph(
		T(anno, rdfTyp, IRI(vocab.OAAnnotation)),
		T(anno, hasTgt, target),
		T(target, rdfTyp, IRI("http://x/Map")),
	)

	assert.Len(t, g.Match(Any, rdfTyp, Any), 2)
	assert.Len(t, g.Match(anno, Any, Any), 2)
	assert.Len(t, g.Match(Any, Any, target), 1)
	assert.Empty(t, g.Match(target, hasTgt, Any))
	assert.Equal(t, []Term{anno, target}, g.Subjects())
}

func TestGraph_RemoveMatching(t *testing.T) {
	g := NewGraph(
		T(anno, rdfTyp, IRI(vocab.OAAnnotation)),
		T(anno, hasTgt, target),
		T(anno, hasTgt, IRI("http://x/map2")),
	)

	assert.Equal(t, 2, g.RemoveMatching(anno, hasTgt, Any))
	assert.Equal(t, 1, g.Len())
	assert.False(t, g.Has(T(anno, hasTgt, target)))
	assert.Equal(t, 0, g.RemoveMatching(anno, hasTgt, Any))
}

func TestGraph_SetReplacesValues(t *testing.T) {
	label := IRI(vocab.RDFSLabel)
	g := NewGraph(T(anno, label, Literal("old")), T(anno, label, Literal("older")))

	g.Set(anno, label, Literal("new"))

	assert.Equal(t, []Term{Literal("new")}, g.Objects(anno, label))
	o, ok := g.Object(anno, label)
	assert.True(t, ok)
	assert.Equal(t, Literal("new"), o)
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	g := NewGraph(T(anno, hasTgt, target))
	c := g.Clone()
	c.Add(T(anno, rdfTyp, IRI(vocab.OAAnnotation)))
	c.Remove(T(anno, hasTgt, target))

	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(T(anno, hasTgt, target)))
}

func TestGraph_Merge(t *testing.T) {
	g := NewGraph(T(anno, hasTgt, target))
	g.Merge(NewGraph(T(anno, hasTgt, target), T(anno, rdfTyp, IRI(vocab.OAAnnotation))))
	g.Merge(nil)

	assert.Equal(t, 2, g.Len())
}

func TestGraph_NilLen(t *testing.T) {
	var g *Graph
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Match(Any, Any, Any))
}

func TestMembers_OrderedByIndex(t *testing.T) {
	seq := IRI("http://x/wap/c1/#containers")
	g := NewGraph(
		T(seq, rdfTyp, IRI(vocab.RDFSeq)),
		T(seq, MemberPredicate(2), IRI("http://x/b")),
		T(seq, MemberPredicate(10), IRI("http://x/c")),
		T(seq, MemberPredicate(1), IRI("http://x/a")),
	)

	assert.Equal(t, []Term{IRI("http://x/a"), IRI("http://x/b"), IRI("http://x/c")}, Members(g, seq))

	n, ok := MemberIndex(MemberPredicate(12))
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	for _, p := range []Term{rdfTyp, IRI(vocab.RDFMemberPrefix + "0"), IRI(vocab.RDFMemberPrefix + "x"), Literal(vocab.RDFMemberPrefix + "1")} {
		_, ok := MemberIndex(p)
		assert.False(t, ok, p.String())
	}
}
