package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/wapgraph/internal/vocab"
)

func annotationWithBody(bodyLabel, selectorLabel string) *Graph {
	body := Blank(bodyLabel)
	sel := Blank(selectorLabel)
	return NewGraph(
		T(anno, rdfTyp, IRI(vocab.OAAnnotation)),
		T(anno, IRI(vocab.OAHasBody), body),
		T(body, IRI(vocab.RDFValue), Literal("find me")),
		T(anno, IRI(vocab.OAHasSelector), sel),
		T(sel, IRI(vocab.RDFValue), Literal("<svg/>")),
	)
}

func TestEqual_IgnoresBlankLabels(t *testing.T) {
	a := annotationWithBody("b0", "b1")
	b := annotationWithBody("zz", "aa")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.Equal(t, ContentHash(a), ContentHash(b))
}

func TestEqual_DetectsDifferences(t *testing.T) {
	a := annotationWithBody("b0", "b1")
	b := annotationWithBody("b0", "b1")
	b.Add(T(anno, hasTgt, target))

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, ContentHash(a), ContentHash(b))

	c := annotationWithBody("b0", "b1")
	c.Set(Blank("b0"), IRI(vocab.RDFValue), Literal("other"))
	assert.False(t, a.Equal(c))
}

func TestCanonical_InsertionOrderIndependent(t *testing.T) {
	a := NewGraph(T(anno, hasTgt, target), T(anno, rdfTyp, IRI(vocab.OAAnnotation)))
	b := NewGraph(T(anno, rdfTyp, IRI(vocab.OAAnnotation)), T(anno, hasTgt, target))

	assert.True(t, a.Equal(b))
	assert.Equal(t, []string{
		"<http://x/wap/c1/a1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/oa#Annotation> .",
		"<http://x/wap/c1/a1> <http://www.w3.org/ns/oa#hasTarget> <http://x/map1> .",
	}, a.Canonical())
}

func TestCanonical_NormalizesUnicode(t *testing.T) {
	// "é" precomposed vs. "e" + combining acute accent
	a := NewGraph(T(anno, IRI(vocab.RDFValue), Literal("caf\u00e9")))
	b := NewGraph(T(anno, IRI(vocab.RDFValue), Literal("cafe\u0301")))

	assert.True(t, a.Equal(b))
	assert.Equal(t, ContentHash(a), ContentHash(b))
}

func TestContentHash_Stable(t *testing.T) {
	g := NewGraph(T(anno, hasTgt, target))
	assert.Len(t, ContentHash(g), 64)
	assert.Equal(t, ContentHash(g), ContentHash(g.Clone()))
}

func TestRevisionHash(t *testing.T) {
	prev := ContentHash(NewGraph(T(anno, hasTgt, target)))

	next := RevisionHash(prev, "+a1")
	assert.Len(t, next, 64)
	assert.Equal(t, next, RevisionHash(prev, "+a1"))
	assert.NotEqual(t, prev, next)
	assert.NotEqual(t, next, RevisionHash(prev, "-a1"))
	assert.NotEqual(t, next, RevisionHash(next, "+a1"))
	assert.NotEqual(t, RevisionHash(prev, "+a", "1"), RevisionHash(prev, "+a1"))
}

// twoChains hangs two blank chains of the given length off anno, ending in
// the literals "left" and "right". labels names the nodes of each chain.
func twoChains(left, right []string) *Graph {
	next := IRI("http://x/next")
	g := NewGraph()
	for _, chain := range []struct {
		labels []string
		end    string
	}{{left, "left"}, {right, "right"}} {
		g.Add(T(anno, IRI(vocab.OAHasBody), Blank(chain.labels[0])))
		for i := 0; i+1 < len(chain.labels); i++ {
			g.Add(T(Blank(chain.labels[i]), next, Blank(chain.labels[i+1])))
		}
		g.Add(T(Blank(chain.labels[len(chain.labels)-1]), IRI(vocab.RDFValue), Literal(chain.end)))
	}
	return g
}

func TestEqual_DistinguishesDeepBlankChains(t *testing.T) {
	a := twoChains(
		[]string{"a1", "a2", "a3", "a4", "a5", "a6"},
		[]string{"b1", "b2", "b3", "b4", "b5", "b6"},
	)
	// Same shape; the heads of the chains swap label order while the
	// rest keep it, so a label tie-break near the root would disagree.
	b := twoChains(
		[]string{"b1", "a2", "a3", "a4", "a5", "a6"},
		[]string{"a1", "b2", "b3", "b4", "b5", "b6"},
	)

	assert.True(t, a.Equal(b))
	assert.Equal(t, ContentHash(a), ContentHash(b))

	c := twoChains(
		[]string{"a1", "a2", "a3", "a4", "a5", "a6"},
		[]string{"b1", "b2", "b3", "b4", "b5", "b6"},
	)
	c.Set(Blank("b6"), IRI(vocab.RDFValue), Literal("left"))
	assert.False(t, a.Equal(c))
}

func TestEqual_SymmetricBlanks(t *testing.T) {
	a := NewGraph(
		T(anno, IRI(vocab.OAHasBody), Blank("x")),
		T(anno, IRI(vocab.OAHasBody), Blank("y")),
		T(Blank("x"), IRI(vocab.RDFValue), Literal("same")),
		T(Blank("y"), IRI(vocab.RDFValue), Literal("same")),
	)
	b := NewGraph(
		T(anno, IRI(vocab.OAHasBody), Blank("q")),
		T(anno, IRI(vocab.OAHasBody), Blank("p")),
		T(Blank("p"), IRI(vocab.RDFValue), Literal("same")),
		T(Blank("q"), IRI(vocab.RDFValue), Literal("same")),
	)
	assert.True(t, a.Equal(b))
}
