package rdf

import (
	"sort"

	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// bookkeepingTypes are types whose subjects are never object roots.
var bookkeepingTypes = map[Term]bool{
	IRI(vocab.RDFSeq):                  true,
	IRI(vocab.ASOrderedCollectionPage): true,
}

// RootIdentity returns the root subject of the object typed expectedType.
//
// Candidates are subjects of typePredicate statements that never occur in
// object position. Selection is deterministic: candidates carrying
// expectedType win, then IRIs before blank nodes, then the lexically
// smallest identifier. If no top-level subject carries expectedType but
// some nested one does, the smallest such subject is returned.
func RootIdentity(g *Graph, typePredicate, expectedType Term) (Term, error) {
	if g.Len() == 0 {
		return Term{}, waperr.New(waperr.CodeEmptyGraph, "graph has no statements")
	}

	objects := make(map[Term]bool)
	for _, t := range g.triples {
		objects[t.O] = true
	}

	typed := make(map[Term]bool)
	seen := make(map[Term]bool)
	var candidates []Term
	for _, t := range g.triples {
		if t.P != typePredicate {
			continue
		}
		if t.O == expectedType {
			typed[t.S] = true
		}
		if bookkeepingTypes[t.O] || objects[t.S] || seen[t.S] {
			continue
		}
		seen[t.S] = true
		candidates = append(candidates, t.S)
	}

	if len(typed) == 0 {
		return Term{}, waperr.Newf(waperr.CodeNotOfExpectedType, "no subject of type %s", expectedType.Value)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if typed[a] != typed[b] {
			return typed[a]
		}
		return identityLess(a, b)
	})
	if len(candidates) > 0 && typed[candidates[0]] {
		return candidates[0], nil
	}

	nested := make([]Term, 0, len(typed))
	for s := range typed {
		nested = append(nested, s)
	}
	sort.Slice(nested, func(i, j int) bool { return identityLess(nested[i], nested[j]) })
	return nested[0], nil
}

func identityLess(a, b Term) bool {
	if a.Kind != b.Kind {
		return a.Kind == KindIRI
	}
	return a.Value < b.Value
}

// Rename rewrites every statement where from occurs as subject or object
// to use to. Predicates are never rewritten. When from is an IRI and
// preserveProvenance is set, the statement (to oa:via from) is added; a
// blank from is promoted without provenance.
//
// Renaming an identity that does not occur, or renaming to itself, leaves
// g untouched and returns false.
func Rename(g *Graph, from, to Term, preserveProvenance bool) bool {
	if from == to {
		return false
	}

	changed := false
	out := make([]Triple, 0, len(g.triples))
	for _, t := range g.triples {
		if t.S == from {
			t.S = to
			changed = true
		}
		if t.O == from {
			t.O = to
			changed = true
		}
		out = append(out, t)
	}
	if !changed {
		return false
	}

	// Rewriting can collapse two statements into one.
	g.triples = g.triples[:0]
	g.index = make(map[Triple]int, len(out))
	g.Add(out...)

	if preserveProvenance && from.IsIRI() {
		g.Add(Triple{S: to, P: IRI(vocab.OAVia), O: from})
	}
	return true
}

// SubGraph returns the statements reachable from root by following
// subject to object links. The result shares no state with g.
func SubGraph(g *Graph, root Term) *Graph {
	out := NewGraph()
	visited := map[Term]bool{root: true}
	queue := []Term{root}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range g.Match(s, Any, Any) {
			out.Add(t)
			if t.O.IsLiteral() || visited[t.O] {
				continue
			}
			visited[t.O] = true
			queue = append(queue, t.O)
		}
	}
	return out
}

// Roots returns every top-level subject typed expectedType, in the
// deterministic order used by RootIdentity.
func Roots(g *Graph, typePredicate, expectedType Term) []Term {
	objects := make(map[Term]bool)
	for _, t := range g.triples {
		objects[t.O] = true
	}
	var roots []Term
	for _, t := range g.Match(Any, typePredicate, expectedType) {
		if !objects[t.S] {
			roots = append(roots, t.S)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return identityLess(roots[i], roots[j]) })
	return roots
}
