package rdf

import (
	"strconv"
	"strings"

	"github.com/roach88/wapgraph/internal/vocab"
)

// MemberPredicate returns the container membership property rdf:_n.
func MemberPredicate(n int) Term {
	return IRI(vocab.RDFMemberPrefix + strconv.Itoa(n))
}

// MemberIndex parses rdf:_n, reporting false for any other predicate.
func MemberIndex(p Term) (int, bool) {
	if !p.IsIRI() {
		return 0, false
	}
	digits, ok := strings.CutPrefix(p.Value, vocab.RDFMemberPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Members returns the objects of the rdf:_n statements of seq ordered by n.
func Members(g *Graph, seq Term) []Term {
	type indexed struct {
		n int
		t Term
	}
	var found []indexed
	for _, t := range g.Match(seq, Any, Any) {
		if n, ok := MemberIndex(t.P); ok {
			found = append(found, indexed{n, t.O})
		}
	}
	// insertion sort: sequences arrive nearly ordered
	for i := 1; i < len(found); i++ {
		for j := i; j > 0 && found[j].n < found[j-1].n; j-- {
			found[j], found[j-1] = found[j-1], found[j]
		}
	}
	out := make([]Term, len(found))
	for i, f := range found {
		out[i] = f.t
	}
	return out
}
