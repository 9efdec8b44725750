package rdf

// Graph is a mutable, insertion-ordered set of triples.
//
// Iteration order is the order in which statements were first added, which
// keeps serialization and root selection reproducible. A Graph is not safe
// for concurrent mutation; each object owns its graph exclusively.
type Graph struct {
	triples []Triple
	index   map[Triple]int
}

// NewGraph returns a graph holding the given statements.
func NewGraph(triples ...Triple) *Graph {
	g := &Graph{index: make(map[Triple]int, len(triples))}
	g.Add(triples...)
	return g
}

// Len returns the number of statements.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.triples)
}

// Triples returns a copy of the statements in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Has reports whether the statement is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.index[t]
	return ok
}

// Add inserts statements, ignoring ones already present. It returns the
// number of statements actually added.
func (g *Graph) Add(triples ...Triple) int {
	if g.index == nil {
		g.index = make(map[Triple]int)
	}
	added := 0
	for _, t := range triples {
		if _, ok := g.index[t]; ok {
			continue
		}
		g.index[t] = len(g.triples)
		g.triples = append(g.triples, t)
		added++
	}
	return added
}

// Remove deletes statements. Absent statements are ignored.
func (g *Graph) Remove(triples ...Triple) int {
	drop := make(map[Triple]bool, len(triples))
	for _, t := range triples {
		if g.Has(t) {
			drop[t] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	g.rebuild(func(t Triple) bool { return !drop[t] })
	return len(drop)
}

// RemoveMatching deletes every statement fitting the pattern and returns
// how many were removed.
func (g *Graph) RemoveMatching(s, p, o Term) int {
	before := len(g.triples)
	g.rebuild(func(t Triple) bool { return !t.Matches(s, p, o) })
	return before - len(g.triples)
}

// rebuild keeps the statements for which keep returns true.
func (g *Graph) rebuild(keep func(Triple) bool) {
	kept := g.triples[:0]
	for _, t := range g.triples {
		if keep(t) {
			kept = append(kept, t)
		}
	}
	g.triples = kept
	g.reindex()
}

func (g *Graph) reindex() {
	g.index = make(map[Triple]int, len(g.triples))
	for i, t := range g.triples {
		g.index[t] = i
	}
}

// Match returns the statements fitting the pattern in insertion order.
func (g *Graph) Match(s, p, o Term) []Triple {
	if g == nil {
		return nil
	}
	var out []Triple
	for _, t := range g.triples {
		if t.Matches(s, p, o) {
			out = append(out, t)
		}
	}
	return out
}

// Objects returns the objects of statements with the given subject and predicate.
func (g *Graph) Objects(s, p Term) []Term {
	var out []Term
	for _, t := range g.Match(s, p, Any) {
		out = append(out, t.O)
	}
	return out
}

// Object returns the first object for subject and predicate.
func (g *Graph) Object(s, p Term) (Term, bool) {
	for _, t := range g.triples {
		if t.Matches(s, p, Any) {
			return t.O, true
		}
	}
	return Term{}, false
}

// Subjects returns the distinct subjects in first-seen order.
func (g *Graph) Subjects() []Term {
	seen := make(map[Term]bool)
	var out []Term
	for _, t := range g.triples {
		if !seen[t.S] {
			seen[t.S] = true
			out = append(out, t.S)
		}
	}
	return out
}

// Set replaces every (s, p, *) statement with the single statement (s, p, o).
func (g *Graph) Set(s, p, o Term) {
	g.RemoveMatching(s, p, Any)
	g.Add(Triple{S: s, P: p, O: o})
}

// Clone returns an independent copy.
func (g *Graph) Clone() *Graph {
	return NewGraph(g.triples...)
}

// Merge adds every statement of other to g.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	g.Add(other.triples...)
}
