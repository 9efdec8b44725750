package queryir

import "github.com/roach88/wapgraph/internal/rdf"

// Query is a complete query. Sealed to this package.
type Query interface {
	queryNode()
}

// Pattern is an element of a graph pattern. Sealed to this package.
//
// Pattern types:
//   - Triple: one statement pattern
//   - Group: conjunction of patterns
//   - Union: disjunction of groups
//   - Contains: substring filter on a bound variable
type Pattern interface {
	patternNode()
}

// Node is a position in a triple pattern: a Var or a Const.
type Node interface {
	nodeNode()
}

// Var is a named variable, rendered ?name.
type Var string

func (Var) nodeNode() {}

// Const is a fixed term.
type Const struct {
	Term rdf.Term
}

func (Const) nodeNode() {}

// IRI is shorthand for a constant IRI node.
func IRI(v string) Const { return Const{Term: rdf.IRI(v)} }

// Literal is shorthand for a constant plain literal node.
func Literal(v string) Const { return Const{Term: rdf.Literal(v)} }

// Select returns the distinct named graphs in which Where holds.
//
// Semantics:
//
//	SELECT DISTINCT ?<Graph> WHERE { GRAPH ?<Graph> { <Where> } } ORDER BY ?<Graph>
type Select struct {
	Graph Var
	Where Group
}

func (Select) queryNode() {}

// Triple matches statements (S, P, O).
type Triple struct {
	S, P, O Node
}

func (Triple) patternNode() {}

// Group holds when every pattern in it holds for one variable assignment.
type Group struct {
	Patterns []Pattern
}

func (Group) patternNode() {}

// Union holds when any alternative holds.
//
// Example (target given directly or through a specific resource):
//
//	Union{Alternatives: []Group{
//	  {Patterns: []Pattern{Triple{S: Var("s"), P: IRI(oa+"hasTarget"), O: IRI(v)}}},
//	  {Patterns: []Pattern{
//	    Triple{S: Var("s"), P: IRI(oa+"hasTarget"), O: Var("t")},
//	    Triple{S: Var("t"), P: IRI(oa+"hasSource"), O: IRI(v)},
//	  }},
//	}}
type Union struct {
	Alternatives []Group
}

func (Union) patternNode() {}

// Contains holds when the string form of Var contains Substring.
// Blank nodes have no string form and never match.
type Contains struct {
	Var       Var
	Substring string
}

func (Contains) patternNode() {}

// T builds a triple pattern.
func T(s, p, o Node) Triple { return Triple{S: s, P: p, O: o} }

// Conj builds a group.
func Conj(patterns ...Pattern) Group { return Group{Patterns: patterns} }

// Or builds a union.
func Or(alternatives ...Group) Union { return Union{Alternatives: alternatives} }
