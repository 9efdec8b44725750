// Package queryir provides the graph-pattern intermediate representation
// (IR) used by dynamic annotation queries.
//
// The IR sits between the filter builder and the backend that runs it:
//
//	[filters] → [querybuild] → [Query IR] → [querysql]  (SQLite, executed)
//	                                      → [SPARQL]    (rendered for --explain)
//
// The IR is deliberately a small fragment of SPARQL: one projected graph
// variable, a conjunctive group of triple patterns, unions of groups, and a
// substring filter. Everything a WADM property filter needs fits in it and
// nothing else does.
//
// SEALED INTERFACES:
//
// Query, Pattern and Node are sealed with marker methods, so backends can
// switch exhaustively:
//
//	switch p := pattern.(type) {
//	case Triple:
//	case Group:
//	case Union:
//	case Contains:
//	}
//
// SCOPE:
//
// Select.Where is evaluated inside GRAPH ?g. Top-level clauses are
// conjoined and share only the graph scope; variables are local to the
// group (or union alternative) that mentions them. A Contains filter must
// name a variable bound in object position of a triple in its own group.
package queryir
