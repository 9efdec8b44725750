// Package rdf provides the in-memory triple graph every stored object is
// built on.
//
// A Graph is an insertion-ordered set of Triples. Terms are IRIs, blank
// nodes or literals; the zero Term (Any) acts as a wildcard in Match.
// Blank node labels are only meaningful inside one Graph, so structural
// comparison (Equal) and content hashing (ContentHash) work on a canonical
// form in which blank nodes are relabelled deterministically.
//
// The identity functions (RootIdentity, Rename, SubGraph) locate and rewrite
// the root subject of an object graph.
package rdf
