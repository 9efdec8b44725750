package model

import (
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// itemList is an append-only rdf:first/rdf:rest list written into a graph.
// Cells are fresh blank nodes; the list ends with rdf:nil once sealed.
type itemList struct {
	graph  *rdf.Graph
	owner  rdf.Term
	tail   rdf.Term // last cell, zero until the first append
	items  []rdf.Term
	sealed bool
}

func newItemList(g *rdf.Graph, owner rdf.Term) *itemList {
	return &itemList{graph: g, owner: owner}
}

func (l *itemList) append(item rdf.Term) error {
	if l.sealed {
		return waperr.New(waperr.CodePageSealed, "page is closed for adding")
	}
	cell := rdf.NewBlank()
	if l.tail.IsAny() {
		l.graph.Add(rdf.T(l.owner, rdf.IRI(vocab.ASItems), cell))
	} else {
		l.graph.Add(rdf.T(l.tail, rdf.IRI(vocab.RDFRest), cell))
	}
	l.graph.Add(rdf.T(cell, rdf.IRI(vocab.RDFFirst), item))
	l.tail = cell
	l.items = append(l.items, item)
	return nil
}

// seal terminates the list. Sealing twice is a no-op.
func (l *itemList) seal() {
	if l.sealed {
		return
	}
	nilTerm := rdf.IRI(vocab.RDFNil)
	if l.tail.IsAny() {
		l.graph.Add(rdf.T(l.owner, rdf.IRI(vocab.ASItems), nilTerm))
	} else {
		l.graph.Add(rdf.T(l.tail, rdf.IRI(vocab.RDFRest), nilTerm))
	}
	l.sealed = true
}
