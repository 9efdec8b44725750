// Package sequence maintains ordered, duplicate-free membership lists owned
// by containers.
//
// Two backends implement the same Manager contract. The graph backend keeps
// members as rdf:_1, rdf:_2, ... statements inside the owner's named graph,
// so every call reads the whole sequence and cost grows with its length.
// The indexed backend keeps members in a separate table with a position
// index, so appends stay flat for very large containers. Observable
// behaviour is identical; Materialize projects either one into a graph.
package sequence

import (
	"context"
	"fmt"

	"github.com/roach88/wapgraph/internal/metrics"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/store"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// Kind selects a backend.
type Kind string

const (
	KindGraph   Kind = "graph"
	KindIndexed Kind = "indexed"
)

// Manager is the sequence contract. Positions are 1-based.
type Manager interface {
	// Append adds member at the end. Appending a present member is a no-op.
	Append(ctx context.Context, owner, seq, member string) error

	// Remove deletes member; later members move up one position. Removing an
	// absent member is a no-op.
	Remove(ctx context.Context, owner, seq, member string) error

	// Count returns the number of members.
	Count(ctx context.Context, owner, seq string) (int, error)

	// Range returns the members at positions first..last inclusive. last is
	// clamped to Count.
	Range(ctx context.Context, owner, seq string, first, last int) ([]string, error)

	// Clear removes all members and leaves the sequence declared.
	Clear(ctx context.Context, owner, seq string) error

	// Kind names the backend.
	Kind() Kind
}

// GraphStore is the named-graph access the backends need.
type GraphStore interface {
	Match(ctx context.Context, graph string, s, p, o rdf.Term) ([]rdf.Triple, error)
	AddTriples(ctx context.Context, graph string, triples ...rdf.Triple) error
	RemoveTriples(ctx context.Context, graph string, triples ...rdf.Triple) error
	WithTx(ctx context.Context, kind store.TxKind, fn func() error) error
}

// MemberTable is the indexed member storage.
type MemberTable interface {
	AppendMember(ctx context.Context, owner, seq, member string) (bool, error)
	RemoveMember(ctx context.Context, owner, seq, member string) (bool, error)
	CountMembers(ctx context.Context, owner, seq string) (int, error)
	RangeMembers(ctx context.Context, owner, seq string, offset, limit int) ([]string, error)
	ClearMembers(ctx context.Context, owner, seq string) error
}

// Store is satisfied by *store.Session.
type Store interface {
	GraphStore
	MemberTable
}

// Open returns the backend named kind bound to st.
func Open(kind Kind, st Store, m *metrics.Metrics) (Manager, error) {
	switch kind {
	case KindGraph:
		return &GraphBackend{store: st, metrics: m}, nil
	case KindIndexed:
		return &IndexedBackend{store: st, metrics: m}, nil
	default:
		return nil, fmt.Errorf("unknown sequence backend %q", kind)
	}
}

// Head returns the statement declaring seq as an rdf:Seq.
func Head(seq string) rdf.Triple {
	return rdf.T(rdf.IRI(seq), rdf.IRI(vocab.RDFType), rdf.IRI(vocab.RDFSeq))
}

// Materialize writes the members of seq into g as rdf:_n statements, so a
// graph view of the sequence is available regardless of backend.
func Materialize(ctx context.Context, m Manager, g *rdf.Graph, owner, seq string) error {
	n, err := m.Count(ctx, owner, seq)
	if err != nil {
		return err
	}
	g.Add(Head(seq))
	if n == 0 {
		return nil
	}
	members, err := m.Range(ctx, owner, seq, 1, n)
	if err != nil {
		return err
	}
	s := rdf.IRI(seq)
	for i, member := range members {
		g.Add(rdf.T(s, rdf.MemberPredicate(i+1), rdf.IRI(member)))
	}
	return nil
}

func checkRange(first, last int) error {
	if first < 1 {
		return waperr.Newf(waperr.CodeInvalidRequest, "sequence range starts at %d; positions are 1-based", first)
	}
	return nil
}
