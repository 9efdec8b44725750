package sequence

import (
	"context"
	"sort"

	"github.com/roach88/wapgraph/internal/metrics"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/store"
)

// GraphBackend stores members as rdf:_n statements in the owner's graph.
type GraphBackend struct {
	store   GraphStore
	metrics *metrics.Metrics
}

type member struct {
	index int
	value rdf.Term
}

func (b *GraphBackend) Kind() Kind { return KindGraph }

func (b *GraphBackend) members(ctx context.Context, owner, seq string) ([]member, error) {
	triples, err := b.store.Match(ctx, owner, rdf.IRI(seq), rdf.Any, rdf.Any)
	if err != nil {
		return nil, err
	}
	var out []member
	for _, t := range triples {
		if n, ok := rdf.MemberIndex(t.P); ok {
			out = append(out, member{index: n, value: t.O})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out, nil
}

func (b *GraphBackend) Append(ctx context.Context, owner, seq, value string) error {
	b.metrics.ObserveSequenceOp(string(KindGraph), "append")
	return b.store.WithTx(ctx, store.TxWrite, func() error {
		members, err := b.members(ctx, owner, seq)
		if err != nil {
			return err
		}
		next := 1
		for _, m := range members {
			if m.value == rdf.IRI(value) {
				return nil
			}
			next = m.index + 1
		}
		return b.store.AddTriples(ctx, owner, rdf.T(rdf.IRI(seq), rdf.MemberPredicate(next), rdf.IRI(value)))
	})
}

func (b *GraphBackend) Remove(ctx context.Context, owner, seq, value string) error {
	b.metrics.ObserveSequenceOp(string(KindGraph), "remove")
	return b.store.WithTx(ctx, store.TxWrite, func() error {
		members, err := b.members(ctx, owner, seq)
		if err != nil {
			return err
		}
		at := -1
		for i, m := range members {
			if m.value == rdf.IRI(value) {
				at = i
				break
			}
		}
		if at < 0 {
			return nil
		}

		s := rdf.IRI(seq)
		var drop, add []rdf.Triple
		for i := at; i < len(members); i++ {
			drop = append(drop, rdf.T(s, rdf.MemberPredicate(members[i].index), members[i].value))
			if i > at {
				add = append(add, rdf.T(s, rdf.MemberPredicate(i), members[i].value))
			}
		}
		if err := b.store.RemoveTriples(ctx, owner, drop...); err != nil {
			return err
		}
		if len(add) == 0 {
			return nil
		}
		return b.store.AddTriples(ctx, owner, add...)
	})
}

func (b *GraphBackend) Count(ctx context.Context, owner, seq string) (int, error) {
	b.metrics.ObserveSequenceOp(string(KindGraph), "count")
	members, err := b.members(ctx, owner, seq)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

func (b *GraphBackend) Range(ctx context.Context, owner, seq string, first, last int) ([]string, error) {
	b.metrics.ObserveSequenceOp(string(KindGraph), "range")
	if err := checkRange(first, last); err != nil {
		return nil, err
	}
	members, err := b.members(ctx, owner, seq)
	if err != nil {
		return nil, err
	}
	if last > len(members) {
		last = len(members)
	}
	var out []string
	for i := first - 1; i < last; i++ {
		out = append(out, members[i].value.Value)
	}
	return out, nil
}

func (b *GraphBackend) Clear(ctx context.Context, owner, seq string) error {
	b.metrics.ObserveSequenceOp(string(KindGraph), "clear")
	return b.store.WithTx(ctx, store.TxWrite, func() error {
		triples, err := b.store.Match(ctx, owner, rdf.IRI(seq), rdf.Any, rdf.Any)
		if err != nil {
			return err
		}
		if err := b.store.RemoveTriples(ctx, owner, triples...); err != nil {
			return err
		}
		return b.store.AddTriples(ctx, owner, Head(seq))
	})
}
