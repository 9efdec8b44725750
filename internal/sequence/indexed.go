package sequence

import (
	"context"

	"github.com/roach88/wapgraph/internal/metrics"
	"github.com/roach88/wapgraph/internal/store"
)

// IndexedBackend stores members in the sequence member table.
type IndexedBackend struct {
	store   Store
	metrics *metrics.Metrics
}

func (b *IndexedBackend) Kind() Kind { return KindIndexed }

func (b *IndexedBackend) Append(ctx context.Context, owner, seq, member string) error {
	b.metrics.ObserveSequenceOp(string(KindIndexed), "append")
	_, err := b.store.AppendMember(ctx, owner, seq, member)
	return err
}

func (b *IndexedBackend) Remove(ctx context.Context, owner, seq, member string) error {
	b.metrics.ObserveSequenceOp(string(KindIndexed), "remove")
	_, err := b.store.RemoveMember(ctx, owner, seq, member)
	return err
}

func (b *IndexedBackend) Count(ctx context.Context, owner, seq string) (int, error) {
	b.metrics.ObserveSequenceOp(string(KindIndexed), "count")
	return b.store.CountMembers(ctx, owner, seq)
}

func (b *IndexedBackend) Range(ctx context.Context, owner, seq string, first, last int) ([]string, error) {
	b.metrics.ObserveSequenceOp(string(KindIndexed), "range")
	if err := checkRange(first, last); err != nil {
		return nil, err
	}
	if last < first {
		return nil, nil
	}
	return b.store.RangeMembers(ctx, owner, seq, first-1, last-first+1)
}

// Clear empties the member table rows and re-declares the sequence in the
// owner's graph.
func (b *IndexedBackend) Clear(ctx context.Context, owner, seq string) error {
	b.metrics.ObserveSequenceOp(string(KindIndexed), "clear")
	return b.store.WithTx(ctx, store.TxWrite, func() error {
		if err := b.store.ClearMembers(ctx, owner, seq); err != nil {
			return err
		}
		return b.store.AddTriples(ctx, owner, Head(seq))
	})
}
