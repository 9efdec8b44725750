package sequence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wapgraph/internal/metrics"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/store"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

const (
	owner = "http://x/wap/c1/"
	seq   = owner + vocab.AnnotationSeqSuffix
)

var ctx = context.Background()

// openBackend returns a manager of the given kind over a fresh store whose
// owner graph already declares the sequence.
func openBackend(t *testing.T, kind Kind) (Manager, *store.Session, *metrics.Metrics) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "seq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sess := st.Session()
	require.NoError(t, sess.AddTriples(ctx, owner, Head(seq)))

	m := metrics.New(nil)
	mgr, err := Open(kind, sess, m)
	require.NoError(t, err)
	return mgr, sess, m
}

func memberIRI(n string) string { return "http://x/wap/c1/" + n }

// forEachBackend runs the same contract test against both backends.
func forEachBackend(t *testing.T, fn func(t *testing.T, m Manager, sess *store.Session)) {
	for _, kind := range []Kind{KindGraph, KindIndexed} {
		t.Run(string(kind), func(t *testing.T) {
			m, sess, _ := openBackend(t, kind)
			fn(t, m, sess)
		})
	}
}

func TestContract_AppendIncrementsCount(t *testing.T) {
	forEachBackend(t, func(t *testing.T, m Manager, _ *store.Session) {
		for i, name := range []string{"a1", "a2", "a3"} {
			before, err := m.Count(ctx, owner, seq)
			require.NoError(t, err)
			require.NoError(t, m.Append(ctx, owner, seq, memberIRI(name)))
			after, err := m.Count(ctx, owner, seq)
			require.NoError(t, err)
			assert.Equal(t, before+1, after, "append %d", i)
		}
	})
}

func TestContract_DuplicateAppendIsNoOp(t *testing.T) {
	forEachBackend(t, func(t *testing.T, m Manager, _ *store.Session) {
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a2")))
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))

		members, err := m.Range(ctx, owner, seq, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{memberIRI("a1"), memberIRI("a2")}, members)
	})
}

func TestContract_RemoveKeepsOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, m Manager, _ *store.Session) {
		for _, name := range []string{"a1", "a2", "a3", "a4"} {
			require.NoError(t, m.Append(ctx, owner, seq, memberIRI(name)))
		}

		require.NoError(t, m.Remove(ctx, owner, seq, memberIRI("a2")))
		require.NoError(t, m.Remove(ctx, owner, seq, memberIRI("absent")))
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a5")))

		n, err := m.Count(ctx, owner, seq)
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		members, err := m.Range(ctx, owner, seq, 1, n)
		require.NoError(t, err)
		assert.Equal(t, []string{memberIRI("a1"), memberIRI("a3"), memberIRI("a4"), memberIRI("a5")}, members)

		second, err := m.Range(ctx, owner, seq, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{memberIRI("a3"), memberIRI("a4")}, second)
	})
}

func TestContract_RangeBounds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, m Manager, _ *store.Session) {
		for _, name := range []string{"a1", "a2", "a3"} {
			require.NoError(t, m.Append(ctx, owner, seq, memberIRI(name)))
		}

		clamped, err := m.Range(ctx, owner, seq, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{memberIRI("a3")}, clamped)

		beyond, err := m.Range(ctx, owner, seq, 4, 6)
		require.NoError(t, err)
		assert.Empty(t, beyond)

		inverted, err := m.Range(ctx, owner, seq, 3, 2)
		require.NoError(t, err)
		assert.Empty(t, inverted)

		_, err = m.Range(ctx, owner, seq, 0, 2)
		assert.ErrorIs(t, err, waperr.ErrInvalidRequest)
	})
}

func TestContract_ClearLeavesSequenceDeclared(t *testing.T) {
	forEachBackend(t, func(t *testing.T, m Manager, sess *store.Session) {
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a2")))

		require.NoError(t, m.Clear(ctx, owner, seq))

		n, err := m.Count(ctx, owner, seq)
		require.NoError(t, err)
		assert.Zero(t, n)

		stmts, err := sess.Match(ctx, owner, rdf.IRI(seq), rdf.Any, rdf.Any)
		require.NoError(t, err)
		assert.Equal(t, []rdf.Triple{Head(seq)}, stmts)

		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a3")))
		members, err := m.Range(ctx, owner, seq, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{memberIRI("a3")}, members)
	})
}

func TestContract_SequencesAreScoped(t *testing.T) {
	forEachBackend(t, func(t *testing.T, m Manager, _ *store.Session) {
		containers := owner + vocab.ContainerSeqSuffix
		require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))
		require.NoError(t, m.Append(ctx, owner, containers, memberIRI("sub/")))

		n, err := m.Count(ctx, owner, containers)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = m.Count(ctx, owner, seq)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestMaterialize_IdenticalAcrossBackends(t *testing.T) {
	var views []*rdf.Graph
	for _, kind := range []Kind{KindGraph, KindIndexed} {
		m, _, _ := openBackend(t, kind)
		for _, name := range []string{"a1", "a2", "a3"} {
			require.NoError(t, m.Append(ctx, owner, seq, memberIRI(name)))
		}
		require.NoError(t, m.Remove(ctx, owner, seq, memberIRI("a1")))

		g := rdf.NewGraph()
		require.NoError(t, Materialize(ctx, m, g, owner, seq))
		views = append(views, g)
	}

	assert.True(t, views[0].Equal(views[1]))
	assert.True(t, views[0].Has(rdf.T(rdf.IRI(seq), rdf.MemberPredicate(1), rdf.IRI(memberIRI("a2")))))
	assert.True(t, views[0].Has(rdf.T(rdf.IRI(seq), rdf.MemberPredicate(2), rdf.IRI(memberIRI("a3")))))
	assert.Equal(t, 3, views[0].Len())
}

func TestGraphBackend_StoresMembersInOwnerGraph(t *testing.T) {
	m, sess, _ := openBackend(t, KindGraph)
	require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))

	stmts, err := sess.Match(ctx, owner, rdf.IRI(seq), rdf.MemberPredicate(1), rdf.Any)
	require.NoError(t, err)
	assert.Equal(t, []rdf.Triple{rdf.T(rdf.IRI(seq), rdf.MemberPredicate(1), rdf.IRI(memberIRI("a1")))}, stmts)
}

func TestIndexedBackend_LeavesOwnerGraphUntouched(t *testing.T) {
	m, sess, _ := openBackend(t, KindIndexed)
	require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))

	stmts, err := sess.Match(ctx, owner, rdf.Any, rdf.Any, rdf.Any)
	require.NoError(t, err)
	assert.Equal(t, []rdf.Triple{Head(seq)}, stmts)
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open("linked-list", nil, nil)
	assert.Error(t, err)
}

func TestMetrics_CountsOperations(t *testing.T) {
	m, _, reg := openBackend(t, KindIndexed)
	require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a1")))
	require.NoError(t, m.Append(ctx, owner, seq, memberIRI("a2")))
	_, err := m.Count(ctx, owner, seq)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.SequenceOps.WithLabelValues("indexed", "append")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.SequenceOps.WithLabelValues("indexed", "count")))
}
