package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTransaction("write", "commit")
	m.ObserveSequenceOp("indexed", "append")
	m.ObserveOperation("get_page", time.Now(), nil)
	m.ObserveQueryMatches(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["wapgraph_store_transactions_total"])
	assert.True(t, names["wapgraph_sequence_operations_total"])
	assert.True(t, names["wapgraph_service_operations_total"])
	assert.True(t, names["wapgraph_service_operation_duration_seconds"])
	assert.True(t, names["wapgraph_query_matches"])
}

func TestObserveOperation_Status(t *testing.T) {
	m := New(nil)

	m.ObserveOperation("post_annotation", time.Now(), nil)
	m.ObserveOperation("post_annotation", time.Now(), errors.New("boom"))
	m.ObserveOperation("post_annotation", time.Now(), errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("post_annotation", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("post_annotation", "error")))
}

func TestCounters(t *testing.T) {
	m := New(nil)

	m.ObserveTransaction("read", "commit")
	m.ObserveTransaction("read", "commit")
	m.ObserveSequenceOp("graph", "remove")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transactions.WithLabelValues("read", "commit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SequenceOps.WithLabelValues("graph", "remove")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveTransaction("write", "abort")
		m.ObserveSequenceOp("graph", "append")
		m.ObserveOperation("get_page", time.Now(), nil)
		m.ObserveQueryMatches(0)
	})
}
