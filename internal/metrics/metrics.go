// Package metrics holds the Prometheus collectors of the annotation store.
//
// A nil *Metrics is valid and records nothing, so components can be
// constructed without a registry in tests and tools.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wapgraph"

// Metrics holds Prometheus metrics for store, sequence and service operations.
type Metrics struct {
	// Transaction lifecycle, labelled by kind (read|write) and outcome
	// (commit|abort|joined).
	Transactions *prometheus.CounterVec

	// Sequence manager calls, labelled by backend (graph|indexed) and op.
	SequenceOps *prometheus.CounterVec

	// Exposed service operations, labelled by operation and status (ok|error).
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Number of annotation graphs matched by a dynamic query before
	// deleted annotations are filtered out.
	QueryMatches prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg
// creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{}
	m.initializeStoreMetrics()
	m.initializeServiceMetrics()

	if reg != nil {
		reg.MustRegister(
			m.Transactions,
			m.SequenceOps,
			m.Operations,
			m.OperationDuration,
			m.QueryMatches,
		)
	}
	return m
}

// initializeStoreMetrics initializes transaction and sequence metrics
func (m *Metrics) initializeStoreMetrics() {
	m.Transactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "transactions_total",
			Help:      "Total number of store transactions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	m.SequenceOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequence",
			Name:      "operations_total",
			Help:      "Total number of sequence operations by backend and operation",
		},
		[]string{"backend", "op"},
	)
}

// initializeServiceMetrics initializes exposed operation metrics
func (m *Metrics) initializeServiceMetrics() {
	m.Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Total number of service operations by status",
		},
		[]string{"operation", "status"},
	)

	m.OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"operation"},
	)

	m.QueryMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "matches",
			Help:      "Number of graphs matched by dynamic queries",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
}

// ObserveTransaction counts one transaction outcome.
func (m *Metrics) ObserveTransaction(kind, outcome string) {
	if m == nil {
		return
	}
	m.Transactions.WithLabelValues(kind, outcome).Inc()
}

// ObserveSequenceOp counts one sequence manager call.
func (m *Metrics) ObserveSequenceOp(backend, op string) {
	if m == nil {
		return
	}
	m.SequenceOps.WithLabelValues(backend, op).Inc()
}

// ObserveOperation records the outcome and latency of a service operation
// started at start.
func (m *Metrics) ObserveOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Operations.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveQueryMatches records the size of a dynamic query result.
func (m *Metrics) ObserveQueryMatches(n int) {
	if m == nil {
		return
	}
	m.QueryMatches.Observe(float64(n))
}
