package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the RPC layer and the ledger.
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	expensesAdded   *prometheus.CounterVec
	expensesDeleted prometheus.Counter
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tripkit",
				Subsystem: "rpc",
				Name:      "requests_total",
				Help:      "RPC calls by procedure and result code.",
			},
			[]string{"procedure", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tripkit",
				Subsystem: "rpc",
				Name:      "request_duration_seconds",
				Help:      "RPC latency by procedure.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"procedure"},
		),
		expensesAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tripkit",
				Subsystem: "ledger",
				Name:      "expenses_added_total",
				Help:      "Expenses added, by category.",
			},
			[]string{"category"},
		),
		expensesDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tripkit",
				Subsystem: "ledger",
				Name:      "expenses_deleted_total",
				Help:      "Expenses removed from a trip.",
			},
		),
	}
}

// Interceptor returns a Connect interceptor that counts and times RPCs.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.requests.WithLabelValues(procedure, code).Inc()
			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}

// ExpenseAdded counts an added expense.
func (m *Metrics) ExpenseAdded(category string) {
	m.expensesAdded.WithLabelValues(category).Inc()
}

// ExpenseDeleted counts a removed expense.
func (m *Metrics) ExpenseDeleted() {
	m.expensesDeleted.Inc()
}
