package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "balance_assistant"

type PrometheusRecorder struct {
	dispatches   *prometheus.CounterVec
	balanceQuery *prometheus.CounterVec
	rpcLatency   *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the service collectors on reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	dispatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Messages dispatched, by route.",
		},
		[]string{"route"},
	)

	balanceQuery := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_queries_total",
			Help:      "Balance queries, by outcome.",
		},
		[]string{"outcome"},
	)

	rpcLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_latency_seconds",
			Help:      "JSON-RPC read latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	for _, c := range []prometheus.Collector{dispatches, balanceQuery, rpcLatency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &PrometheusRecorder{
		dispatches:   dispatches,
		balanceQuery: balanceQuery,
		rpcLatency:   rpcLatency,
	}, nil
}

func (p *PrometheusRecorder) IncDispatch(route string) {
	p.dispatches.WithLabelValues(route).Inc()
}

func (p *PrometheusRecorder) IncBalanceQuery(outcome string) {
	p.balanceQuery.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveRPC(method string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.rpcLatency.WithLabelValues(method, status).Observe(d.Seconds())
}
