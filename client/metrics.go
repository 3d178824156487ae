package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeTransport   = "transport_error"
	OutcomeDatabase    = "database_error"
	OutcomeDeserialize = "deserialize_error"
	OutcomeCanceled    = "canceled"
)

// Metrics holds the client collectors.
type Metrics struct {
	// Requests counts requests by outcome.
	Requests *prometheus.CounterVec
	// Duration is the latency of requests by outcome.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chql_client_requests_total",
				Help: "Total number of ClickHouse HTTP requests",
			},
			[]string{"outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chql_client_request_duration_seconds",
				Help:    "ClickHouse HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
	m.Duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
