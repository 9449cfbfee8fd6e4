package apiclient

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-request outcomes and latency.
type Metrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the client collectors and registers them on reg.
// A nil reg returns nil Metrics, which record nothing.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chuckle",
			Subsystem: "apiclient",
			Name:      "requests_total",
			Help:      "Joke API requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chuckle",
			Subsystem: "apiclient",
			Name:      "request_duration_seconds",
			Help:      "Joke API request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("apiclient: register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome(err)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	return AsRequestError(err).Kind.String()
}
