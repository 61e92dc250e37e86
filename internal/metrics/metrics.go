// Package metrics holds the prometheus collectors for relayed requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the relay's request collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the relay collectors with the given registerer. A nil
// registerer falls back to the prometheus default.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "relay",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of relayed requests",
			},
			[]string{"upstream", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "relay",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of relayed requests",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"upstream"},
		),
	}
}

// Observe records one completed request for the named upstream.
func (m *Metrics) Observe(upstream string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(upstream, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(upstream).Observe(elapsed.Seconds())
}
