// Package metrics implements the LookupRecorder port with Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.LookupRecorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder counts verification lookups by event and outcome.
type PrometheusRecorder struct {
	registry *prometheus.Registry
	lookups  *prometheus.CounterVec
}

// NewPrometheusRecorder registers the lookup collectors, together with the
// Go runtime and process collectors, on a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	lookups := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "verify25_lookups_total",
			Help: "Verification lookups by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	return &PrometheusRecorder{
		registry: reg,
		lookups:  lookups,
	}
}

// RecordLookup increments the counter for one lookup.
func (r *PrometheusRecorder) RecordLookup(event string, outcome model.LookupOutcome) {
	r.lookups.WithLabelValues(event, string(outcome)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
