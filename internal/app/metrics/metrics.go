package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scribe"

// Metrics holds the process collectors on a dedicated registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	transcriptions        *prometheus.CounterVec
	transcriptionDuration *prometheus.HistogramVec
	dispatches            *prometheus.CounterVec
	recordsAppended       prometheus.Counter
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Transcription requests by model and outcome.",
		}, []string{"model", "outcome"}),
		transcriptionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_duration_seconds",
			Help:      "Wall-clock time of successful provider calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"model"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_dispatches_total",
			Help:      "Agent decisions by tool and outcome.",
		}, []string{"tool", "outcome"}),
		recordsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Transcription records appended to the history.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transcriptions,
		m.transcriptionDuration,
		m.dispatches,
		m.recordsAppended,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveTranscription records one provider call.
func (m *Metrics) ObserveTranscription(model, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.transcriptions.WithLabelValues(model, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.transcriptionDuration.WithLabelValues(model).Observe(elapsed.Seconds())
	}
}

// ObserveDispatch records one agent decision. tool is empty for direct answers.
func (m *Metrics) ObserveDispatch(tool, outcome string) {
	if m == nil {
		return
	}
	if tool == "" {
		tool = "none"
	}
	m.dispatches.WithLabelValues(tool, outcome).Inc()
}

// RecordAppended counts one appended record.
func (m *Metrics) RecordAppended() {
	if m == nil {
		return
	}
	m.recordsAppended.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
