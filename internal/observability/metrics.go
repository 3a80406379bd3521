package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_extractor"

// Metrics holds the Prometheus collectors shared by the pipeline, job queue
// and HTTP server. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	extractions    *prometheus.CounterVec
	fallbacks      prometheus.Counter
	duration       *prometheus.HistogramVec
	queueDepth     prometheus.Gauge
	jobs           *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	plansGenerated prometheus.Counter
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Resume extractions by parsing strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_fallbacks_total",
			Help:      "PDF extractions that fell back from layout to text parsing.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Time spent extracting one document.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"strategy"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Jobs waiting for a worker.",
		}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Finished background jobs by kind and final status.",
		}, []string{"kind", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patch_plans_total",
			Help:      "Patch plans generated.",
		}),
	}
	m.registry.MustRegister(
		m.extractions, m.fallbacks, m.duration, m.queueDepth, m.jobs, m.httpRequests, m.plansGenerated,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveExtraction records one finished extraction.
func (m *Metrics) ObserveExtraction(strategy string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.extractions.WithLabelValues(strategy, outcome).Inc()
	m.duration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// LayoutFallback counts a layout-to-text fallback.
func (m *Metrics) LayoutFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

// QueueDepth adjusts the pending job gauge by delta.
func (m *Metrics) QueueDepth(delta float64) {
	if m == nil {
		return
	}
	m.queueDepth.Add(delta)
}

// JobFinished counts a background job reaching a terminal status.
func (m *Metrics) JobFinished(kind, status string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(kind, status).Inc()
}

// HTTPRequest counts one served request.
func (m *Metrics) HTTPRequest(method string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, http.StatusText(code)).Inc()
}

// PlanGenerated counts one patch plan.
func (m *Metrics) PlanGenerated() {
	if m == nil {
		return
	}
	m.plansGenerated.Inc()
}
