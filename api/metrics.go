package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warp/wage-engine/earnings"
)

// =============================================================================
// METRICS - Prometheus collectors on a private registry
// =============================================================================

// Metrics holds the server's collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	calculations *prometheus.CounterVec
	segments     prometheus.Counter
	exports      *prometheus.CounterVec
	selectedDays prometheus.Gauge
}

// NewMetrics registers all collectors on a fresh registry, so several
// servers (or tests) never collide on the global one.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wagecalc",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wagecalc",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wagecalc",
			Name:      "calculations_total",
			Help:      "Earnings recomputations by source.",
		}, []string{"source"}),
		segments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wagecalc",
			Name:      "segments_total",
			Help:      "Segments produced by the segmenter.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wagecalc",
			Name:      "exports_total",
			Help:      "Timesheet exports by format and result.",
		}, []string{"format", "result"}),
		selectedDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wagecalc",
			Name:      "workspace_selected_days",
			Help:      "Days currently selected in the workspace.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.calculations, m.segments, m.exports, m.selectedDays,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) observeSummary(source string, s earnings.Summary) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(source).Inc()
	m.segments.Add(float64(s.SegmentCount()))
}

func (m *Metrics) observeWorkspace(w earnings.Workspace) {
	if m == nil {
		return
	}
	m.selectedDays.Set(float64(len(w.Days)))
}

func (m *Metrics) observeExport(format string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.exports.WithLabelValues(format, result).Inc()
}

// Middleware counts requests by their chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
