package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analyzedTotal      *prometheus.CounterVec
	validationRejected *prometheus.CounterVec
	analysisDuration   *prometheus.HistogramVec
	clausesPerDocument *prometheus.HistogramVec
	risksPerDocument   *prometheus.HistogramVec
	complianceScore    *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pi",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	analyzedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pi",
			Subsystem: "analysis",
			Name:      "documents_total",
			Help:      "Total analyzed documents by outcome.",
		},
		[]string{"service", "outcome"},
	)
	validationRejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pi",
			Subsystem: "analysis",
			Name:      "validation_rejections_total",
			Help:      "Total documents rejected as outside the supported domain.",
		},
		[]string{"service"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pi",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Analysis pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	clausesPerDocument := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pi",
			Subsystem: "analysis",
			Name:      "clauses_per_document",
			Help:      "Distribution of clauses emitted per analyzed document.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"service"},
	)
	risksPerDocument := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pi",
			Subsystem: "analysis",
			Name:      "risks_per_document",
			Help:      "Distribution of risks identified per analyzed document.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"service"},
	)
	complianceScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pi",
			Subsystem: "analysis",
			Name:      "compliance_score",
			Help:      "Distribution of document compliance scores.",
			Buckets:   []float64{0, 20, 40, 60, 70, 80, 85, 90, 100},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analyzedTotal,
		validationRejected,
		analysisDuration,
		clausesPerDocument,
		risksPerDocument,
		complianceScore,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		analyzedTotal:      analyzedTotal,
		validationRejected: validationRejected,
		analysisDuration:   analysisDuration,
		clausesPerDocument: clausesPerDocument,
		risksPerDocument:   risksPerDocument,
		complianceScore:    complianceScore,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &metricsRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		suffix := path[len("/v1/documents/"):]
		if strings.HasSuffix(suffix, "/analysis") {
			return "/v1/documents/{document_id}/analysis"
		}
		if strings.HasSuffix(suffix, "/progress") {
			return "/v1/documents/{document_id}/progress"
		}
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

// RecordAnalysis observes one completed synchronous analysis.
func (m *HTTPServerMetrics) RecordAnalysis(service string, clauses, risks, score int, duration time.Duration) {
	m.analyzedTotal.WithLabelValues(service, "success").Inc()
	m.analysisDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.clausesPerDocument.WithLabelValues(service).Observe(float64(clauses))
	m.risksPerDocument.WithLabelValues(service).Observe(float64(risks))
	m.complianceScore.WithLabelValues(service).Observe(float64(score))
}

// RecordValidationRejection counts a document rejected by the domain gate.
func (m *HTTPServerMetrics) RecordValidationRejection(service string) {
	m.analyzedTotal.WithLabelValues(service, "rejected").Inc()
	m.validationRejected.WithLabelValues(service).Inc()
}

type metricsRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *metricsRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *metricsRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *metricsRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
