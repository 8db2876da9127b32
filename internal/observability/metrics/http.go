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

	queryTotal           *prometheus.CounterVec
	queryDuration        *prometheus.HistogramVec
	secondarySkipTotal   *prometheus.CounterVec
	secondaryFailTotal   *prometheus.CounterVec
	confidenceBandTotal  *prometheus.CounterVec
	noAnswerTotal        *prometheus.CounterVec
	retrievedChunksTotal *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aes",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aes",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aes",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queryTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aes",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Total successful query requests by answering engine.",
		},
		[]string{"service", "endpoint", "engine"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aes",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	secondarySkipTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aes",
			Subsystem: "query",
			Name:      "secondary_skipped_total",
			Help:      "Total hybrid queries answered without the secondary engine.",
		},
		[]string{"service"},
	)
	secondaryFailTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aes",
			Subsystem: "query",
			Name:      "secondary_failed_total",
			Help:      "Total hybrid queries where the secondary engine failed.",
		},
		[]string{"service"},
	)
	confidenceBandTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aes",
			Subsystem: "query",
			Name:      "confidence_band_total",
			Help:      "Total hybrid answers by calibrated confidence band.",
		},
		[]string{"service", "band"},
	)
	noAnswerTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aes",
			Subsystem: "query",
			Name:      "no_answer_total",
			Help:      "Total queries that returned the no-answer marker.",
		},
		[]string{"service", "endpoint"},
	)
	retrievedChunksTotal := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aes",
			Subsystem: "rag",
			Name:      "retrieved_chunks",
			Help:      "Distribution of retrieved chunks per RAG request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service", "endpoint"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		queryTotal,
		queryDuration,
		secondarySkipTotal,
		secondaryFailTotal,
		confidenceBandTotal,
		noAnswerTotal,
		retrievedChunksTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		queryTotal:           queryTotal,
		queryDuration:        queryDuration,
		secondarySkipTotal:   secondarySkipTotal,
		secondaryFailTotal:   secondaryFailTotal,
		confidenceBandTotal:  confidenceBandTotal,
		noAnswerTotal:        noAnswerTotal,
		retrievedChunksTotal: retrievedChunksTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
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
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordQuery(service, endpoint, engine string, duration time.Duration) {
	if engine == "" {
		engine = "unknown"
	}
	m.queryTotal.WithLabelValues(service, endpoint, engine).Inc()
	m.queryDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordSecondarySkipped(service string) {
	m.secondarySkipTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordSecondaryFailed(service string) {
	m.secondaryFailTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordConfidenceBand(service, band string) {
	if band == "" {
		band = "unknown"
	}
	m.confidenceBandTotal.WithLabelValues(service, band).Inc()
}

func (m *HTTPServerMetrics) RecordNoAnswer(service, endpoint string) {
	m.noAnswerTotal.WithLabelValues(service, endpoint).Inc()
}

func (m *HTTPServerMetrics) RecordRetrievedChunks(service, endpoint string, count int) {
	m.retrievedChunksTotal.WithLabelValues(service, endpoint).Observe(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
