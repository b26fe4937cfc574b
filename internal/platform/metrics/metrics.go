// Package metrics owns the prometheus collectors the api exposes on /metrics.
// Every method is safe on a nil *Metrics so callers never branch on whether metrics are on
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tglang"

// Outcome labels for DetectionsTotal
const (
	OutcomeDetected = "detected"
	OutcomeOther    = "other"
	OutcomeError    = "error"
)

// Metrics groups the collectors
type Metrics struct {
	reg      *prometheus.Registry
	gatherer prometheus.Gatherer

	detections *prometheus.CounterVec
	detectDur  prometheus.Histogram
	dropped    prometheus.Counter
	cache      *prometheus.CounterVec
	requests   *prometheus.CounterVec
	reqDur     *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, with go and process collectors alongside
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := &Metrics{
		reg:      reg,
		gatherer: reg,
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Snippets classified, by detected language and outcome",
		}, []string{"language", "outcome"}),
		detectDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "detect_duration_seconds",
			Help:      "Time spent normalizing and classifying one snippet",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_dropped_total",
			Help:      "Detection events dropped because the journal buffer was full",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Detection cache lookups by result",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.detections, m.detectDur, m.dropped, m.cache, m.requests, m.reqDur)
	return m
}

// Detection records one classified snippet
func (m *Metrics) Detection(language, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.detections.WithLabelValues(language, outcome).Inc()
	m.detectDur.Observe(elapsed.Seconds())
}

// CachedDetection counts a snippet answered from the cache, without a latency sample
func (m *Metrics) CachedDetection(language, outcome string) {
	if m == nil {
		return
	}
	m.detections.WithLabelValues(language, outcome).Inc()
}

// JournalDropped counts n events the journal could not buffer
func (m *Metrics) JournalDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dropped.Add(float64(n))
}

// Cache records a lookup result: hit, miss or error
func (m *Metrics) Cache(result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

// Request records one finished HTTP request. route is the chi pattern, never the raw path
func (m *Metrics) Request(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.reqDur.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format; nil serves 404
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry exposes the registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}
