// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cafeResults     *prometheus.CounterVec
	memoLookups     *prometheus.CounterVec
	reviewOutcomes  *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jakca",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jakca",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		cafeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jakca",
			Name:      "nearby_cafes_total",
			Help:      "Cafes returned by the nearby search, by source.",
		}, []string{"source"}),
		memoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jakca",
			Name:      "live_search_memo_total",
			Help:      "Live search memo lookups by result.",
		}, []string{"result"}),
		reviewOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jakca",
			Name:      "review_submissions_total",
			Help:      "Review submissions by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.cafeResults,
		m.memoLookups,
		m.reviewOutcomes,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CafeResult(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.cafeResults.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) MemoHit() {
	if m == nil {
		return
	}
	m.memoLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) MemoMiss() {
	if m == nil {
		return
	}
	m.memoLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ReviewOutcome(outcome string) {
	if m == nil {
		return
	}
	m.reviewOutcomes.WithLabelValues(outcome).Inc()
}

// Middleware records count and latency of every request. Unmatched routes
// are grouped under one label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
