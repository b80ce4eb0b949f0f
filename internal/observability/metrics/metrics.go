package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes application-level prometheus instruments.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	postings        *prometheus.CounterVec
	receiptsIssued  prometheus.Counter
	postingFailures *prometheus.CounterVec
}

// New registers the instruments on the given registerer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agencyledger_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agencyledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agencyledger_postings_total",
			Help: "Posted transactions by source type.",
		}, []string{"source_type"}),
		receiptsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agencyledger_receipts_issued_total",
			Help: "Receipts issued.",
		}),
		postingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agencyledger_posting_failures_total",
			Help: "Failed posting attempts by source type.",
		}, []string{"source_type"}),
	}

	collectors := []prometheus.Collector{
		m.httpRequests,
		m.httpDuration,
		m.postings,
		m.receiptsIssued,
		m.postingFailures,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return m, nil
}

// RecordPosting increments posted transaction counts.
func (m *Metrics) RecordPosting(sourceType string) {
	if m == nil {
		return
	}
	m.postings.WithLabelValues(strings.TrimSpace(sourceType)).Inc()
}

// RecordPostingFailure increments failed posting counts.
func (m *Metrics) RecordPostingFailure(sourceType string) {
	if m == nil {
		return
	}
	m.postingFailures.WithLabelValues(strings.TrimSpace(sourceType)).Inc()
}

// RecordReceipt increments issued receipt counts.
func (m *Metrics) RecordReceipt() {
	if m == nil {
		return
	}
	m.receiptsIssued.Inc()
}

// GinMiddleware instruments inbound HTTP requests.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
