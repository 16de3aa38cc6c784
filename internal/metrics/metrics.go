// Package metrics — счётчики Prometheus для основных операций сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	inquiriesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiries_submitted_total",
			Help: "Total number of accepted inquiry submissions",
		},
	)

	lookupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "status_lookups_total",
			Help: "Total number of status lookup requests reaching the store",
		},
	)

	lookupsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "status_lookups_throttled_total",
			Help: "Status lookup requests rejected by the rate limiter",
		},
	)

	emailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_total",
			Help: "Outbound emails by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

func RecordInquirySubmitted() { inquiriesSubmitted.Inc() }
func RecordStatusLookup()     { lookupsTotal.Inc() }
func RecordLookupThrottled()  { lookupsThrottled.Inc() }

func RecordEmail(kind string, ok bool) {
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	emailsTotal.WithLabelValues(kind, outcome).Inc()
}

// GinMiddleware пишет длительность запроса по маршруту (не по сырому URL,
// чтобы не раздувать кардинальность на :id).
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler — эндпоинт /metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
