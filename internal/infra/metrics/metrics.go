// Package metrics registers Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "subtrack_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	syncRuns      *prometheus.CounterVec
	remindersSent prometheus.Counter
	streamsOpened *prometheus.CounterVec
)

// Init registers the application metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		syncRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "sync_runs_total",
				Help: "Total provider sync runs by result",
			},
			[]string{"result"},
		)
		remindersSent = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "reminders_sent_total",
				Help: "Total renewal reminder emails sent",
			},
		)
		streamsOpened = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payment_streams_opened_total",
				Help: "Total payment streams opened by protocol",
			},
			[]string{"protocol"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			syncRuns,
			remindersSent,
			streamsOpened,
		)
	})
}

// Handler returns the /metrics endpoint handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware returns a Gin middleware recording request counts and latency.
func Middleware() gin.HandlerFunc {
	Init()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(method, route, status).Inc()
		httpLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordSyncRun counts a provider sync run.
func RecordSyncRun(success bool) {
	Init()
	result := "success"
	if !success {
		result = "error"
	}
	syncRuns.WithLabelValues(result).Inc()
}

// RecordReminderSent counts a sent renewal reminder.
func RecordReminderSent() {
	Init()
	remindersSent.Inc()
}

// RecordStreamOpened counts an opened payment stream.
func RecordStreamOpened(protocol string) {
	Init()
	streamsOpened.WithLabelValues(protocol).Inc()
}
