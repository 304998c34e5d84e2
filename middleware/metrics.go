package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Notes Metrics
	NotesOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation", "status"},
	)

	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total number of media uploads",
		},
		[]string{"status"},
	)
)

// RecordNoteOperation counts one note CRUD outcome, status is "success" or
// "failure".
func RecordNoteOperation(operation, status string) {
	NotesOperationsTotal.WithLabelValues(operation, status).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ActiveRequests.Inc()

		c.Next()

		ActiveRequests.Dec()

		// FullPath keeps the cardinality bounded; raw URLs would explode the
		// label space with every distinct note id.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
