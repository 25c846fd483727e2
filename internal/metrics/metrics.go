// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	AuthSignup = "signup"
	AuthLogin  = "login"

	ResultSuccess  = "success"
	ResultRejected = "rejected"

	TaskCreate = "create"
	TaskUpdate = "update"
	TaskDelete = "delete"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempt_count",
			Help: "Total number of signup and login attempts",
		},
		[]string{"operation", "result"},
	)

	TaskOperationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operation_count",
			Help: "Total number of successful task mutations",
		},
		[]string{"operation"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementAuthAttempt(operation, result string) {
	AuthAttemptCount.WithLabelValues(operation, result).Inc()
}

func IncrementTaskOperation(operation string) {
	TaskOperationCount.WithLabelValues(operation).Inc()
}

// Middleware records the duration of every request. The path label is
// the matched route pattern, so task ids don't blow up the cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
