package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the API.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	uploadsTotal    prometheus.Counter
	uploadFailures  prometheus.Counter
	uploadBytes     prometheus.Counter
}

// NewCollector creates and registers all API metrics.
func NewCollector() *Collector {
	return &Collector{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_ms",
				Help:    "Latency of API requests in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
			[]string{"method", "path"},
		),
		uploadsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "image_uploads_total",
				Help: "Total number of successfully stored image uploads",
			},
		),
		uploadFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "image_upload_failures_total",
				Help: "Total number of rejected or failed image uploads",
			},
		),
		uploadBytes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "image_upload_bytes_total",
				Help: "Total bytes of stored image uploads",
			},
		),
	}
}

// ObserveRequest records a completed request.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, path).
		Observe(float64(duration.Microseconds()) / 1000.0)
}

// RecordUpload counts a stored upload and its size.
func (c *Collector) RecordUpload(size int64) {
	if c == nil {
		return
	}
	c.uploadsTotal.Inc()
	c.uploadBytes.Add(float64(size))
}

// RecordUploadFailure counts a rejected or failed upload.
func (c *Collector) RecordUploadFailure() {
	if c == nil {
		return
	}
	c.uploadFailures.Inc()
}

// Middleware returns a Fiber handler that records request metrics using
// the matched route pattern as the path label.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		path := ctx.Route().Path
		c.ObserveRequest(ctx.Method(), path, ctx.Response().StatusCode(), time.Since(start))
		return err
	}
}
