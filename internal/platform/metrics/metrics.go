// Package metrics menyediakan instrumentasi Prometheus untuk shop service.
//
// Pasang sekali di main:
//
//	router.Use(metrics.Middleware())
//	router.GET("/metrics", metrics.Handler())
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration melacak durasi tiap HTTP request per method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal menghitung semua HTTP request.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight melacak jumlah request yang sedang dilayani.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "shop",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// OrdersSubmitted menghitung hasil submit order per outcome
	// ("created" | "rejected" | "failed").
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop",
			Subsystem: "orders",
			Name:      "submitted_total",
			Help:      "Total order submissions by outcome.",
		},
		[]string{"outcome"},
	)
)

// DefaultRegistry adalah registry Prometheus milik shop service.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		OrdersSubmitted,
	)
}

// Middleware merekam metrik untuk setiap request yang lewat router gin.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		RequestInFlight.Inc()
		defer RequestInFlight.Dec()

		c.Next()

		// FullPath mengembalikan route pattern (/products/:id), bukan path mentah,
		// supaya kardinalitas label tetap rendah.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Handler mengekspos halaman metrik Prometheus untuk di-mount pada GET /metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return gin.WrapH(h)
}
