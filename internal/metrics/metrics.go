package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_created_total",
			Help: "Bookings requested.",
		},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Booking decisions by resulting status.",
		},
		[]string{"status"},
	)

	aggregationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "item_listing_aggregation_seconds",
			Help:    "Time spent attaching bookings and comments to an item page.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingTransitions, aggregationSeconds)
	})
}

// IncBookingCreated counts a new booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingTransition counts a decision that moved a booking to status.
func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

// ObserveAggregation records how long a listing aggregation took.
func ObserveAggregation(d time.Duration) {
	aggregationSeconds.Observe(d.Seconds())
}

// GinMiddleware counts requests by matched route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
