package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns the HTTP and booking-engine collectors. It satisfies
// shared.Metrics.
type Metrics struct {
	requestTotal       *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	quotesIssued       *prometheus.CounterVec
	selectionsRejected *prometheus.CounterVec
	bookingsSubmitted  *prometheus.CounterVec
	unreachableNights  prometheus.Counter
	notificationsSent  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		quotesIssued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caravan_quotes_issued_total",
				Help: "Quotes returned for a valid stay",
			},
			[]string{"type"},
		),
		selectionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caravan_selections_rejected_total",
				Help: "Date selections rejected by the booking engine",
			},
			[]string{"reason"},
		),
		bookingsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caravan_bookings_submitted_total",
				Help: "Booking requests accepted",
			},
			[]string{"type"},
		),
		unreachableNights: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "caravan_unreachable_nights_total",
				Help: "Price requests for a night count outside every package",
			},
		),
		notificationsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caravan_notifications_total",
				Help: "Outbox notification deliveries by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) QuoteIssued(bookingType booking.Type) {
	m.quotesIssued.WithLabelValues(bookingType.String()).Inc()
}

func (m *Metrics) SelectionRejected(reason string) {
	m.selectionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) BookingSubmitted(bookingType booking.Type) {
	m.bookingsSubmitted.WithLabelValues(bookingType.String()).Inc()
}

// NotificationDelivered records one outbox attempt: "sent", "retry" or "dead".
func (m *Metrics) NotificationDelivered(result string) {
	m.notificationsSent.WithLabelValues(result).Inc()
}

// NormalizePath keeps only the first path segment so label cardinality stays
// bounded when the route template is unknown.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if idx := strings.Index(p, "/"); idx >= 0 {
		p = p[:idx]
	}
	if p == "" {
		return "root"
	}
	return p
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		path := c.FullPath()
		if path == "" {
			path = NormalizePath(c.Request.URL.Path)
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
