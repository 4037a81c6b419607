package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all portal metrics
type Metrics struct {
	// Upstream gateway metrics
	GatewayRequests *prometheus.CounterVec
	GatewayFailures *prometheus.CounterVec
	GatewayLatency  *prometheus.HistogramVec

	// Session metrics
	Logins  prometheus.Counter
	Logouts prometheus.Counter

	// Notification queue metrics
	NotificationsPushed  *prometheus.CounterVec
	NotificationsExpired prometheus.Counter
}

// NewMetrics creates and registers all portal metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		GatewayRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Total number of requests issued to the clinic API",
		}, []string{"resource", "operation"}),
		GatewayFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_failures_total",
			Help:      "Total number of failed clinic API requests",
		}, []string{"resource", "operation", "kind"}),
		GatewayLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Duration of clinic API requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"resource", "operation"}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of successful logins",
		}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Total number of logouts",
		}),
		NotificationsPushed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_pushed_total",
			Help:      "Total number of transient notifications pushed",
		}, []string{"type"}),
		NotificationsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_expired_total",
			Help:      "Total number of notifications removed by expiry",
		}),
	}
}
