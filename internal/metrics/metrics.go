package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	telegramUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_total",
			Help: "Incoming chat messages by the route that handled them.",
		},
		[]string{"route"},
	)

	backendCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_calls_total",
			Help: "Backend API calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	backendCallLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Backend API call latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	bridgeDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_deliveries_total",
			Help: "Webhook bridge deliveries by kind and outcome (ok/fallback/error).",
		},
		[]string{"kind", "outcome"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			telegramUpdatesTotal,
			backendCallsTotal,
			backendCallLatency,
			bridgeDeliveriesTotal,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncUpdate(route string) {
	telegramUpdatesTotal.WithLabelValues(norm(route)).Inc()
}

// ObserveBackendCall matches api.Observer.
func ObserveBackendCall(op, outcome string, elapsed time.Duration) {
	backendCallsTotal.WithLabelValues(norm(op), norm(outcome)).Inc()
	backendCallLatency.WithLabelValues(norm(op)).Observe(elapsed.Seconds())
}

func IncDelivery(kind, outcome string) {
	bridgeDeliveriesTotal.WithLabelValues(norm(kind), norm(outcome)).Inc()
}
