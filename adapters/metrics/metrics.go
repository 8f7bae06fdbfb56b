// Package metrics provides Prometheus metrics for gateway calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the Prometheus metrics for the payment client.
type Collector struct {
	// Gateway round trips, labelled by protocol flow and outcome.
	GatewayRequestsTotal *prometheus.CounterVec
	GatewayDuration      *prometheus.HistogramVec

	// Rejections the gateway classified with a response code.
	GatewayRejections *prometheus.CounterVec

	// Requests that failed validation before reaching the transport.
	ValidationFailures *prometheus.CounterVec

	// Config reloads in long-running merchant processes.
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
}

// New creates a collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector registered on the given registry.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		GatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hostedpay",
				Name:      "gateway_requests_total",
				Help:      "Total gateway round trips by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		GatewayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hostedpay",
				Name:      "gateway_request_duration_seconds",
				Help:      "Gateway round trip duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"flow"},
		),
		GatewayRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hostedpay",
				Name:      "gateway_rejections_total",
				Help:      "Requests the gateway rejected, by response code",
			},
			[]string{"code"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hostedpay",
				Name:      "validation_failures_total",
				Help:      "Requests rejected locally before any gateway call",
			},
			[]string{"field"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hostedpay",
				Name:      "config_reloads_total",
				Help:      "Successful configuration reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hostedpay",
				Name:      "config_reload_errors_total",
				Help:      "Configuration reloads that failed",
			},
		),
	}
}
