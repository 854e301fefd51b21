// Package metrics holds the Prometheus collectors for carrier traffic and the
// tracking worker. They are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "carrier_gateway"

// CarrierRequestsTotal counts carrier operations.
// Labels:
//   - carrier: carrier name (e.g. "UPS")
//   - action: rates, track, time_in_transit, address_validation
//   - outcome: ok, carrier_error, malformed, transport_error
var CarrierRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carrier_requests_total",
		Help:      "Total number of carrier operations by outcome.",
	},
	[]string{"carrier", "action", "outcome"},
)

var CarrierRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "carrier_request_duration_seconds",
		Help:      "Duration of carrier operations including response parsing.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"carrier", "action"},
)

// BreakerState is 0 when closed, 1 when half-open and 2 when open.
var BreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "transport_breaker_state",
		Help:      "Circuit breaker state per transport.",
	},
	[]string{"name"},
)

// ShipmentsProcessedTotal counts tracking refreshes.
// Label:
//   - result: updated, failed, skipped
var ShipmentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_processed_total",
		Help:      "Total number of shipment tracking refreshes by result.",
	},
	[]string{"result"},
)

var ShipmentEventsStoredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipment_events_stored_total",
		Help:      "Total number of new shipment events persisted.",
	},
)
