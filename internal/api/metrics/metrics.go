// Package metrics defines and registers all custom Prometheus metrics for the
// print system API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pickit"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsSubmittedTotal counts newly submitted print jobs.
// Labels:
//   - color: "color" or "mono"
//   - duplex: "single" or "double"
var JobsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_submitted_total",
		Help:      "Total number of print jobs submitted, by print options.",
	},
	[]string{"color", "duplex"},
)

// JobTransitionsTotal counts committed lifecycle transitions.
// Labels:
//   - from: the status the job left
//   - to: the status the job entered
var JobTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_transitions_total",
		Help:      "Total number of committed job status transitions.",
	},
	[]string{"from", "to"},
)

// InvalidTransitionsTotal counts rejected transition requests.
// Label:
//   - to: the requested target status
var InvalidTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invalid_transitions_total",
		Help:      "Total number of transition requests rejected by the lifecycle rules.",
	},
	[]string{"to"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts delivery attempts of ready notifications.
// Labels:
//   - sender: the sender name ("alert", "chime")
//   - result: "ok" or "error"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of ready notification deliveries, by sender and result.",
	},
	[]string{"sender", "result"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentDuration measures how long a payment takes from start to its
// completion event.
// Label:
//   - outcome: "approved", "declined", or "cancelled"
var PaymentDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_duration_seconds",
		Help:      "Duration of a payment from start to completion or abandonment.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"outcome"},
)

// ── Handshake metrics ─────────────────────────────────────────────────────────

// HandshakeFramesTotal counts scanner frames by what they resolved to.
// Label:
//   - result: "bound", "noise", "unknown_shop"
var HandshakeFramesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "handshake_frames_total",
		Help:      "Total number of scanner frames processed, by resolution.",
	},
	[]string{"result"},
)
