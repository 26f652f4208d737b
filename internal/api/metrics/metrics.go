// Package metrics defines and registers all custom Prometheus metrics for the
// portal shell. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default Prometheus registry through
// promauto when the package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal_shell"

// ── Shell metrics ─────────────────────────────────────────────────────────────

// ShellCompositionsTotal counts composed shells.
// Label:
//   - sidebar: the sidebar variant mounted, or "none"
var ShellCompositionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shell_compositions_total",
		Help:      "Total number of shells composed, by sidebar variant.",
	},
	[]string{"sidebar"},
)

// GateRedirectsTotal counts requests the route gate turned away.
// Label:
//   - target: the redirect destination ("/login" or "/")
var GateRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_redirects_total",
		Help:      "Total number of gated requests redirected, by target.",
	},
	[]string{"target"},
)

// DashboardViewsTotal counts resolved dashboard bodies.
// Labels:
//   - view: e.g. "mentor_dashboard", "unknown_role", "welcome"
//   - source: where the role came from ("claims", "directory", "none")
var DashboardViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_views_total",
		Help:      "Total number of dashboard bodies resolved, by view and role source.",
	},
	[]string{"view", "source"},
)

// ── Signal metrics ────────────────────────────────────────────────────────────

// SignalsProcessedTotal counts signals that were published (or skipped as duplicates).
// Label:
//   - status: "ACCEPTED" or "REJECTED"
var SignalsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signals_processed_total",
		Help:      "Total number of connection signals processed without error.",
	},
	[]string{"status"},
)

// SignalsErrorsTotal counts signals that failed processing.
// Label:
//   - reason: "invalid", "publish_failed" or "queue_full"
var SignalsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signals_errors_total",
		Help:      "Total number of connection signals that failed processing.",
	},
	[]string{"reason"},
)

// SignalsQueueDepth tracks pending signals in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SignalsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "signals_queue_depth",
		Help:      "Current number of signals pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// SignalProcessingDuration measures dequeue-to-publish latency.
var SignalProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "signal_processing_duration_seconds",
		Help:      "Duration of signal processing from dequeue to publish.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SignalSubscribers tracks open stream subscribers.
var SignalSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "signal_stream_subscribers",
		Help:      "Current number of open signal stream subscribers.",
	},
)
