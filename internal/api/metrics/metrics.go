// Package metrics defines and registers all custom Prometheus metrics for the
// ticketing admin API. It is the single source of truth for metric names,
// labels, and help strings. Metrics are registered with the default registry
// at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ticketing"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthChecksTotal counts bearer-token verifications at the HTTP boundary.
// Label:
//   - result: "ok", "missing_token", "invalid_token", "unavailable"
var AuthChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_checks_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// AuthDeniedTotal counts requests rejected by the role gate.
// Label:
//   - reason: "forbidden", "profile_not_found", "lookup_failed"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason"},
)

// ── Admin mutation metrics ────────────────────────────────────────────────────

// UserMutationsTotal counts privileged user mutations.
// Labels:
//   - operation: "create", "update", "delete"
//   - result: "ok", "partial", "error"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of admin user mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// CompensationsTotal counts compensating cleanups after partial failures.
// Label:
//   - result: "ok" (identity rolled back) or "failed" (stores inconsistent)
var CompensationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compensations_total",
		Help:      "Total number of compensating identity deletions, by result.",
	},
	[]string{"result"},
)

// ── Check-in metrics ──────────────────────────────────────────────────────────

// CheckinsProcessedTotal counts ticket scans that completed processing.
// Label:
//   - result: "admitted" or "duplicate"
var CheckinsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_processed_total",
		Help:      "Total number of ticket scans successfully processed.",
	},
	[]string{"result"},
)

// CheckinsErrorsTotal counts scans that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var CheckinsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_errors_total",
		Help:      "Total number of ticket scans that failed processing.",
	},
	[]string{"reason"},
)

// CheckinProcessingDuration measures how long a single scan takes to process.
// Label:
//   - result: "admitted" or "duplicate"
var CheckinProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkin_processing_duration_seconds",
		Help:      "Duration of scan processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
