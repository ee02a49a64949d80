// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
// Label:
//   - main_role: "CLIENT" or "FREELANCER"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by main role.",
	},
	[]string{"main_role"},
)

// TokenValidationFailuresTotal counts bearer tokens rejected by the auth
// middleware before they reached any handler.
var TokenValidationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validation_failures_total",
		Help:      "Total number of rejected bearer tokens.",
	},
)

// ViewCacheTotal counts cache lookups for read-through views.
// Labels:
//   - view: "profile" or "project"
//   - result: "hit" or "miss"
var ViewCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_cache_total",
		Help:      "Total number of view cache lookups, by view and result.",
	},
	[]string{"view", "result"},
)

// AuditQueueDepth tracks the number of audit events accepted by each worker
// but not yet persisted. Incremented on enqueue, decremented after the
// persistence attempt.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Audit events accepted per dispatcher worker and not yet persisted.",
	},
	[]string{"worker_id"},
)
