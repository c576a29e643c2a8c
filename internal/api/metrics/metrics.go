// Package metrics defines all custom Prometheus metrics for the todo service.
// It is the single source of truth for metric names, labels, and help strings.
//
// Collectors are package-level so services and workers can record without
// plumbing. Call Register once per registry (the router does this for the
// registry it serves on /metrics).
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "todo"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh outcomes.
// Label:
//   - result: "success" or "rejected"
var TokenRefreshTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of token refresh requests, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests stopped by the auth pipeline.
// Label:
//   - reason: "not_authenticated", "credentials", "inactive" or "forbidden"
var AccessDeniedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by authentication or RBAC.",
	},
	[]string{"reason"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts registrations.
// Label:
//   - role: "user" or "admin"
var UsersCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events handled by the dispatcher workers.
// Labels:
//   - kind: "login" or "refresh"
//   - result: "stored" or "failed"
var AuditEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of auth audit events processed, by kind and result.",
	},
	[]string{"kind", "result"},
)

// AuditEventsDroppedTotal counts events discarded because a worker buffer was full.
var AuditEventsDroppedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth audit events dropped on a full worker queue.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditProcessingDuration measures how long persisting one audit event takes.
var AuditProcessingDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of audit event persistence from dequeue to store.",
		Buckets:   prometheus.DefBuckets,
	},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LoginAttemptsTotal,
		TokenRefreshTotal,
		AccessDeniedTotal,
		UsersCreatedTotal,
		AuditEventsTotal,
		AuditEventsDroppedTotal,
		AuditQueueDepth,
		AuditProcessingDuration,
	}
}

// Register adds every collector to reg. Registering into a registry that
// already holds them is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
