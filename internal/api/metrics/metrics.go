// Package metrics defines and registers the service's custom Prometheus
// metrics. It is the single source of truth for metric names, labels,
// and help strings; HTTP-level metrics come from echoprometheus and are
// not duplicated here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "task_system"

// SigninAttemptsTotal counts signin attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var SigninAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token verifications by outcome.
// Label:
//   - result: "ok", "expired", "invalid_signature", "malformed", or "subject_rejected"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// PolicyDecisionsTotal counts authorization policy verdicts.
// Labels:
//   - operation: the access-controlled operation (e.g. "tasks.create")
//   - decision: "allow" or "deny"
var PolicyDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_decisions_total",
		Help:      "Total number of authorization decisions, by operation and verdict.",
	},
	[]string{"operation", "decision"},
)

// AuditQueueDepth tracks the number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events dropped under backpressure.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped because a worker channel was full.",
	},
)

// AuditEventsWrittenTotal counts audit events persisted to the store.
// Label:
//   - action: the audit action name (e.g. "auth.signin")
var AuditEventsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_written_total",
		Help:      "Total number of audit events persisted, by action.",
	},
	[]string{"action"},
)
