package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence. Record
// must never block the request path; implementations may drop events
// under backpressure.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditStore persists audit events.
type AuditStore interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
