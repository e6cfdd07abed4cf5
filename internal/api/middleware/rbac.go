package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// Require enforces the authorization policy for one operation. It must
// run after Authenticate; a missing principal means the pipeline was
// miswired and is rejected outright. The ":id" path parameter, when
// present, is passed to the policy as the target resource for
// self-or-admin checks.
func Require(op domain.Operation, audit ports.AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrInvalidPrincipal
			}

			decision, err := domain.Decide(p, op, c.Param("id"))
			if err != nil {
				return err
			}

			metrics.PolicyDecisionsTotal.WithLabelValues(string(op), string(decision)).Inc()
			if decision != domain.Allow {
				audit.Record(domain.AuditEvent{
					ID:        uuid.NewString(),
					Action:    domain.AuditDenied,
					SubjectID: p.ID,
					Detail:    string(op),
					At:        time.Now().UTC(),
				})
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}
