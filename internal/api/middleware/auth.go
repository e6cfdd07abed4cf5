package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
	"github.com/taskdesk/task-system/internal/core/token"
)

// principalKey is the echo context key the authenticated principal is
// stored under.
const principalKey = "principal"

// PrincipalFrom returns the principal the Authenticate middleware stored
// on the request context.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// Authenticate is the authentication guard. It verifies the bearer token
// and then re-resolves the subject against the user store, so a token
// issued before a role change or deactivation is judged by the account's
// current state, not by the claims snapshot inside the token.
//
// The scheme keyword is matched case-sensitively: only "Bearer <token>"
// is accepted.
func Authenticate(tokens *token.Manager, users ports.UserRepository, audit ports.AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				reject(audit, claims.ID, err.Error())
				return err
			}

			// The token only proves who the caller was at issuance time.
			// The store decides who they are now.
			user, err := users.FindByID(c.Request().Context(), claims.ID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
					metrics.TokenVerificationsTotal.WithLabelValues("subject_rejected").Inc()
					reject(audit, claims.ID, "subject no longer exists")
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown subject")
				}
				return err
			}
			if !user.IsActive {
				metrics.TokenVerificationsTotal.WithLabelValues("subject_rejected").Inc()
				reject(audit, claims.ID, "subject deactivated")
				return domain.ErrUserInactive
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(principalKey, domain.Principal{
				ID:       user.ID,
				Username: user.Username,
				Role:     user.Role,
			})

			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

func reject(audit ports.AuditRecorder, subjectID, detail string) {
	audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		Action:    domain.AuditAuthRejected,
		SubjectID: subjectID,
		Detail:    detail,
		At:        time.Now().UTC(),
	})
}
