package domain

import "time"

// Audit actions recorded by the security trail.
const (
	AuditSignup       = "auth.signup"
	AuditSignin       = "auth.signin"
	AuditSigninFailed = "auth.signin_failed"
	AuditAuthRejected = "auth.rejected"
	AuditDenied       = "authz.denied"
	AuditRoleChanged  = "users.role_changed"
)

// AuditEvent is one entry in the security audit trail. SubjectID is the
// user the event concerns; for anonymous rejections it holds whatever
// identifier was presented (possibly empty).
type AuditEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subjectId"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
