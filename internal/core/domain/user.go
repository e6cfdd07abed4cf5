package domain

import "time"

// Role is the fixed set of access levels a user can hold.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleWorker     Role = "WORKER"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ParseRole validates a raw role string from an API payload.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleWorker, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// AtLeastAdmin reports whether the role carries admin capabilities.
// SUPERADMIN strictly extends ADMIN: every admin-gated operation is
// open to it.
func (r Role) AtLeastAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the persisted account record.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the authenticated identity attached to a request. It is
// derived per request: identity fields come from the verified token's
// subject, while Role reflects the user store at request time, not the
// snapshot embedded in the token.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Valid reports whether the principal carries the fields every
// authorization decision depends on.
func (p Principal) Valid() bool {
	if p.ID == "" || p.Username == "" {
		return false
	}
	_, err := ParseRole(string(p.Role))
	return err == nil
}
