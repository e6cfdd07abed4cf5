package domain

// Operation identifies an access-controlled action. The policy keys its
// decisions on these values, never on route paths.
type Operation string

const (
	OpListUsers      Operation = "users.list"
	OpViewUser       Operation = "users.view"
	OpUpdateUserRole Operation = "users.update_role"
	OpViewProfile    Operation = "users.me"
	OpListTasks      Operation = "tasks.list"
	OpCreateTask     Operation = "tasks.create"
	OpAssignTask     Operation = "tasks.assign"
	OpDeleteTask     Operation = "tasks.delete"
)

// Decision is the policy verdict. Denial is a regular value, not an
// error: callers translate Deny into a 403, while an error from Decide
// means the input itself was unusable.
type Decision string

const (
	Allow Decision = "allow"
	Deny  Decision = "deny"
)

// adminOnly lists the operations gated on an admin-capable role.
var adminOnly = map[Operation]struct{}{
	OpListUsers:      {},
	OpUpdateUserRole: {},
	OpCreateTask:     {},
	OpAssignTask:     {},
	OpDeleteTask:     {},
}

// Decide applies the access rules for one operation. resourceID is the
// id of the user the operation targets; it only participates in
// self-or-admin checks and may be empty for every other operation.
func Decide(p Principal, op Operation, resourceID string) (Decision, error) {
	if !p.Valid() {
		return Deny, ErrInvalidPrincipal
	}

	if _, ok := adminOnly[op]; ok {
		if p.Role.AtLeastAdmin() {
			return Allow, nil
		}
		return Deny, nil
	}

	switch op {
	case OpViewUser:
		// Self-or-admin: a user may always read their own profile.
		if p.Role.AtLeastAdmin() || p.ID == resourceID {
			return Allow, nil
		}
		return Deny, nil
	case OpViewProfile, OpListTasks:
		// Any authenticated principal. Result scoping for task lists
		// is a query concern of the handler, see ScopeToSelf.
		return Allow, nil
	}

	return Deny, nil
}

// ScopeToSelf reports whether list results must be restricted to
// resources assigned to the principal. Workers only see their own
// tasks; admin-capable roles see everything.
func ScopeToSelf(p Principal) bool {
	return !p.Role.AtLeastAdmin()
}
