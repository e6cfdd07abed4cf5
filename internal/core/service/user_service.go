package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// UserService implements directory operations over the user store.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// UpdateRole changes a user's role. Outstanding tokens keep their old
// role snapshot until they expire; the authentication guard resolves the
// new role on every request, so the change takes effect immediately for
// authorization purposes.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, id, parsedRole)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		Action:    domain.AuditRoleChanged,
		SubjectID: updated.ID,
		Detail:    "role=" + string(updated.Role),
		At:        time.Now().UTC(),
	})
	s.log.Info().Str("user_id", updated.ID).Str("role", string(updated.Role)).Msg("user role updated")
	return updated, nil
}
