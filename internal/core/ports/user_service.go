package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// UserService exposes user directory operations. Access control happens
// before these are called; the service assumes an authorized caller.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}
