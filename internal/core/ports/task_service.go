package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// TaskService exposes task operations. List shapes its result set by the
// caller's principal; the remaining operations assume the policy already
// authorized the caller.
type TaskService interface {
	Create(ctx context.Context, title, description, createdBy string) (*domain.Task, error)
	List(ctx context.Context, p domain.Principal) ([]domain.Task, error)
	Assign(ctx context.Context, taskID, userID string) (*domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}
