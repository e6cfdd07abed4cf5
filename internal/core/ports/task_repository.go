package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// TaskRepository defines the persistence contract for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByAssignee(ctx context.Context, userID string) ([]domain.Task, error)
	UpdateAssignee(ctx context.Context, id string, assignee *domain.Assignee) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
