package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// TaskService implements task CRUD and assignment.
type TaskService struct {
	tasks ports.TaskRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, log: log}
}

// Create inserts a new task in OPEN state with no assignee.
func (s *TaskService) Create(ctx context.Context, title, description, createdBy string) (*domain.Task, error) {
	now := time.Now().UTC()
	task := &domain.Task{
		Title:       title,
		Description: description,
		Status:      domain.TaskOpen,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.log.Info().Str("task_id", created.ID).Str("created_by", createdBy).Msg("task created")
	return created, nil
}

// List returns every task for admin-capable callers and only the
// caller's assigned tasks for workers.
func (s *TaskService) List(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	if domain.ScopeToSelf(p) {
		return s.tasks.FindByAssignee(ctx, p.ID)
	}
	return s.tasks.FindAll(ctx)
}

// Assign points a task at a user. The user must exist and be active; the
// task keeps a denormalized snapshot of the assignee's identity.
func (s *TaskService) Assign(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserNotFound
	}

	updated, err := s.tasks.UpdateAssignee(ctx, taskID, &domain.Assignee{
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", updated.ID).Str("assignee_id", user.ID).Msg("task assigned")
	return updated, nil
}

// Delete removes a task permanently.
func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.log.Info().Str("task_id", taskID).Msg("task deleted")
	return nil
}
