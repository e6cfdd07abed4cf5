package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/domain"
)

func newTaskFixture(t *testing.T) (*TaskService, *stubTaskRepo, *stubUserRepo) {
	t.Helper()
	tasks := newStubTaskRepo()
	users := newStubUserRepo()
	return NewTaskService(tasks, users, zerolog.Nop()), tasks, users
}

func TestTaskService_Create(t *testing.T) {
	svc, _, _ := newTaskFixture(t)

	task, err := svc.Create(context.Background(), "Ship release", "cut the 1.4 tag", "a1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if task.Status != domain.TaskOpen {
		t.Fatalf("new tasks must be OPEN, got %s", task.Status)
	}
	if task.Assignee != nil {
		t.Fatalf("new tasks must be unassigned")
	}
	if task.CreatedBy != "a1" {
		t.Fatalf("unexpected creator: %s", task.CreatedBy)
	}
}

func TestTaskService_Assign(t *testing.T) {
	svc, _, users := newTaskFixture(t)
	worker := seedUser(t, users, "worker_user", domain.RoleWorker)

	task, err := svc.Create(context.Background(), "Inventory", "", "a1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	assigned, err := svc.Assign(context.Background(), task.ID, worker.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Assignee == nil || assigned.Assignee.ID != worker.ID {
		t.Fatalf("unexpected assignee: %+v", assigned.Assignee)
	}
	if assigned.Assignee.Username != "worker_user" {
		t.Fatalf("assignee snapshot missing username: %+v", assigned.Assignee)
	}
}

func TestTaskService_Assign_UserNotFound(t *testing.T) {
	svc, _, _ := newTaskFixture(t)

	task, err := svc.Create(context.Background(), "Orphan", "", "a1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Assign(context.Background(), task.ID, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTaskService_Assign_InactiveUser(t *testing.T) {
	svc, _, users := newTaskFixture(t)
	worker := seedUser(t, users, "gone", domain.RoleWorker)
	users.users[worker.ID].IsActive = false

	task, err := svc.Create(context.Background(), "Stuck", "", "a1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Assign(context.Background(), task.ID, worker.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for inactive assignee, got %v", err)
	}
}

func TestTaskService_Assign_TaskNotFound(t *testing.T) {
	svc, _, users := newTaskFixture(t)
	worker := seedUser(t, users, "worker_user", domain.RoleWorker)

	if _, err := svc.Assign(context.Background(), "missing", worker.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_List_ScopedByRole(t *testing.T) {
	svc, _, users := newTaskFixture(t)
	workerA := seedUser(t, users, "worker_a", domain.RoleWorker)
	workerB := seedUser(t, users, "worker_b", domain.RoleWorker)

	t1, _ := svc.Create(context.Background(), "one", "", "a1")
	t2, _ := svc.Create(context.Background(), "two", "", "a1")
	_, _ = svc.Create(context.Background(), "three", "", "a1")

	if _, err := svc.Assign(context.Background(), t1.ID, workerA.ID); err != nil {
		t.Fatalf("assign t1: %v", err)
	}
	if _, err := svc.Assign(context.Background(), t2.ID, workerB.ID); err != nil {
		t.Fatalf("assign t2: %v", err)
	}

	adminView, err := svc.List(context.Background(), domain.Principal{ID: "a1", Username: "boss", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminView) != 3 {
		t.Fatalf("admin must see all tasks, got %d", len(adminView))
	}

	aView, err := svc.List(context.Background(), domain.Principal{ID: workerA.ID, Username: "worker_a", Role: domain.RoleWorker})
	if err != nil {
		t.Fatalf("worker list: %v", err)
	}
	if len(aView) != 1 || aView[0].ID != t1.ID {
		t.Fatalf("worker_a must only see t1, got %+v", aView)
	}

	bView, err := svc.List(context.Background(), domain.Principal{ID: workerB.ID, Username: "worker_b", Role: domain.RoleWorker})
	if err != nil {
		t.Fatalf("worker list: %v", err)
	}
	for _, task := range bView {
		if task.ID == t1.ID {
			t.Fatalf("worker_b must not see worker_a's task")
		}
	}
}

func TestTaskService_Delete(t *testing.T) {
	svc, tasks, _ := newTaskFixture(t)

	task, err := svc.Create(context.Background(), "temp", "", "a1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := tasks.FindByID(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("task still present after delete")
	}

	if err := svc.Delete(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
