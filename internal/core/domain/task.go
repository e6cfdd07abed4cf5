package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "OPEN"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// Assignee is the denormalized user snapshot embedded in a task. It is a
// weak reference: many tasks may point at one user, and deleting neither
// side cascades to the other.
type Assignee struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Task is the unit of work managed by the service.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Assignee    *Assignee  `json:"assignee"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
