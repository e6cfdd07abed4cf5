package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/ports"
)

// TaskHandler handles the task endpoints.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns tasks visible to the caller: every task for admins, only
// assigned tasks for workers.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Task}
// @Failure      401  {object}  envelope
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), p)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "tasks", tasks)
}

// Create adds a new task in OPEN state.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  envelope{data=domain.Task}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), req.Title, req.Description, p.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "task created", task)
}

// Assign points a task at a user.
//
// @Summary      Assign a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      assignTaskRequest  true  "Assignee"
// @Success      200   {object}  envelope{data=domain.Task}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/tasks/{id}/assign [patch]
func (h *TaskHandler) Assign(c echo.Context) error {
	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Assign(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "task assigned", task)
}

// Delete removes a task.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204  "no content"
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.taskService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
