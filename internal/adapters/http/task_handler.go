package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/collabtodo/core/internal/application/services"
	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

// TaskHandler handles task requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns the tasks of a list with view filters applied.
// Query params: status (all|active|completed), assignee
// (all|me|others|unassigned), tag (exact tag string).
func (h *TaskHandler) ListTasks(c echo.Context) error {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid list ID")
	}

	filter := ports.TaskViewFilter{
		Status:        entities.StatusAll,
		Assignee:      entities.AssigneeAll,
		CurrentUserID: getUserIDFromContext(c),
	}

	if status := c.QueryParam("status"); status != "" {
		sf := entities.StatusFilter(status)
		if !sf.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
		}
		filter.Status = sf
	}

	if assignee := c.QueryParam("assignee"); assignee != "" {
		af := entities.AssigneeFilter(assignee)
		if !af.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid assignee filter")
		}
		filter.Assignee = af
	}

	if tag := c.QueryParam("tag"); tag != "" {
		filter.Tag = &tag
	}

	tasks, err := h.taskService.GetListTasks(c.Request().Context(), listID, filter)
	if err != nil {
		if errors.Is(err, entities.ErrTaskListNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task list not found")
		}
		h.logger.Error("List tasks failed", "error", err, "list_id", listID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask handles task creation inside a list
func (h *TaskHandler) CreateTask(c echo.Context) error {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid list ID")
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.ListID = listID
	req.CreatorID = getUserIDFromContext(c)

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskListNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task list not found")
		}
		if errors.Is(err, entities.ErrNotAMember) {
			return echo.NewHTTPError(http.StatusForbidden, "Not a workspace member")
		}
		h.logger.Error("Create task failed", "error", err, "list_id", listID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), taskID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles editing a task's title/description/deadline
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), taskID, req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Error("Update task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

// AssignTask sets or clears a task's assignee
func (h *TaskHandler) AssignTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req ports.AssignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.AssignTask(c.Request().Context(), taskID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		case errors.Is(err, entities.ErrNotAMember):
			return echo.NewHTTPError(http.StatusBadRequest, "Assignee is not a workspace member")
		case errors.Is(err, entities.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Assignee not found")
		}
		h.logger.Error("Assign task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assign task")
	}

	return c.JSON(http.StatusOK, task)
}

// CompleteTask marks a task completed. Re-completing is a no-op success.
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	completerID := getUserIDFromContext(c)

	task, err := h.taskService.CompleteTask(c.Request().Context(), taskID, completerID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Error("Complete task failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete task")
	}

	return c.JSON(http.StatusOK, task)
}
