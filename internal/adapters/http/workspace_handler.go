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

// WorkspaceHandler handles workspace and task list requests
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
	listService      *services.TaskListService
	logger           *logger.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *services.WorkspaceService, listService *services.TaskListService, logger *logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		listService:      listService,
		logger:           logger,
	}
}

// ListWorkspaces returns all workspaces the current user belongs to
func (h *WorkspaceHandler) ListWorkspaces(c echo.Context) error {
	userID := getUserIDFromContext(c)

	workspaces, err := h.workspaceService.GetUserWorkspaces(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List workspaces failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve workspaces")
	}

	return c.JSON(http.StatusOK, workspaces)
}

// CreateWorkspace handles workspace creation
func (h *WorkspaceHandler) CreateWorkspace(c echo.Context) error {
	var req ports.CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.CreatorID = getUserIDFromContext(c)

	workspace, err := h.workspaceService.CreateWorkspace(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidWorkspaceType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error("Create workspace failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create workspace")
	}

	return c.JSON(http.StatusCreated, workspace)
}

// GetWorkspace returns one workspace with its members
func (h *WorkspaceHandler) GetWorkspace(c echo.Context) error {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid workspace ID")
	}

	userID := getUserIDFromContext(c)

	workspace, err := h.workspaceService.GetWorkspace(c.Request().Context(), workspaceID, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNotAMember) {
			return echo.NewHTTPError(http.StatusForbidden, "Not a workspace member")
		}
		return echo.NewHTTPError(http.StatusNotFound, "Workspace not found")
	}

	return c.JSON(http.StatusOK, workspace)
}

// InviteMembers handles an invite batch for a workspace
func (h *WorkspaceHandler) InviteMembers(c echo.Context) error {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid workspace ID")
	}

	var req ports.InviteMembersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID := getUserIDFromContext(c)

	result, err := h.workspaceService.InviteMembers(c.Request().Context(), workspaceID, actorID, req.Emails)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrNotAnAdmin):
			return echo.NewHTTPError(http.StatusForbidden, "Only workspace admins can invite members")
		case errors.Is(err, entities.ErrNoEmails),
			errors.Is(err, entities.ErrInvalidEmail),
			errors.Is(err, entities.ErrWorkspaceFull):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, entities.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, entities.ErrWorkspaceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Workspace not found")
		}
		h.logger.Error("Invite members failed", "error", err, "workspace_id", workspaceID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to invite members")
	}

	return c.JSON(http.StatusOK, result)
}

// ListTaskLists returns the task lists of a workspace
func (h *WorkspaceHandler) ListTaskLists(c echo.Context) error {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid workspace ID")
	}

	userID := getUserIDFromContext(c)

	lists, err := h.listService.GetWorkspaceLists(c.Request().Context(), workspaceID, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNotAMember) {
			return echo.NewHTTPError(http.StatusForbidden, "Not a workspace member")
		}
		if errors.Is(err, entities.ErrWorkspaceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Workspace not found")
		}
		h.logger.Error("List task lists failed", "error", err, "workspace_id", workspaceID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve task lists")
	}

	return c.JSON(http.StatusOK, lists)
}

// CreateTaskList handles task list creation inside a workspace
func (h *WorkspaceHandler) CreateTaskList(c echo.Context) error {
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid workspace ID")
	}

	var req ports.CreateTaskListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.WorkspaceID = workspaceID
	req.CreatorID = getUserIDFromContext(c)

	list, err := h.listService.CreateTaskList(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrNotAMember) {
			return echo.NewHTTPError(http.StatusForbidden, "Not a workspace member")
		}
		if errors.Is(err, entities.ErrWorkspaceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Workspace not found")
		}
		h.logger.Error("Create task list failed", "error", err, "workspace_id", workspaceID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task list")
	}

	return c.JSON(http.StatusCreated, list)
}
