package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

// TaskListService handles task list operations
type TaskListService struct {
	listRepo      ports.TaskListRepository
	workspaceRepo ports.WorkspaceRepository
	logger        *logger.Logger
}

// NewTaskListService creates a new task list service
func NewTaskListService(listRepo ports.TaskListRepository, workspaceRepo ports.WorkspaceRepository, logger *logger.Logger) *TaskListService {
	return &TaskListService{
		listRepo:      listRepo,
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// CreateTaskList creates a list inside a workspace the creator belongs to.
func (s *TaskListService) CreateTaskList(ctx context.Context, req ports.CreateTaskListRequest) (*entities.TaskList, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, req.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}

	if !workspace.HasMember(req.CreatorID) {
		return nil, entities.ErrNotAMember
	}

	list := &entities.TaskList{
		ID:          uuid.New(),
		WorkspaceID: workspace.ID,
		Title:       req.Title,
		CreatedBy:   req.CreatorID,
	}

	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}

	s.logger.Info("Task list created", "list_id", list.ID, "workspace_id", workspace.ID)

	return list, nil
}

// GetWorkspaceLists retrieves the lists of a workspace the user belongs to.
func (s *TaskListService) GetWorkspaceLists(ctx context.Context, workspaceID, userID uuid.UUID) ([]*entities.TaskList, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}

	if !workspace.HasMember(userID) {
		return nil, entities.ErrNotAMember
	}

	lists, err := s.listRepo.GetByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	return lists, nil
}
