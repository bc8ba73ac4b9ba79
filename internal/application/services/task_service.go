package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

// TaskService handles task operations, including the notification side
// effects of assignment and completion.
type TaskService struct {
	taskRepo         ports.TaskRepository
	listRepo         ports.TaskListRepository
	workspaceRepo    ports.WorkspaceRepository
	userRepo         ports.UserRepository
	notificationRepo ports.NotificationRepository
	logger           *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, listRepo ports.TaskListRepository, workspaceRepo ports.WorkspaceRepository, userRepo ports.UserRepository, notificationRepo ports.NotificationRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:         taskRepo,
		listRepo:         listRepo,
		workspaceRepo:    workspaceRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateTask creates an unassigned, incomplete task. Tags are derived from
// the title and description.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	list, err := s.listRepo.GetByID(ctx, req.ListID)
	if err != nil {
		return nil, fmt.Errorf("task list not found: %w", err)
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, list.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}
	if !workspace.HasMember(req.CreatorID) {
		return nil, entities.ErrNotAMember
	}

	task := &entities.Task{
		ID:          uuid.New(),
		ListID:      list.ID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		CreatedBy:   req.CreatorID,
	}
	task.RefreshTags()

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "list_id", list.ID, "tags", []string(task.Tags))

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	return task, nil
}

// GetListTasks retrieves the tasks of a list with the view filters applied.
// Filtering happens after the fetch and preserves stored order.
func (s *TaskService) GetListTasks(ctx context.Context, listID uuid.UUID, filter ports.TaskViewFilter) ([]*entities.Task, error) {
	if _, err := s.listRepo.GetByID(ctx, listID); err != nil {
		return nil, fmt.Errorf("task list not found: %w", err)
	}

	tasks, err := s.taskRepo.GetByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	status := filter.Status
	if status == "" {
		status = entities.StatusAll
	}
	assignee := filter.Assignee
	if assignee == "" {
		assignee = entities.AssigneeAll
	}

	return entities.FilterTasks(tasks, status, assignee, filter.CurrentUserID, filter.Tag), nil
}

// UpdateTask edits title/description/deadline. Nil request fields keep the
// stored value; ClearDeadline drops the deadline. Tags are re-derived from
// the updated text; there is no other way to change them.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	title := task.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := task.Description
	if req.Description != nil {
		description = req.Description
	}
	deadline := task.Deadline
	if req.ClearDeadline {
		deadline = nil
	} else if req.Deadline != nil {
		deadline = req.Deadline
	}

	task.SetContent(title, description, deadline)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task updated", "task_id", task.ID, "tags", []string(task.Tags))

	return task, nil
}

// AssignTask sets or clears the assignee. The assignee must be a member of
// the task's owning workspace. Assigning notifies the new assignee;
// unassigning notifies nobody.
func (s *TaskService) AssignTask(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	if assigneeID == nil {
		task.Assign(nil, nil)
	} else {
		workspace, err := s.resolveWorkspace(ctx, task)
		if err != nil {
			return nil, err
		}
		if !workspace.HasMember(*assigneeID) {
			return nil, entities.ErrNotAMember
		}

		assignee, err := s.userRepo.GetByID(ctx, *assigneeID)
		if err != nil {
			return nil, fmt.Errorf("assignee not found: %w", err)
		}

		task.Assign(assigneeID, &assignee.DisplayName)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	if assigneeID != nil {
		notification := &entities.Notification{
			ID:        uuid.New(),
			UserID:    *assigneeID,
			Type:      entities.NotificationTaskAssigned,
			RelatedID: task.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to create assignment notification: %w", err)
		}
	}

	s.logger.Info("Task assignment changed", "task_id", task.ID, "assignee_id", assigneeID)

	return task, nil
}

// CompleteTask marks the task completed and fans out notifications to the
// other workspace members. Completing an already-completed task is a no-op
// success. The completed flag is authoritative: fan-out failures are logged
// and never fail the completion.
func (s *TaskService) CompleteTask(ctx context.Context, taskID, completerID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	if !task.Complete(completerID, time.Now()) {
		return task, nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	s.logger.Info("Task completed", "task_id", task.ID, "completed_by", completerID)

	s.fanOutCompletion(ctx, task, completerID)

	return task, nil
}

// fanOutCompletion notifies every workspace member except the actor. Any
// failure here is logged and swallowed.
func (s *TaskService) fanOutCompletion(ctx context.Context, task *entities.Task, completerID uuid.UUID) {
	workspace, err := s.resolveWorkspace(ctx, task)
	if err != nil {
		s.logger.Errorw("Completion fan-out: failed to resolve workspace",
			"error", err, "task_id", task.ID)
		return
	}

	for _, member := range workspace.Members {
		if member.UserID == completerID {
			continue
		}

		notification := &entities.Notification{
			ID:        uuid.New(),
			UserID:    member.UserID,
			Type:      entities.NotificationTaskCompleted,
			RelatedID: task.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.Errorw("Completion fan-out: failed to create notification",
				"error", err, "task_id", task.ID, "user_id", member.UserID)
		}
	}
}

func (s *TaskService) resolveWorkspace(ctx context.Context, task *entities.Task) (*entities.Workspace, error) {
	list, err := s.listRepo.GetByID(ctx, task.ListID)
	if err != nil {
		return nil, fmt.Errorf("task list not found: %w", err)
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, list.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspace not found: %w", err)
	}

	return workspace, nil
}
