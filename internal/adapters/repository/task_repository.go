package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/ports"
)

// TaskListRepositoryImpl implements the TaskListRepository interface
type TaskListRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskListRepository creates a new task list repository
func NewTaskListRepository(db *sqlx.DB) ports.TaskListRepository {
	return &TaskListRepositoryImpl{db: db}
}

func (r *TaskListRepositoryImpl) Create(ctx context.Context, list *entities.TaskList) error {
	query := `
		INSERT INTO task_lists (id, workspace_id, title, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		list.ID, list.WorkspaceID, list.Title, list.CreatedBy,
	).Scan(&list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task list: %w", err)
	}

	return nil
}

func (r *TaskListRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.TaskList, error) {
	query := `
		SELECT id, workspace_id, title, created_by, created_at, updated_at
		FROM task_lists
		WHERE id = $1`

	var list entities.TaskList
	err := r.db.GetContext(ctx, &list, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskListNotFound
		}
		return nil, fmt.Errorf("get task list by id: %w", err)
	}

	return &list, nil
}

func (r *TaskListRepositoryImpl) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.TaskList, error) {
	query := `
		SELECT id, workspace_id, title, created_by, created_at, updated_at
		FROM task_lists
		WHERE workspace_id = $1
		ORDER BY created_at`

	var lists []*entities.TaskList
	err := r.db.SelectContext(ctx, &lists, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("get task lists by workspace: %w", err)
	}

	return lists, nil
}

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, list_id, title, description, deadline, assigned_to,
			assigned_to_name, tags, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.ListID, task.Title, task.Description, task.Deadline,
		task.AssignedTo, task.AssignedToName, task.Tags, task.CreatedBy,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, list_id, title, description, deadline, completed, completed_at,
			completed_by, assigned_to, assigned_to_name, tags, created_by,
			created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) GetByList(ctx context.Context, listID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT id, list_id, title, description, deadline, completed, completed_at,
			completed_by, assigned_to, assigned_to_name, tags, created_by,
			created_at, updated_at
		FROM tasks
		WHERE list_id = $1
		ORDER BY created_at`

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, listID)
	if err != nil {
		return nil, fmt.Errorf("get tasks by list: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, deadline = $4, completed = $5,
			completed_at = $6, completed_by = $7, assigned_to = $8,
			assigned_to_name = $9, tags = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Deadline, task.Completed,
		task.CompletedAt, task.CompletedBy, task.AssignedTo, task.AssignedToName,
		task.Tags,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetNearDeadline(ctx context.Context, within time.Duration) ([]*entities.Task, error) {
	query := `
		SELECT id, list_id, title, description, deadline, completed, completed_at,
			completed_by, assigned_to, assigned_to_name, tags, created_by,
			created_at, updated_at
		FROM tasks
		WHERE completed = false
			AND deadline IS NOT NULL
			AND deadline BETWEEN CURRENT_TIMESTAMP AND CURRENT_TIMESTAMP + $1::interval
		ORDER BY deadline`

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, within.String())
	if err != nil {
		return nil, fmt.Errorf("get tasks near deadline: %w", err)
	}

	return tasks, nil
}
