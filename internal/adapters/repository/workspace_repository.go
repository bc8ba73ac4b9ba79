package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/database"
	"github.com/collabtodo/core/internal/ports"
)

// WorkspaceRepositoryImpl implements the WorkspaceRepository interface
type WorkspaceRepositoryImpl struct {
	db *database.DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *database.DB) ports.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{db: db}
}

const insertMemberQuery = `
	INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
	VALUES ($1, $2, $3, $4)`

// Create inserts the workspace and its initial member rows in one
// transaction. The caller supplies the creator as the sole admin member.
func (r *WorkspaceRepositoryImpl) Create(ctx context.Context, workspace *entities.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	query := `
		INSERT INTO workspaces (id, name, type, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			workspace.ID, workspace.Name, workspace.Type, workspace.CreatedBy,
		).Scan(&workspace.CreatedAt, &workspace.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create workspace: %w", err)
		}

		for i := range workspace.Members {
			m := &workspace.Members[i]
			m.WorkspaceID = workspace.ID
			if _, err := tx.ExecContext(ctx, insertMemberQuery, m.WorkspaceID, m.UserID, m.Role, m.JoinedAt); err != nil {
				return fmt.Errorf("add initial member: %w", err)
			}
		}

		return nil
	})
}

func (r *WorkspaceRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error) {
	query := `
		SELECT id, name, type, created_by, created_at, updated_at
		FROM workspaces
		WHERE id = $1`

	var workspace entities.Workspace
	err := r.db.DB.GetContext(ctx, &workspace, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by id: %w", err)
	}

	members, err := r.GetMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	workspace.Members = members

	return &workspace, nil
}

func (r *WorkspaceRepositoryImpl) GetByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.type, w.created_by, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_members wm ON wm.workspace_id = w.id
		WHERE wm.user_id = $1
		ORDER BY w.created_at`

	var workspaces []*entities.Workspace
	err := r.db.DB.SelectContext(ctx, &workspaces, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get workspaces by member: %w", err)
	}

	for _, w := range workspaces {
		members, err := r.GetMembers(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		w.Members = members
	}

	return workspaces, nil
}

// AddMembers appends the batch in one transaction: a failure on any row
// rolls back the whole batch, so a partially applied invite is impossible.
func (r *WorkspaceRepositoryImpl) AddMembers(ctx context.Context, members []entities.Member) error {
	if len(members) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, m := range members {
			if _, err := tx.ExecContext(ctx, insertMemberQuery, m.WorkspaceID, m.UserID, m.Role, m.JoinedAt); err != nil {
				return fmt.Errorf("add member: %w", err)
			}
		}
		return nil
	})
}

func (r *WorkspaceRepositoryImpl) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]entities.Member, error) {
	query := `
		SELECT wm.workspace_id, wm.user_id, wm.role, wm.joined_at, u.display_name
		FROM workspace_members wm
		JOIN users u ON u.id = wm.user_id
		WHERE wm.workspace_id = $1
		ORDER BY wm.joined_at`

	var members []entities.Member
	err := r.db.DB.SelectContext(ctx, &members, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}

	return members, nil
}
