package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// WorkspaceRepository defines the interface for workspace data operations.
// Create persists the workspace together with its initial admin member.
// Members are only ever appended, never removed; AddMembers persists the
// whole batch or nothing.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entities.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error)
	GetByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error)
	AddMembers(ctx context.Context, members []entities.Member) error
	GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]entities.Member, error)
}

// TaskListRepository defines the interface for task list data operations
type TaskListRepository interface {
	Create(ctx context.Context, list *entities.TaskList) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TaskList, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.TaskList, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	GetByList(ctx context.Context, listID uuid.UUID) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	GetNearDeadline(ctx context.Context, within time.Duration) ([]*entities.Task, error)
}

// NotificationRepository defines the interface for notification data
// operations. GetByUser returns newest-first, capped at the given limit.
// MarkRead is scoped to the owning user; other users' notifications are
// not found.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// AuthRepository defines the interface for refresh token persistence
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
