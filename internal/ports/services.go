package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for user profile operations
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*entities.User, error)
}

// WorkspaceService interface for workspace and membership operations
type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*entities.Workspace, error)
	GetWorkspace(ctx context.Context, id, userID uuid.UUID) (*entities.Workspace, error)
	GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error)
	InviteMembers(ctx context.Context, workspaceID, actorID uuid.UUID, emails []string) (*InviteResult, error)
}

// TaskListService interface for task list operations
type TaskListService interface {
	CreateTaskList(ctx context.Context, req CreateTaskListRequest) (*entities.TaskList, error)
	GetWorkspaceLists(ctx context.Context, workspaceID, userID uuid.UUID) ([]*entities.TaskList, error)
}

// TaskService interface for task operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	GetListTasks(ctx context.Context, listID uuid.UUID, filter TaskViewFilter) ([]*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	AssignTask(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) (*entities.Task, error)
	CompleteTask(ctx context.Context, taskID, completerID uuid.UUID) (*entities.Task, error)
}

// NotificationService interface for notification operations
type NotificationService interface {
	GetNotifications(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	SendDeadlineReminders(ctx context.Context, within time.Duration) (int, error)
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// User related types
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// Workspace related types
type CreateWorkspaceRequest struct {
	Name      string                 `json:"name" validate:"required,max=200"`
	Type      entities.WorkspaceType `json:"type" validate:"required"`
	CreatorID uuid.UUID              `json:"-"`
}

type InviteMembersRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,dive,required"`
}

// InviteResult reports the outcome of an invite batch.
type InviteResult struct {
	InvitedUserIDs []uuid.UUID `json:"invited_user_ids"`
	RemainingSlots int         `json:"remaining_slots"`
}

// Task list related types
type CreateTaskListRequest struct {
	WorkspaceID uuid.UUID `json:"-"`
	Title       string    `json:"title" validate:"required,max=200"`
	CreatorID   uuid.UUID `json:"-"`
}

// Task related types
type CreateTaskRequest struct {
	ListID      uuid.UUID  `json:"-"`
	Title       string     `json:"title" validate:"required,max=500"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Deadline    *time.Time `json:"deadline"`
	CreatorID   uuid.UUID  `json:"-"`
}

// UpdateTaskRequest carries a partial edit: nil fields keep the stored
// value. ClearDeadline removes the deadline, which a nil Deadline alone
// cannot express.
type UpdateTaskRequest struct {
	Title         *string    `json:"title" validate:"omitempty,max=500"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
	Deadline      *time.Time `json:"deadline"`
	ClearDeadline bool       `json:"clear_deadline"`
}

type AssignTaskRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

// TaskViewFilter carries the three client-side view filters. They are ANDed
// together; zero values mean no filtering.
type TaskViewFilter struct {
	Status        entities.StatusFilter
	Assignee      entities.AssigneeFilter
	CurrentUserID uuid.UUID
	Tag           *string
}

// Response types for common structures
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
