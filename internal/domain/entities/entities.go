package entities

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Common errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrTaskListNotFound     = errors.New("task list not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotAMember           = errors.New("user is not a workspace member")
	ErrNotAnAdmin           = errors.New("user is not a workspace admin")
	ErrNoEmails             = errors.New("no email addresses provided")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrWorkspaceFull        = errors.New("workspace member limit reached")
	ErrInvalidWorkspaceType = errors.New("invalid workspace type")
)

// Enums and types
type WorkspaceType string

const (
	WorkspaceTypePersonal WorkspaceType = "personal"
	WorkspaceTypeCouple   WorkspaceType = "couple"
	WorkspaceTypeFamily   WorkspaceType = "family"
)

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

type NotificationType string

const (
	NotificationTaskAssigned        NotificationType = "task_assigned"
	NotificationTaskCompleted       NotificationType = "task_completed"
	NotificationDeadlineReminder    NotificationType = "deadline_reminder"
	NotificationWorkspaceInvitation NotificationType = "workspace_invitation"
)

// emailPattern is the same check the invite form applies before submitting.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User represents a registered user. Profiles are created on first sign-up
// and only the display name and last-login timestamp change afterwards.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	PhotoURL     *string    `json:"photo_url" db:"photo_url"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// Workspace is a named collaboration scope with a type-capped member list.
type Workspace struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Type      WorkspaceType `json:"type" db:"type"`
	CreatedBy uuid.UUID     `json:"created_by" db:"created_by"`
	Members   []Member      `json:"members"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// Member is a (user, role) pairing within a workspace.
type Member struct {
	WorkspaceID uuid.UUID  `json:"workspace_id" db:"workspace_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Role        MemberRole `json:"role" db:"role"`
	DisplayName string     `json:"display_name" db:"display_name"`
	JoinedAt    time.Time  `json:"joined_at" db:"joined_at"`
}

// TaskList groups tasks within exactly one workspace.
type TaskList struct {
	ID          uuid.UUID `json:"id" db:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id" db:"workspace_id"`
	Title       string    `json:"title" db:"title"`
	CreatedBy   uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Task is a unit of work with optional deadline, assignee, and derived tags.
// Tags are never stored independently of the text: they are re-derived from
// title and description on every edit.
type Task struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	ListID         uuid.UUID      `json:"list_id" db:"list_id"`
	Title          string         `json:"title" db:"title"`
	Description    *string        `json:"description" db:"description"`
	Deadline       *time.Time     `json:"deadline" db:"deadline"`
	Completed      bool           `json:"completed" db:"completed"`
	CompletedAt    *time.Time     `json:"completed_at" db:"completed_at"`
	CompletedBy    *uuid.UUID     `json:"completed_by" db:"completed_by"`
	AssignedTo     *uuid.UUID     `json:"assigned_to" db:"assigned_to"`
	AssignedToName *string        `json:"assigned_to_name" db:"assigned_to_name"`
	Tags           pq.StringArray `json:"tags" db:"tags"`
	CreatedBy      uuid.UUID      `json:"created_by" db:"created_by"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Notification is a per-user record of a domain event. Created by the system
// in response to assign/complete/invite actions; mutated only by mark-read.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	RelatedID uuid.UUID        `json:"related_id" db:"related_id"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// MemberCap returns the maximum member count for the workspace type.
func (wt WorkspaceType) MemberCap() int {
	switch wt {
	case WorkspaceTypePersonal:
		return 1
	case WorkspaceTypeCouple:
		return 2
	case WorkspaceTypeFamily:
		return 20
	default:
		return 0
	}
}

func (wt WorkspaceType) IsValid() bool {
	switch wt {
	case WorkspaceTypePersonal, WorkspaceTypeCouple, WorkspaceTypeFamily:
		return true
	default:
		return false
	}
}

func (mr MemberRole) IsValid() bool {
	return mr == MemberRoleAdmin || mr == MemberRoleMember
}

func (nt NotificationType) IsValid() bool {
	switch nt {
	case NotificationTaskAssigned, NotificationTaskCompleted,
		NotificationDeadlineReminder, NotificationWorkspaceInvitation:
		return true
	default:
		return false
	}
}

// Business logic methods for Workspace

// RemainingSlots reports how many more members the workspace can take.
func (w *Workspace) RemainingSlots() int {
	return w.Type.MemberCap() - len(w.Members)
}

// HasMember reports whether the user belongs to the workspace.
func (w *Workspace) HasMember(userID uuid.UUID) bool {
	for _, m := range w.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user is an admin member of the workspace.
func (w *Workspace) IsAdmin(userID uuid.UUID) bool {
	for _, m := range w.Members {
		if m.UserID == userID && m.Role == MemberRoleAdmin {
			return true
		}
	}
	return false
}

// CheckInvite validates an invite batch against the workspace's member cap.
// It returns the number of remaining slots alongside any validation error so
// callers can report capacity even when the batch is rejected. A full
// workspace is reported, never silently truncated.
func (w *Workspace) CheckInvite(emails []string) (int, error) {
	remaining := w.RemainingSlots()

	if len(emails) == 0 {
		return remaining, ErrNoEmails
	}

	for _, email := range emails {
		if !emailPattern.MatchString(email) {
			return remaining, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
		}
	}

	if remaining <= 0 {
		return remaining, ErrWorkspaceFull
	}

	if len(emails) > remaining {
		return remaining, fmt.Errorf("%w: %d invite(s) requested, %d slot(s) left", ErrWorkspaceFull, len(emails), remaining)
	}

	return remaining, nil
}

// Business logic methods for Task

// Assign sets or clears the assignee. Assignment is allowed in any state,
// including on completed tasks; it never requires reopening.
func (t *Task) Assign(userID *uuid.UUID, displayName *string) {
	t.AssignedTo = userID
	if userID == nil {
		t.AssignedToName = nil
	} else {
		t.AssignedToName = displayName
	}
	t.UpdatedAt = time.Now()
}

// Complete marks the task completed, stamping who and when. Completing an
// already-completed task is a no-op, not an error. The return value reports
// whether the call actually transitioned the task, so callers know whether
// to fan out notifications.
func (t *Task) Complete(userID uuid.UUID, now time.Time) bool {
	if t.Completed {
		return false
	}
	t.Completed = true
	t.CompletedAt = &now
	t.CompletedBy = &userID
	t.UpdatedAt = now
	return true
}

// SetContent updates title/description/deadline and re-derives the tag set.
func (t *Task) SetContent(title string, description *string, deadline *time.Time) {
	t.Title = title
	t.Description = description
	t.Deadline = deadline
	t.RefreshTags()
	t.UpdatedAt = time.Now()
}

// RefreshTags recomputes the tag set from the task's title and description.
func (t *Task) RefreshTags() {
	desc := ""
	if t.Description != nil {
		desc = *t.Description
	}
	t.Tags = pq.StringArray(MergeTags(ExtractTags(t.Title), ExtractTags(desc)))
}

// HasTag reports whether the exact tag string is in the task's tag set.
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the task has a deadline in the past and is
// still open.
func (t *Task) IsOverdue() bool {
	if t.Deadline == nil {
		return false
	}
	return time.Now().After(*t.Deadline) && !t.Completed
}
