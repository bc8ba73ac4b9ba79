package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/ports"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) add(email, displayName string) *entities.User {
	user := &entities.User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	user, ok := r.users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	user.DisplayName = displayName
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	user.LastLoginAt = &at
	return nil
}

type fakeWorkspaceRepo struct {
	workspaces     map[uuid.UUID]*entities.Workspace
	failAddMembers bool
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]*entities.Workspace)}
}

func (r *fakeWorkspaceRepo) Create(ctx context.Context, workspace *entities.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}
	for i := range workspace.Members {
		workspace.Members[i].WorkspaceID = workspace.ID
	}
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = workspace.CreatedAt
	r.workspaces[workspace.ID] = workspace
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error) {
	workspace, ok := r.workspaces[id]
	if !ok {
		return nil, entities.ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (r *fakeWorkspaceRepo) GetByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Workspace, error) {
	var result []*entities.Workspace
	for _, workspace := range r.workspaces {
		if workspace.HasMember(userID) {
			result = append(result, workspace)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// AddMembers mirrors the real repository: the batch lands whole or not at
// all, and a duplicate row fails the batch like the composite key would.
func (r *fakeWorkspaceRepo) AddMembers(ctx context.Context, members []entities.Member) error {
	if len(members) == 0 {
		return nil
	}
	if r.failAddMembers {
		return errMemberStore
	}
	workspace, ok := r.workspaces[members[0].WorkspaceID]
	if !ok {
		return entities.ErrWorkspaceNotFound
	}
	for i, m := range members {
		if workspace.HasMember(m.UserID) {
			return errFake("duplicate workspace member")
		}
		for _, other := range members[i+1:] {
			if other.UserID == m.UserID {
				return errFake("duplicate workspace member")
			}
		}
	}
	workspace.Members = append(workspace.Members, members...)
	return nil
}

func (r *fakeWorkspaceRepo) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]entities.Member, error) {
	workspace, ok := r.workspaces[workspaceID]
	if !ok {
		return nil, entities.ErrWorkspaceNotFound
	}
	return workspace.Members, nil
}

type fakeTaskListRepo struct {
	lists map[uuid.UUID]*entities.TaskList
}

func newFakeTaskListRepo() *fakeTaskListRepo {
	return &fakeTaskListRepo{lists: make(map[uuid.UUID]*entities.TaskList)}
}

func (r *fakeTaskListRepo) Create(ctx context.Context, list *entities.TaskList) error {
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	list.CreatedAt = time.Now()
	list.UpdatedAt = list.CreatedAt
	r.lists[list.ID] = list
	return nil
}

func (r *fakeTaskListRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.TaskList, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, entities.ErrTaskListNotFound
	}
	return list, nil
}

func (r *fakeTaskListRepo) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*entities.TaskList, error) {
	var result []*entities.TaskList
	for _, list := range r.lists {
		if list.WorkspaceID == workspaceID {
			result = append(result, list)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
	order []uuid.UUID
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) GetByList(ctx context.Context, listID uuid.UUID) ([]*entities.Task, error) {
	var result []*entities.Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.ListID == listID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) GetNearDeadline(ctx context.Context, within time.Duration) ([]*entities.Task, error) {
	now := time.Now()
	cutoff := now.Add(within)
	var result []*entities.Task
	for _, id := range r.order {
		task := r.tasks[id]
		if task.Completed || task.Deadline == nil {
			continue
		}
		if task.Deadline.After(now) && task.Deadline.Before(cutoff) {
			result = append(result, task)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	notifications []*entities.Notification
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entities.Notification) error {
	if r.failCreate {
		return errNotificationStore
	}
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now().Add(time.Duration(len(r.notifications)) * time.Millisecond)
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Notification, error) {
	var result []*entities.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return entities.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byType(t entities.NotificationType) []*entities.Notification {
	var result []*entities.Notification
	for _, n := range r.notifications {
		if n.Type == t {
			result = append(result, n)
		}
	}
	return result
}

type fakeAuthRepo struct {
	tokens map[string]*ports.RefreshToken
	nextID int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*ports.RefreshToken)}
}

func (r *fakeAuthRepo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.nextID++
	r.tokens[tokenHash] = &ports.RefreshToken{
		ID:        r.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeAuthRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, errFake("refresh token not found")
	}
	return token, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeAuthRepo) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

var errNotificationStore = errFake("notification store unavailable")

var errMemberStore = errFake("member store unavailable")

type errFake string

func (e errFake) Error() string { return string(e) }

var _ ports.UserRepository = (*fakeUserRepo)(nil)
var _ ports.WorkspaceRepository = (*fakeWorkspaceRepo)(nil)
var _ ports.TaskListRepository = (*fakeTaskListRepo)(nil)
var _ ports.TaskRepository = (*fakeTaskRepo)(nil)
var _ ports.NotificationRepository = (*fakeNotificationRepo)(nil)
var _ ports.AuthRepository = (*fakeAuthRepo)(nil)
