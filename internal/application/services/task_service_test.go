package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

type taskFixture struct {
	svc              *TaskService
	userRepo         *fakeUserRepo
	workspaceRepo    *fakeWorkspaceRepo
	listRepo         *fakeTaskListRepo
	taskRepo         *fakeTaskRepo
	notificationRepo *fakeNotificationRepo

	workspace *entities.Workspace
	list      *entities.TaskList
	members   []*entities.User
}

// newTaskFixture builds a family workspace with the given number of members
// (the first one is the admin creator) and one task list.
func newTaskFixture(t *testing.T, memberCount int) *taskFixture {
	t.Helper()

	f := &taskFixture{
		userRepo:         newFakeUserRepo(),
		workspaceRepo:    newFakeWorkspaceRepo(),
		listRepo:         newFakeTaskListRepo(),
		taskRepo:         newFakeTaskRepo(),
		notificationRepo: newFakeNotificationRepo(),
	}
	f.svc = NewTaskService(f.taskRepo, f.listRepo, f.workspaceRepo, f.userRepo, f.notificationRepo, logger.NewNop())

	var members []entities.Member
	for i := 0; i < memberCount; i++ {
		user := f.userRepo.add(uuid.NewString()+"@example.com", "Member")
		f.members = append(f.members, user)
		role := entities.MemberRoleMember
		if i == 0 {
			role = entities.MemberRoleAdmin
		}
		members = append(members, entities.Member{
			UserID:      user.ID,
			Role:        role,
			DisplayName: user.DisplayName,
			JoinedAt:    time.Now(),
		})
	}

	f.workspace = &entities.Workspace{
		ID:        uuid.New(),
		Name:      "Family",
		Type:      entities.WorkspaceTypeFamily,
		CreatedBy: f.members[0].ID,
		Members:   members,
	}
	if err := f.workspaceRepo.Create(context.Background(), f.workspace); err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	f.list = &entities.TaskList{
		ID:          uuid.New(),
		WorkspaceID: f.workspace.ID,
		Title:       "Groceries",
		CreatedBy:   f.members[0].ID,
	}
	if err := f.listRepo.Create(context.Background(), f.list); err != nil {
		t.Fatalf("create list: %v", err)
	}

	return f
}

func (f *taskFixture) createTask(t *testing.T, title string, description *string) *entities.Task {
	t.Helper()
	task, err := f.svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		ListID:      f.list.ID,
		Title:       title,
		Description: description,
		CreatorID:   f.members[0].ID,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return task
}

func strPtr(s string) *string { return &s }

func TestCreateTaskDerivesTags(t *testing.T) {
	f := newTaskFixture(t, 1)

	task := f.createTask(t, "Buy #milk and #eggs", strPtr("from the #farm stand"))

	want := []string{"milk", "eggs", "farm"}
	if len(task.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", task.Tags, want)
	}
	for i, tag := range want {
		if task.Tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, task.Tags[i], tag)
		}
	}
	if task.Completed {
		t.Error("new task is completed")
	}
	if task.AssignedTo != nil {
		t.Error("new task has an assignee")
	}
}

func TestCreateTaskRequiresMembership(t *testing.T) {
	f := newTaskFixture(t, 1)
	outsider := f.userRepo.add("eve@example.com", "Eve")

	_, err := f.svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		ListID:    f.list.ID,
		Title:     "Sneaky",
		CreatorID: outsider.ID,
	})
	if !errors.Is(err, entities.ErrNotAMember) {
		t.Fatalf("got %v, want ErrNotAMember", err)
	}
}

func TestUpdateTaskRederivesTags(t *testing.T) {
	f := newTaskFixture(t, 1)
	task := f.createTask(t, "Buy #milk", nil)

	updated, err := f.svc.UpdateTask(context.Background(), task.ID, ports.UpdateTaskRequest{
		Title: strPtr("Buy #bread"),
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if len(updated.Tags) != 1 || updated.Tags[0] != "bread" {
		t.Errorf("tags = %v, want [bread]", updated.Tags)
	}
}

func TestUpdateTaskClearsDeadline(t *testing.T) {
	f := newTaskFixture(t, 1)
	deadline := time.Now().Add(48 * time.Hour)

	task, err := f.svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		ListID:    f.list.ID,
		Title:     "File taxes",
		Deadline:  &deadline,
		CreatorID: f.members[0].ID,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// A nil Deadline keeps the stored value.
	updated, err := f.svc.UpdateTask(context.Background(), task.ID, ports.UpdateTaskRequest{
		Title: strPtr("File taxes early"),
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Deadline == nil || !updated.Deadline.Equal(deadline) {
		t.Fatalf("Deadline = %v, want %v", updated.Deadline, deadline)
	}

	// ClearDeadline is the only way to remove it.
	updated, err = f.svc.UpdateTask(context.Background(), task.ID, ports.UpdateTaskRequest{
		ClearDeadline: true,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Deadline != nil {
		t.Fatalf("Deadline = %v, want nil", updated.Deadline)
	}
}

func TestAssignTaskNotifiesOnlyNewAssignee(t *testing.T) {
	f := newTaskFixture(t, 3)
	task := f.createTask(t, "Walk the dog", nil)
	assignee := f.members[1]

	assigned, err := f.svc.AssignTask(context.Background(), task.ID, &assignee.ID)
	if err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	if assigned.AssignedTo == nil || *assigned.AssignedTo != assignee.ID {
		t.Fatalf("AssignedTo = %v, want %s", assigned.AssignedTo, assignee.ID)
	}
	if assigned.AssignedToName == nil || *assigned.AssignedToName != assignee.DisplayName {
		t.Errorf("AssignedToName = %v, want %q", assigned.AssignedToName, assignee.DisplayName)
	}

	notifications := f.notificationRepo.byType(entities.NotificationTaskAssigned)
	if len(notifications) != 1 {
		t.Fatalf("got %d assignment notifications, want 1", len(notifications))
	}
	if notifications[0].UserID != assignee.ID {
		t.Errorf("notification went to %s, want assignee %s", notifications[0].UserID, assignee.ID)
	}
}

func TestUnassignTaskNotifiesNobody(t *testing.T) {
	f := newTaskFixture(t, 3)
	task := f.createTask(t, "Walk the dog", nil)
	assignee := f.members[1]

	if _, err := f.svc.AssignTask(context.Background(), task.ID, &assignee.ID); err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	before := len(f.notificationRepo.notifications)

	unassigned, err := f.svc.AssignTask(context.Background(), task.ID, nil)
	if err != nil {
		t.Fatalf("AssignTask(nil): %v", err)
	}
	if unassigned.AssignedTo != nil || unassigned.AssignedToName != nil {
		t.Errorf("unassign left assignee %v / %v", unassigned.AssignedTo, unassigned.AssignedToName)
	}
	if got := len(f.notificationRepo.notifications); got != before {
		t.Errorf("unassign produced %d new notifications", got-before)
	}
}

func TestAssignTaskRejectsNonMember(t *testing.T) {
	f := newTaskFixture(t, 2)
	task := f.createTask(t, "Walk the dog", nil)
	outsider := f.userRepo.add("eve@example.com", "Eve")

	_, err := f.svc.AssignTask(context.Background(), task.ID, &outsider.ID)
	if !errors.Is(err, entities.ErrNotAMember) {
		t.Fatalf("got %v, want ErrNotAMember", err)
	}
}

func TestCompleteTaskFansOutToOtherMembers(t *testing.T) {
	f := newTaskFixture(t, 5)
	task := f.createTask(t, "Take out trash", nil)
	completer := f.members[2]

	completed, err := f.svc.CompleteTask(context.Background(), task.ID, completer.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !completed.Completed {
		t.Fatal("task not marked completed")
	}
	if completed.CompletedBy == nil || *completed.CompletedBy != completer.ID {
		t.Errorf("CompletedBy = %v, want %s", completed.CompletedBy, completer.ID)
	}
	if completed.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}

	notifications := f.notificationRepo.byType(entities.NotificationTaskCompleted)
	if len(notifications) != 4 {
		t.Fatalf("got %d completion notifications, want 4", len(notifications))
	}
	for _, n := range notifications {
		if n.UserID == completer.ID {
			t.Error("completion notified the actor")
		}
		if n.RelatedID != task.ID {
			t.Errorf("notification relates to %s, want task %s", n.RelatedID, task.ID)
		}
	}
}

func TestCompleteTaskIsIdempotent(t *testing.T) {
	f := newTaskFixture(t, 3)
	task := f.createTask(t, "Take out trash", nil)
	first := f.members[0]
	second := f.members[1]

	completed, err := f.svc.CompleteTask(context.Background(), task.ID, first.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	firstStamp := *completed.CompletedAt
	before := len(f.notificationRepo.notifications)

	again, err := f.svc.CompleteTask(context.Background(), task.ID, second.ID)
	if err != nil {
		t.Fatalf("second CompleteTask: %v", err)
	}

	if again.CompletedBy == nil || *again.CompletedBy != first.ID {
		t.Errorf("CompletedBy = %v, want first completer %s", again.CompletedBy, first.ID)
	}
	if !again.CompletedAt.Equal(firstStamp) {
		t.Errorf("CompletedAt changed on re-complete")
	}
	if got := len(f.notificationRepo.notifications); got != before {
		t.Errorf("re-complete produced %d new notifications", got-before)
	}
}

func TestCompleteTaskSurvivesNotificationFailure(t *testing.T) {
	f := newTaskFixture(t, 3)
	task := f.createTask(t, "Take out trash", nil)
	f.notificationRepo.failCreate = true

	completed, err := f.svc.CompleteTask(context.Background(), task.ID, f.members[0].ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !completed.Completed {
		t.Fatal("task not marked completed")
	}

	stored, err := f.taskRepo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Completed {
		t.Error("completion not persisted despite notification failure")
	}
}

func TestGetListTasksAppliesFilters(t *testing.T) {
	f := newTaskFixture(t, 2)
	me := f.members[0]
	other := f.members[1]

	mine := f.createTask(t, "Mine #chores", nil)
	theirs := f.createTask(t, "Theirs #chores", nil)
	open := f.createTask(t, "Unassigned #errands", nil)

	if _, err := f.svc.AssignTask(context.Background(), mine.ID, &me.ID); err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	if _, err := f.svc.AssignTask(context.Background(), theirs.ID, &other.ID); err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	if _, err := f.svc.CompleteTask(context.Background(), mine.ID, me.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	tests := []struct {
		name   string
		filter ports.TaskViewFilter
		want   []uuid.UUID
	}{
		{
			name:   "defaults return everything",
			filter: ports.TaskViewFilter{CurrentUserID: me.ID},
			want:   []uuid.UUID{mine.ID, theirs.ID, open.ID},
		},
		{
			name:   "active",
			filter: ports.TaskViewFilter{Status: entities.StatusActive, CurrentUserID: me.ID},
			want:   []uuid.UUID{theirs.ID, open.ID},
		},
		{
			name:   "completed",
			filter: ports.TaskViewFilter{Status: entities.StatusCompleted, CurrentUserID: me.ID},
			want:   []uuid.UUID{mine.ID},
		},
		{
			name:   "me",
			filter: ports.TaskViewFilter{Assignee: entities.AssigneeMe, CurrentUserID: me.ID},
			want:   []uuid.UUID{mine.ID},
		},
		{
			name:   "others excludes unassigned",
			filter: ports.TaskViewFilter{Assignee: entities.AssigneeOthers, CurrentUserID: me.ID},
			want:   []uuid.UUID{theirs.ID},
		},
		{
			name:   "unassigned",
			filter: ports.TaskViewFilter{Assignee: entities.AssigneeUnassigned, CurrentUserID: me.ID},
			want:   []uuid.UUID{open.ID},
		},
		{
			name: "tag and status combine",
			filter: ports.TaskViewFilter{
				Status:        entities.StatusActive,
				CurrentUserID: me.ID,
				Tag:           strPtr("chores"),
			},
			want: []uuid.UUID{theirs.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := f.svc.GetListTasks(context.Background(), f.list.ID, tt.filter)
			if err != nil {
				t.Fatalf("GetListTasks: %v", err)
			}
			if len(tasks) != len(tt.want) {
				t.Fatalf("got %d tasks, want %d", len(tasks), len(tt.want))
			}
			for i, id := range tt.want {
				if tasks[i].ID != id {
					t.Errorf("tasks[%d] = %s, want %s", i, tasks[i].ID, id)
				}
			}
		})
	}
}
