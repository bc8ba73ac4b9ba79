package entities

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func workspaceWith(wt WorkspaceType, memberCount int) *Workspace {
	w := &Workspace{ID: uuid.New(), Name: "test", Type: wt}
	for i := 0; i < memberCount; i++ {
		role := MemberRoleMember
		if i == 0 {
			role = MemberRoleAdmin
		}
		w.Members = append(w.Members, Member{
			WorkspaceID: w.ID,
			UserID:      uuid.New(),
			Role:        role,
		})
	}
	return w
}

func TestMemberCap(t *testing.T) {
	tests := []struct {
		wt   WorkspaceType
		want int
	}{
		{WorkspaceTypePersonal, 1},
		{WorkspaceTypeCouple, 2},
		{WorkspaceTypeFamily, 20},
		{WorkspaceType("unknown"), 0},
	}
	for _, tt := range tests {
		if got := tt.wt.MemberCap(); got != tt.want {
			t.Errorf("MemberCap(%q) = %d, want %d", tt.wt, got, tt.want)
		}
	}
}

func TestCheckInvite(t *testing.T) {
	tests := []struct {
		name          string
		workspace     *Workspace
		emails        []string
		wantRemaining int
		wantErr       error
	}{
		{
			name:          "empty batch",
			workspace:     workspaceWith(WorkspaceTypeFamily, 1),
			emails:        nil,
			wantRemaining: 19,
			wantErr:       ErrNoEmails,
		},
		{
			name:          "invalid email",
			workspace:     workspaceWith(WorkspaceTypeFamily, 1),
			emails:        []string{"ok@example.com", "not-an-email"},
			wantRemaining: 19,
			wantErr:       ErrInvalidEmail,
		},
		{
			name:          "personal workspace is always full",
			workspace:     workspaceWith(WorkspaceTypePersonal, 1),
			emails:        []string{"ok@example.com"},
			wantRemaining: 0,
			wantErr:       ErrWorkspaceFull,
		},
		{
			name:          "full couple workspace",
			workspace:     workspaceWith(WorkspaceTypeCouple, 2),
			emails:        []string{"ok@example.com"},
			wantRemaining: 0,
			wantErr:       ErrWorkspaceFull,
		},
		{
			name:          "batch larger than remaining slots",
			workspace:     workspaceWith(WorkspaceTypeCouple, 1),
			emails:        []string{"a@example.com", "b@example.com"},
			wantRemaining: 1,
			wantErr:       ErrWorkspaceFull,
		},
		{
			name:          "batch exactly fills the workspace",
			workspace:     workspaceWith(WorkspaceTypeCouple, 1),
			emails:        []string{"a@example.com"},
			wantRemaining: 1,
			wantErr:       nil,
		},
		{
			name:          "family batch within cap",
			workspace:     workspaceWith(WorkspaceTypeFamily, 17),
			emails:        []string{"a@example.com", "b@example.com", "c@example.com"},
			wantRemaining: 3,
			wantErr:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, err := tt.workspace.CheckInvite(tt.emails)
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", remaining, tt.wantRemaining)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckInviteNamesTheInvalidEntry(t *testing.T) {
	w := workspaceWith(WorkspaceTypeFamily, 1)

	_, err := w.CheckInvite([]string{"bad entry"})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("got %v, want ErrInvalidEmail", err)
	}
	if !strings.Contains(err.Error(), `"bad entry"`) {
		t.Errorf("error %q does not name the entry", err.Error())
	}
}

func TestEmailValidation(t *testing.T) {
	w := workspaceWith(WorkspaceTypeFamily, 1)

	valid := []string{"a@b.co", "first.last@sub.example.com", "x+tag@example.org"}
	for _, email := range valid {
		if _, err := w.CheckInvite([]string{email}); err != nil {
			t.Errorf("CheckInvite(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"plain", "a b@example.com", "a@b", "@example.com", "a@"}
	for _, email := range invalid {
		if _, err := w.CheckInvite([]string{email}); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("CheckInvite(%q) = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestHasMemberAndIsAdmin(t *testing.T) {
	w := workspaceWith(WorkspaceTypeFamily, 3)
	admin := w.Members[0].UserID
	member := w.Members[1].UserID
	stranger := uuid.New()

	if !w.HasMember(admin) || !w.HasMember(member) {
		t.Error("members not recognized")
	}
	if w.HasMember(stranger) {
		t.Error("stranger recognized as member")
	}
	if !w.IsAdmin(admin) {
		t.Error("admin not recognized")
	}
	if w.IsAdmin(member) {
		t.Error("plain member treated as admin")
	}
}

func TestTaskCompleteIsOneWay(t *testing.T) {
	task := &Task{ID: uuid.New(), Title: "x"}
	first := uuid.New()
	second := uuid.New()
	t0 := time.Now()

	if !task.Complete(first, t0) {
		t.Fatal("first Complete returned false")
	}
	if !task.Completed || task.CompletedBy == nil || *task.CompletedBy != first {
		t.Fatalf("completion not recorded: %+v", task)
	}

	if task.Complete(second, t0.Add(time.Hour)) {
		t.Fatal("second Complete returned true")
	}
	if *task.CompletedBy != first {
		t.Errorf("CompletedBy overwritten to %s", *task.CompletedBy)
	}
	if !task.CompletedAt.Equal(t0) {
		t.Errorf("CompletedAt overwritten to %s", task.CompletedAt)
	}
}

func TestTaskAssignClearsNameOnUnassign(t *testing.T) {
	task := &Task{ID: uuid.New(), Title: "x"}
	userID := uuid.New()
	name := "Alice"

	task.Assign(&userID, &name)
	if task.AssignedTo == nil || task.AssignedToName == nil {
		t.Fatal("assignment not recorded")
	}

	task.Assign(nil, nil)
	if task.AssignedTo != nil || task.AssignedToName != nil {
		t.Error("unassign left residue")
	}
}

func TestTaskAssignAllowedWhenCompleted(t *testing.T) {
	task := &Task{ID: uuid.New(), Title: "x"}
	task.Complete(uuid.New(), time.Now())

	userID := uuid.New()
	name := "Bob"
	task.Assign(&userID, &name)

	if task.AssignedTo == nil || *task.AssignedTo != userID {
		t.Error("assignment on completed task rejected")
	}
	if !task.Completed {
		t.Error("assignment reopened the task")
	}
}

func TestIsOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	open := &Task{Deadline: &past}
	if !open.IsOverdue() {
		t.Error("open task past deadline not overdue")
	}

	done := &Task{Deadline: &past}
	done.Complete(uuid.New(), time.Now())
	if done.IsOverdue() {
		t.Error("completed task reported overdue")
	}

	upcoming := &Task{Deadline: &future}
	if upcoming.IsOverdue() {
		t.Error("future deadline reported overdue")
	}

	if (&Task{}).IsOverdue() {
		t.Error("task without deadline reported overdue")
	}
}
