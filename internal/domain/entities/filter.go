package entities

import "github.com/google/uuid"

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// AssigneeFilter selects tasks by who they are assigned to, relative to the
// viewing user.
type AssigneeFilter string

const (
	AssigneeAll        AssigneeFilter = "all"
	AssigneeMe         AssigneeFilter = "me"
	AssigneeOthers     AssigneeFilter = "others"
	AssigneeUnassigned AssigneeFilter = "unassigned"
)

func (sf StatusFilter) IsValid() bool {
	switch sf {
	case StatusAll, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

func (af AssigneeFilter) IsValid() bool {
	switch af {
	case AssigneeAll, AssigneeMe, AssigneeOthers, AssigneeUnassigned:
		return true
	default:
		return false
	}
}

// FilterTasks returns the order-preserving subsequence of tasks matching all
// three filters. It never mutates or reorders the input; an empty result is
// a valid outcome. A nil tag means no tag filtering; otherwise the task must
// carry that exact tag. "others" requires an assignee who is not the viewer,
// so unassigned tasks are excluded from it.
func FilterTasks(tasks []*Task, status StatusFilter, assignee AssigneeFilter, currentUserID uuid.UUID, tag *string) []*Task {
	filtered := make([]*Task, 0, len(tasks))

	for _, task := range tasks {
		if status == StatusActive && task.Completed {
			continue
		}
		if status == StatusCompleted && !task.Completed {
			continue
		}

		switch assignee {
		case AssigneeMe:
			if task.AssignedTo == nil || *task.AssignedTo != currentUserID {
				continue
			}
		case AssigneeOthers:
			if task.AssignedTo == nil || *task.AssignedTo == currentUserID {
				continue
			}
		case AssigneeUnassigned:
			if task.AssignedTo != nil {
				continue
			}
		}

		if tag != nil && !task.HasTag(*tag) {
			continue
		}

		filtered = append(filtered, task)
	}

	return filtered
}
