package model

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress || s == TaskStatusCompleted
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

func (p TaskPriority) IsValid() bool {
	return p == TaskPriorityHigh || p == TaskPriorityMedium || p == TaskPriorityLow
}

type Task struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Completed bool          `json:"completed"`
	Status    TaskStatus    `json:"status"`
	DueDate   *time.Time    `json:"due_date,omitempty"`
	Priority  *TaskPriority `json:"priority,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type TaskListParams struct {
	UserID string
	Status *TaskStatus
}

// ReconcileCompletion resolves a status/completed pair so that completed
// is true exactly when status is completed. A supplied status wins over a
// supplied completed flag; toggling completed alone maps true to
// completed and false back to todo.
func ReconcileCompletion(status *TaskStatus, completed *bool, current TaskStatus) (TaskStatus, bool) {
	if status != nil {
		return *status, *status == TaskStatusCompleted
	}
	if completed != nil {
		if *completed {
			return TaskStatusCompleted, true
		}
		return TaskStatusTodo, false
	}
	return current, current == TaskStatusCompleted
}
