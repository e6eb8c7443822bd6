// Package reward computes the transient point score granted when a task
// is completed. Scores are returned to the client for display and never
// persisted as a running balance.
package reward

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/model"
)

const (
	basePoints        = 100
	dueDateBonus      = 50
	highPriorityBonus = 30
)

// ComputePoints scores a completion of the given task at the given
// moment. The task must be in its pre-completion state: the due-date
// bonus applies when the completion moment is on or before the deadline.
// Bonuses are independent and additive; lateness forfeits the due-date
// bonus but carries no penalty.
func ComputePoints(task model.Task, now time.Time) int {
	points := basePoints
	if task.DueDate != nil && !now.After(*task.DueDate) {
		points += dueDateBonus
	}
	if task.Priority != nil && *task.Priority == model.TaskPriorityHigh {
		points += highPriorityBonus
	}
	return points
}

// IsCompletionTransition reports whether moving from oldStatus to
// newStatus completes the task. Re-completing an already completed task
// is not a transition, so points are never granted twice.
func IsCompletionTransition(oldStatus, newStatus model.TaskStatus) bool {
	return newStatus == model.TaskStatusCompleted && oldStatus != model.TaskStatusCompleted
}
