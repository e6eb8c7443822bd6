package model_test

import (
	"testing"

	"github.com/taskboard/taskboard-api/internal/model"
)

func TestTaskStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status model.TaskStatus
		want   bool
	}{
		{"todo", model.TaskStatusTodo, true},
		{"in_progress", model.TaskStatusInProgress, true},
		{"completed", model.TaskStatusCompleted, true},
		{"empty", model.TaskStatus(""), false},
		{"archived", model.TaskStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("TaskStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestTaskPriority_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority model.TaskPriority
		want     bool
	}{
		{"high", model.TaskPriorityHigh, true},
		{"medium", model.TaskPriorityMedium, true},
		{"low", model.TaskPriorityLow, true},
		{"empty", model.TaskPriority(""), false},
		{"urgent", model.TaskPriority("urgent"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.IsValid(); got != tt.want {
				t.Errorf("TaskPriority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestReconcileCompletion(t *testing.T) {
	completed := model.TaskStatusCompleted
	inProgress := model.TaskStatusInProgress
	boolTrue := true
	boolFalse := false

	tests := []struct {
		name          string
		status        *model.TaskStatus
		completed     *bool
		current       model.TaskStatus
		wantStatus    model.TaskStatus
		wantCompleted bool
	}{
		{
			name:          "status completed forces completed flag",
			status:        &completed,
			completed:     &boolFalse,
			current:       model.TaskStatusTodo,
			wantStatus:    model.TaskStatusCompleted,
			wantCompleted: true,
		},
		{
			name:          "non-completed status clears completed flag",
			status:        &inProgress,
			completed:     &boolTrue,
			current:       model.TaskStatusCompleted,
			wantStatus:    model.TaskStatusInProgress,
			wantCompleted: false,
		},
		{
			name:          "completed toggle true maps to completed",
			completed:     &boolTrue,
			current:       model.TaskStatusInProgress,
			wantStatus:    model.TaskStatusCompleted,
			wantCompleted: true,
		},
		{
			name:          "completed toggle false maps to todo",
			completed:     &boolFalse,
			current:       model.TaskStatusCompleted,
			wantStatus:    model.TaskStatusTodo,
			wantCompleted: false,
		},
		{
			name:          "no change keeps current status",
			current:       model.TaskStatusInProgress,
			wantStatus:    model.TaskStatusInProgress,
			wantCompleted: false,
		},
		{
			name:          "no change keeps completed consistent",
			current:       model.TaskStatusCompleted,
			wantStatus:    model.TaskStatusCompleted,
			wantCompleted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStatus, gotCompleted := model.ReconcileCompletion(tt.status, tt.completed, tt.current)
			if gotStatus != tt.wantStatus || gotCompleted != tt.wantCompleted {
				t.Errorf("ReconcileCompletion() = (%s, %v), want (%s, %v)",
					gotStatus, gotCompleted, tt.wantStatus, tt.wantCompleted)
			}

			// The invariant must hold for every outcome.
			if gotCompleted != (gotStatus == model.TaskStatusCompleted) {
				t.Errorf("invariant violated: status=%s completed=%v", gotStatus, gotCompleted)
			}
		})
	}
}
