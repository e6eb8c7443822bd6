package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskboard/taskboard-api/internal/model"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/reward"
)

// parseDueDate parses an RFC3339 string into *time.Time.
// Returns nil if input is nil.
func parseDueDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due_date format, expected RFC3339", ErrInvalidInput)
	}
	return &t, nil
}

func parsePriority(s *string) (*model.TaskPriority, error) {
	if s == nil {
		return nil, nil
	}
	p := model.TaskPriority(*s)
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: priority must be one of high, medium, low", ErrInvalidInput)
	}
	return &p, nil
}

type CreateTaskInput struct {
	Title    string
	DueDate  *string // RFC3339 string, parsed in service
	Priority *string
}

type UpdateTaskInput struct {
	Title     *string
	Status    *string
	Completed *bool
	DueDate   *string
	Priority  *string
}

// UpdateTaskResult carries the updated task plus the reward granted when
// the update completed the task. RewardPoints is zero otherwise.
type UpdateTaskResult struct {
	Task         model.Task
	RewardPoints int
}

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	if userID == "" {
		return model.Task{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return model.Task{}, err
	}
	priority, err := parsePriority(input.Priority)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		UserID:    userID,
		Title:     input.Title,
		Completed: false,
		Status:    model.TaskStatusTodo,
		DueDate:   dueDate,
		Priority:  priority,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update applies any subset of field changes, keeps the completed flag
// consistent with the status, and grants reward points when the update
// moves the task into the completed status for the first time. Points
// are scored from the stored pre-completion state.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (UpdateTaskResult, error) {
	if taskID == "" {
		return UpdateTaskResult{}, fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}

	var status *model.TaskStatus
	if input.Status != nil {
		st := model.TaskStatus(*input.Status)
		if !st.IsValid() {
			return UpdateTaskResult{}, fmt.Errorf("%w: %q is not one of todo, in_progress, completed", ErrInvalidStatus, *input.Status)
		}
		status = &st
	}

	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UpdateTaskResult{}, ErrNotFound
		}
		return UpdateTaskResult{}, fmt.Errorf("failed to get task for update: %w", err)
	}

	updated := existing
	if input.Title != nil {
		if *input.Title == "" {
			return UpdateTaskResult{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		updated.Title = *input.Title
	}
	if input.DueDate != nil {
		dueDate, err := parseDueDate(input.DueDate)
		if err != nil {
			return UpdateTaskResult{}, err
		}
		updated.DueDate = dueDate
	}
	if input.Priority != nil {
		priority, err := parsePriority(input.Priority)
		if err != nil {
			return UpdateTaskResult{}, err
		}
		updated.Priority = priority
	}

	updated.Status, updated.Completed = model.ReconcileCompletion(status, input.Completed, existing.Status)

	points := 0
	if reward.IsCompletionTransition(existing.Status, updated.Status) {
		points = reward.ComputePoints(existing, time.Now())
	}

	persisted, err := s.repo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UpdateTaskResult{}, ErrNotFound
		}
		return UpdateTaskResult{}, fmt.Errorf("failed to update task: %w", err)
	}

	return UpdateTaskResult{Task: persisted, RewardPoints: points}, nil
}

// UpdateStatus moves a task to another board column. Drag-and-drop in
// the client maps directly onto this call.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID, status string) (UpdateTaskResult, error) {
	return s.Update(ctx, userID, taskID, UpdateTaskInput{Status: &status})
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}

	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, params model.TaskListParams) ([]model.Task, error) {
	if params.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	tasks, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
