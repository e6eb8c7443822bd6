package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/model"
	"github.com/taskboard/taskboard-api/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ServeHTTP routes /api/v1/tasks and /api/v1/tasks/{id}
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Extract task ID from path: /api/v1/tasks/{id}/...
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	taskID := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	// /api/v1/tasks/{id}/status
	if taskID != "" && subPath == "status" {
		h.handleUpdateStatus(w, r, taskID)
		return
	}

	// /api/v1/tasks/{id}
	if taskID != "" {
		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, taskID)
		case http.MethodPut:
			h.handleUpdate(w, r, taskID)
		case http.MethodDelete:
			h.handleDelete(w, r, taskID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	// /api/v1/tasks
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

type createTaskRequest struct {
	Title    string  `json:"title"`
	DueDate  *string `json:"due_date,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

func (h *TaskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.CreateTaskInput{
		Title:    req.Title,
		DueDate:  req.DueDate,
		Priority: req.Priority,
	}

	task, err := h.svc.Create(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) handleGetByID(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	task, err := h.svc.GetByID(r.Context(), userID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Status    *string `json:"status,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	DueDate   *string `json:"due_date,omitempty"`
	Priority  *string `json:"priority,omitempty"`
}

// updateTaskResponse is the task plus the reward granted when the
// update completed it. The client drives the reward animation off
// reward_points.
type updateTaskResponse struct {
	model.Task
	RewardPoints int `json:"reward_points,omitempty"`
}

func (h *TaskHandler) handleUpdate(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		Title:     req.Title,
		Status:    req.Status,
		Completed: req.Completed,
		DueDate:   req.DueDate,
		Priority:  req.Priority,
	}

	result, err := h.svc.Update(r.Context(), userID, taskID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updateTaskResponse{Task: result.Task, RewardPoints: result.RewardPoints})
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request, taskID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, taskID string) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	userID := getUserID(r)

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	result, err := h.svc.UpdateStatus(r.Context(), userID, taskID, req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updateTaskResponse{Task: result.Task, RewardPoints: result.RewardPoints})
}

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	params := model.TaskListParams{
		UserID: userID,
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := model.TaskStatus(statusStr)
		if !status.IsValid() {
			WriteError(w, http.StatusBadRequest, "INVALID_STATUS", "status must be one of todo, in_progress, completed")
			return
		}
		params.Status = &status
	}

	tasks, err := h.svc.List(r.Context(), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidStatus):
		WriteError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
