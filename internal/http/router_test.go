package http_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskboard/taskboard-api/internal/githuboauth"
	taskhttp "github.com/taskboard/taskboard-api/internal/http"
	"github.com/taskboard/taskboard-api/internal/http/handler"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/model"
	"github.com/taskboard/taskboard-api/internal/service"
)

// mockTaskRepo for router tests
type mockTaskRepo struct{}

func (m *mockTaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	return task, nil
}
func (m *mockTaskRepo) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	return model.Task{}, sql.ErrNoRows
}
func (m *mockTaskRepo) Update(ctx context.Context, task model.Task) (model.Task, error) {
	return task, nil
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	return nil
}
func (m *mockTaskRepo) List(ctx context.Context, params model.TaskListParams) ([]model.Task, error) {
	return []model.Task{}, nil
}

// stubProvider for router tests — not exercised beyond routing
type stubProvider struct{}

func (s *stubProvider) AuthCodeURL(state string) string {
	return "https://github.com/login/oauth/authorize?state=" + state
}
func (s *stubProvider) ExchangeCode(ctx context.Context, code string) (githuboauth.User, error) {
	return githuboauth.User{}, sql.ErrNoRows
}

func newTestTaskSvc() *service.TaskService {
	return service.NewTaskService(&mockTaskRepo{})
}

func newTestAuthHandler() *handler.AuthHandler {
	svc := service.NewAuthService(&stubProvider{}, []byte("test-secret"), time.Hour)
	return handler.NewAuthHandler(svc, false, time.Hour)
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := taskhttp.NewRouter(newTestTaskSvc(), newTestAuthHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", result["status"])
	}
}

func TestRouter_TaskEndpointRegistered(t *testing.T) {
	router := taskhttp.NewRouter(newTestTaskSvc(), newTestAuthHandler())

	// Router itself doesn't enforce auth — that's the middleware's job.
	// Resolve the owner the way the auth middleware would.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req = req.WithContext(middleware.SetUserID(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestRouter_TaskSubtreeRegistered(t *testing.T) {
	router := taskhttp.NewRouter(newTestTaskSvc(), newTestAuthHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/task-1", nil)
	req = req.WithContext(middleware.SetUserID(req.Context(), "a@x.com"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Mock repo has no rows, so 404 from the handler proves the
	// subtree route dispatched (a missing route would be a mux 404
	// with a plain-text body).
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error from handler, got content type %q", ct)
	}
}

func TestRouter_AuthEndpointRegistered(t *testing.T) {
	router := taskhttp.NewRouter(newTestTaskSvc(), newTestAuthHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("expected login redirect, got %d", w.Code)
	}
}

func TestRouter_AuthRoutesAbsentWhenUnconfigured(t *testing.T) {
	router := taskhttp.NewRouter(newTestTaskSvc(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := taskhttp.NewRouter(newTestTaskSvc(), newTestAuthHandler())

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
