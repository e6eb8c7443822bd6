package http

import (
	"net/http"

	"github.com/taskboard/taskboard-api/internal/http/handler"
	"github.com/taskboard/taskboard-api/internal/service"
)

func NewRouter(taskSvc *service.TaskService, authHandler *handler.AuthHandler) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for load balancer compatibility
	health := handler.NewHealthHandler()
	mux.Handle("/health", health)

	// Task CRUD + board API
	taskHandler := handler.NewTaskHandler(taskSvc)
	mux.Handle("/api/v1/tasks", taskHandler)
	mux.Handle("/api/v1/tasks/", taskHandler)

	// OAuth login flow; absent when the provider is not configured
	if authHandler != nil {
		mux.Handle("/api/v1/auth/", authHandler)
	}

	return mux
}
