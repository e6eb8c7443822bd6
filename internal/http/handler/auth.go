package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/service"
)

const stateCookieName = "taskboard_oauth_state"

// AuthHandler drives the GitHub OAuth login flow and the session
// cookie lifecycle.
type AuthHandler struct {
	svc           *service.AuthService
	secureCookies bool
	sessionTTL    time.Duration
}

func NewAuthHandler(svc *service.AuthService, secureCookies bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		secureCookies: secureCookies,
		sessionTTL:    sessionTTL,
	}
}

// ServeHTTP routes /api/v1/auth/* requests.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/auth/")
	path = strings.TrimRight(path, "/")

	switch path {
	case "login":
		h.requireMethod(w, r, http.MethodGet, h.handleLogin)
	case "callback":
		h.requireMethod(w, r, http.MethodGet, h.handleCallback)
	case "logout":
		h.requireMethod(w, r, http.MethodPost, h.handleLogout)
	default:
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	}
}

func (h *AuthHandler) requireMethod(w http.ResponseWriter, r *http.Request, method string, fn func(http.ResponseWriter, *http.Request)) {
	if r.Method != method {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	fn(w, r)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/v1/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.svc.LoginURL(state), http.StatusFound)
}

func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		WriteError(w, http.StatusBadRequest, "INVALID_STATE", "oauth state mismatch")
		return
	}

	out, err := h.svc.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// State is single-use; replace it with the session cookie.
	http.SetCookie(w, &http.Cookie{
		Name:   stateCookieName,
		Value:  "",
		Path:   "/api/v1/auth",
		MaxAge: -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    out.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	WriteJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
