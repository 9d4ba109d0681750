package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/accountdemo/accountdemo/internal/domain"
	"github.com/accountdemo/accountdemo/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"username":"...","password":"...","confirmPassword":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "That username is already taken.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrThrottled):
			writeError(w, http.StatusTooManyRequests, "Please wait a moment and try again.")
		default:
			slog.Error("register user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"username":"...","password":"...","remember":true}
// Response: {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Username, req.Password, req.Remember)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			// One message for absent user and wrong password alike.
			writeError(w, http.StatusUnauthorized, "Username or password incorrect.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrThrottled):
			writeError(w, http.StatusTooManyRequests, "Please wait a moment and try again.")
		default:
			slog.Error("login user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		slog.Error("generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogout ends the session and clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		if errors.Is(err, domain.ErrThrottled) {
			writeError(w, http.StatusTooManyRequests, "Please wait a moment and try again.")
			return
		}
		slog.Error("logout", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleRecentUsers returns the login-form username suggestions.
// GET /api/auth/recent
// Response: {"usernames": ["..."]}
func (h *AuthHandler) HandleRecentUsers(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.auth.RecentUsernames(r.Context())
	if err != nil {
		slog.Error("list recent users", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if usernames == nil {
		usernames = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"usernames": usernames,
	})
}

// HandleAutofill returns the remembered password for a suggested username,
// so the login form can pre-fill it. Empty when remember-password is off or
// the cached entry has aged out.
// GET /api/auth/autofill?username=alice
// Response: {"password": "...", "expiringSoon": false}
func (h *AuthHandler) HandleAutofill(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	password, err := h.auth.AutofillFor(r.Context(), username)
	if err != nil {
		slog.Error("autofill lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	expiringSoon := false
	if password != "" {
		expiringSoon, err = h.auth.AutofillExpiringSoon(r.Context(), username)
		if err != nil {
			slog.Error("autofill expiry check", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"password":     password,
		"expiringSoon": expiringSoon,
	})
}
