package screens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bunaifromhills/admin-console/internal/session"
)

// SessionService is the slice of the session store the auth endpoints need.
type SessionService interface {
	Login(ctx context.Context, email, password string) (session.Identity, error)
	Logout()
	IsAuthenticated() bool
	Identity() (session.Identity, bool)
}

// AuthHandler exposes login/logout and the current identity.
type AuthHandler struct{ service SessionService }

func NewAuthHandler(service SessionService) *AuthHandler { return &AuthHandler{service: service} }

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	id, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			respond(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    id,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	respond(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.service.Identity()
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respond(w, http.StatusOK, id)
}

// RequireSession guards the admin screens: requests without a live session
// get a 401 before any handler runs.
func RequireSession(service SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !service.IsAuthenticated() {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
