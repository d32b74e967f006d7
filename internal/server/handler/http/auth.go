// Package http provides the HTTP handlers for authentication, the property
// catalog, favorites, and recommendations.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/server/respond"
)

// AuthService defines the authentication operations required by the HTTP
// handlers.
type AuthService interface {
	// Register creates a new user.
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records handler failures.
	Log *zap.Logger
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func (r RegisterRequest) validate() []string {
	var errs []string
	if len(r.Name) < 2 || len(r.Name) > 50 {
		errs = append(errs, "name must be between 2 and 50 characters")
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "email must be a valid address")
	}
	if len(r.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	return errs
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respond.Error(w, http.StatusUnprocessableEntity, "validation failed", errs...)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "user created successfully", map[string]any{"user": user})
}

// Login handles user login requests. On success it returns the signed
// access token alongside the user record.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusUnprocessableEntity, "validation failed",
			"email and password are required")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "user logged in successfully", map[string]any{
		"token": token,
		"user":  user,
	})
}
