// Package service provides the business logic for authentication, the
// property catalog, favorites, and recommendations, delegating persistence
// to repository interfaces and caching to the cache-aside layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akaryakin/propnest/internal/apperr"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/repository"
)

// UserRepository defines the persistence operations required by AuthService.
type UserRepository interface {
	// CreateUser inserts a new user record; repository.ErrDuplicate if the
	// email is taken.
	CreateUser(ctx context.Context, u models.User) error
	// GetByEmail fetches a user by email; repository.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID fetches a user by ID; repository.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password. The email is
// lowercased before storage. Returns Conflict if the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "user already exist")
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies the user's password and issues an access token.
// Returns NotFound for an unknown email and Unauthenticated for a password
// mismatch.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperr.New(apperr.NotFound, "user not found")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.Unauthenticated, "password does not match")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
