package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/akaryakin/propnest/internal/models"
)

// PostgresUserRepository implements user persistence and the per-user
// favorites set against a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new user record. Returns ErrDuplicate if the email
// is already registered.
func (s *PostgresUserRepository) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID. Returns ErrNotFound if no user exists.
func (s *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getOne(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1
	`, id)
}

// GetByEmail fetches a user by email. Returns ErrNotFound if no user exists.
func (s *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getOne(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1
	`, email)
}

func (s *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// AddFavorite adds a property to the user's favorite set. The insert is
// atomic and set-semantic: adding an already-favorited property is a no-op.
func (s *PostgresUserRepository) AddFavorite(ctx context.Context, userID, propertyID string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO favorites (user_id, property_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, propertyID)
	if err != nil {
		return fmt.Errorf("AddFavorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes a property from the user's favorite set. Removing
// an absent member is a no-op, not an error.
func (s *PostgresUserRepository) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	_, err := s.DB.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND property_id = $2
	`, userID, propertyID)
	if err != nil {
		return fmt.Errorf("RemoveFavorite: %w", err)
	}
	return nil
}

// GetFavorites resolves the user's favorite set to full property records,
// oldest favorite first. Soft-deleted properties are excluded.
func (s *PostgresUserRepository) GetFavorites(ctx context.Context, userID string) ([]models.Property, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+propertyColumns+`
		  FROM favorites f
		  JOIN properties p ON p.id = f.property_id
		 WHERE f.user_id = $1 AND p.deleted = false
		 ORDER BY f.added_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("GetFavorites: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("GetFavorites scan: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}
