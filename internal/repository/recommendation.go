package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/akaryakin/propnest/internal/models"
)

// PostgresRecommendationRepository implements recommendation persistence
// against a PostgreSQL database.
type PostgresRecommendationRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRecommendationRepository creates a new
// PostgresRecommendationRepository using the provided *sql.DB.
func NewPostgresRecommendationRepository(db *sql.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{DB: db}
}

// Exists reports whether a recommendation already exists for the
// (from, to, property) triple.
func (s *PostgresRecommendationRepository) Exists(ctx context.Context, fromID, toID, propertyID string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM recommendations WHERE from_id = $1 AND to_id = $2 AND property_id = $3)
	`, fromID, toID, propertyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

// Create inserts a recommendation edge. The unique index on the triple
// makes concurrent duplicate sends lose the race; those return ErrDuplicate.
func (s *PostgresRecommendationRepository) Create(ctx context.Context, r models.Recommendation) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO recommendations (id, from_id, to_id, property_id, message, recommended_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.ID, r.FromID, r.ToID, r.PropertyID, r.Message, r.RecommendedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("Create recommendation: %w", err)
	}
	return nil
}

// ListReceived returns all recommendations addressed to the given user,
// newest first, joined against sender and property records.
func (s *PostgresRecommendationRepository) ListReceived(ctx context.Context, toID string) ([]models.ReceivedRecommendation, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.id, r.from_id, r.to_id, r.property_id, r.message, r.recommended_at,
		       u.id, u.name, u.email, u.created_at,
		       `+propertyColumns+`
		  FROM recommendations r
		  JOIN users u ON u.id = r.from_id
		  JOIN properties p ON p.id = r.property_id
		 WHERE r.to_id = $1 AND p.deleted = false
		 ORDER BY r.recommended_at DESC
	`, toID)
	if err != nil {
		return nil, fmt.Errorf("ListReceived: %w", err)
	}
	defer rows.Close()

	var received []models.ReceivedRecommendation
	for rows.Next() {
		var rec models.ReceivedRecommendation
		p := &rec.Property
		err := rows.Scan(
			&rec.ID, &rec.FromID, &rec.ToID, &rec.PropertyID, &rec.Message, &rec.RecommendedAt,
			&rec.From.ID, &rec.From.Name, &rec.From.Email, &rec.From.CreatedAt,
			&p.ID, &p.Title, &p.Type, &p.Price, &p.State, &p.City, &p.AreaSqFt,
			&p.Bedrooms, &p.Bathrooms, pq.Array(&p.Amenities), &p.Furnished,
			&p.AvailableFrom, &p.ListedBy, pq.Array(&p.Tags), &p.ColorTheme,
			&p.Rating, &p.IsVerified, &p.ListingType, &p.CreatedBy,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ListReceived scan: %w", err)
		}
		received = append(received, rec)
	}
	return received, rows.Err()
}
