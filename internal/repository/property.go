package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/akaryakin/propnest/internal/filter"
	"github.com/akaryakin/propnest/internal/models"
)

// propertyColumns is the shared column list for scanning property rows.
// Queries must alias the properties table as p.
const propertyColumns = `p.id, p.title, p.type, p.price, p.state, p.city, p.area_sqft,
		p.bedrooms, p.bathrooms, p.amenities, p.furnished, p.available_from,
		p.listed_by, p.tags, p.color_theme, p.rating, p.is_verified,
		p.listing_type, p.created_by, p.created_at, p.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Type, &p.Price, &p.State, &p.City, &p.AreaSqFt,
		&p.Bedrooms, &p.Bathrooms, pq.Array(&p.Amenities), &p.Furnished,
		&p.AvailableFrom, &p.ListedBy, pq.Array(&p.Tags), &p.ColorTheme,
		&p.Rating, &p.IsVerified, &p.ListingType, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PostgresPropertyRepository implements property persistence and catalog
// search against a PostgreSQL database.
type PostgresPropertyRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPropertyRepository creates a new PostgresPropertyRepository using
// the provided *sql.DB.
func NewPostgresPropertyRepository(db *sql.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{DB: db}
}

// Create inserts a new property record.
func (s *PostgresPropertyRepository) Create(ctx context.Context, p models.Property) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO properties (id, title, type, price, state, city, area_sqft,
			bedrooms, bathrooms, amenities, furnished, available_from, listed_by,
			tags, color_theme, rating, is_verified, listing_type, created_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)
	`, p.ID, p.Title, p.Type, p.Price, p.State, p.City, p.AreaSqFt,
		p.Bedrooms, p.Bathrooms, pq.Array(p.Amenities), p.Furnished,
		p.AvailableFrom, p.ListedBy, pq.Array(p.Tags), p.ColorTheme,
		p.Rating, p.IsVerified, p.ListingType, p.CreatedBy,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create property: %w", err)
	}
	return nil
}

// GetByID fetches a single property by ID. Soft-deleted properties are
// treated as absent. Returns ErrNotFound if no property exists.
func (s *PostgresPropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+propertyColumns+` FROM properties p
		 WHERE p.id = $1 AND p.deleted = false
	`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return p, nil
}

// Update persists the mutable fields of a property. CreatedBy is never
// written after creation.
func (s *PostgresPropertyRepository) Update(ctx context.Context, p models.Property) error {
	_, err := s.DB.ExecContext(ctx, `
		UPDATE properties
		   SET title = $2, price = $3, amenities = $4, furnished = $5,
		       available_from = $6, tags = $7, color_theme = $8, rating = $9,
		       is_verified = $10, listing_type = $11, updated_at = $12
		 WHERE id = $1 AND deleted = false
	`, p.ID, p.Title, p.Price, pq.Array(p.Amenities), p.Furnished,
		p.AvailableFrom, pq.Array(p.Tags), p.ColorTheme, p.Rating,
		p.IsVerified, p.ListingType, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Update property: %w", err)
	}
	return nil
}

// SoftDelete marks a property deleted. A background cleaner purges the row
// after the retention window.
func (s *PostgresPropertyRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `
		UPDATE properties SET deleted = true, deleted_at = $2 WHERE id = $1
	`, id, time.Now())
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	return nil
}

// Count returns the number of properties matching the spec's predicates.
// Count and Search are independent reads; the pair is not transactionally
// consistent.
func (s *PostgresPropertyRepository) Count(ctx context.Context, spec filter.Spec) (int64, error) {
	where, args := buildWhere(spec)
	var total int64
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties p WHERE `+where, args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return total, nil
}

// Search returns one page of properties matching the spec, sorted before
// pagination. Pagination is offset-based.
func (s *PostgresPropertyRepository) Search(ctx context.Context, spec filter.Spec) ([]models.Property, error) {
	where, args := buildWhere(spec)
	offset := (spec.Page - 1) * spec.Limit
	query := fmt.Sprintf(
		`SELECT %s FROM properties p WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		propertyColumns, where, sortColumn(spec.SortBy), sortDirection(spec.SortDir),
		spec.Limit, offset,
	)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("Search scan: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

// buildWhere translates a filter spec into a WHERE clause with positional
// arguments. Only the spec's typed predicates reach the query; raw caller
// input never does.
func buildWhere(spec filter.Spec) (string, []any) {
	conds := []string{"p.deleted = false"}
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if spec.City != "" {
		add("p.city = $%d", spec.City)
	}
	if spec.State != "" {
		add("p.state = $%d", spec.State)
	}
	if spec.Bedrooms != nil {
		add("p.bedrooms = $%d", *spec.Bedrooms)
	}
	if spec.Bathrooms != nil {
		add("p.bathrooms = $%d", *spec.Bathrooms)
	}
	if spec.Price.Min != nil {
		add("p.price >= $%d", *spec.Price.Min)
	}
	if spec.Price.Max != nil {
		add("p.price <= $%d", *spec.Price.Max)
	}
	if spec.Verified != nil {
		add("p.is_verified = $%d", *spec.Verified)
	}
	if spec.AvailableFrom != nil {
		add("p.available_from >= $%d", *spec.AvailableFrom)
	}
	if len(spec.Types) > 0 {
		add("p.type = ANY($%d)", pq.Array(spec.Types))
	}
	if len(spec.ListingTypes) > 0 {
		add("p.listing_type = ANY($%d)", pq.Array(spec.ListingTypes))
	}
	if len(spec.Furnished) > 0 {
		add("p.furnished = ANY($%d)", pq.Array(spec.Furnished))
	}
	if len(spec.Tags) > 0 {
		add("p.tags && $%d", pq.Array(spec.Tags))
	}

	return strings.Join(conds, " AND "), args
}

// sortColumn maps the allow-listed sort fields to their columns. Unknown
// values (unreachable through filter.Build) fall back to creation time.
func sortColumn(field filter.SortField) string {
	switch field {
	case filter.SortPrice:
		return "p.price"
	case filter.SortRating:
		return "p.rating"
	case filter.SortAvailableFrom:
		return "p.available_from"
	default:
		return "p.created_at"
	}
}

func sortDirection(dir filter.Direction) string {
	if dir == filter.Asc {
		return "ASC"
	}
	return "DESC"
}
