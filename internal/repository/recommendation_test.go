package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/akaryakin/propnest/internal/models"
)

func setupRecommendationMock(t *testing.T) (*PostgresRecommendationRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresRecommendationRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func recommendationFixture() models.Recommendation {
	return models.Recommendation{
		ID:            "r1",
		FromID:        "u1",
		ToID:          "u2",
		PropertyID:    "p1",
		Message:       "check this out",
		RecommendedAt: time.Now(),
	}
}

func TestExists_True(t *testing.T) {
	repo, mock, cleanup := setupRecommendationMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM recommendations WHERE from_id = $1 AND to_id = $2 AND property_id = $3)`)).
		WithArgs("u1", "u2", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "u1", "u2", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Errorf("expected recommendation to exist")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRecommendationCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupRecommendationMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO recommendations`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), recommendationFixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRecommendationCreate_DuplicateTriple(t *testing.T) {
	repo, mock, cleanup := setupRecommendationMock(t)
	defer cleanup()

	// The unique index on (from_id, to_id, property_id) loses the race.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO recommendations`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), recommendationFixture())
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListReceived_JoinsSenderAndProperty(t *testing.T) {
	repo, mock, cleanup := setupRecommendationMock(t)
	defer cleanup()

	now := time.Now()
	columns := append([]string{
		"r_id", "from_id", "to_id", "property_id", "message", "recommended_at",
		"u_id", "u_name", "u_email", "u_created_at",
	}, propertyTestColumns...)
	rows := sqlmock.NewRows(columns).AddRow(
		"r1", "u1", "u2", "p1", "check this out", now,
		"u1", "Alice", "alice@example.com", now,
		"p1", "Sunny 2BHK", "Apartment", 250000.0, "Maharashtra", "Mumbai",
		900.0, 2, 1, "{gym}", "Furnished", now, "Owner", "{}",
		"", 4.2, true, "Sale", "owner-1", now, now,
	)

	mock.ExpectQuery(`SELECT .+ FROM recommendations r\s+JOIN users u ON u\.id = r\.from_id\s+JOIN properties p`).
		WithArgs("u2").
		WillReturnRows(rows)

	received, err := repo.ListReceived(context.Background(), "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("len(received) = %d; want 1", len(received))
	}
	rec := received[0]
	if rec.From.Name != "Alice" || rec.Property.ID != "p1" || rec.Message != "check this out" {
		t.Errorf("unexpected joined record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
