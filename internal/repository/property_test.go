package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akaryakin/propnest/internal/filter"
)

func setupPropertyMock(t *testing.T) (*PostgresPropertyRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresPropertyRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestPropertyGetByID_Found(t *testing.T) {
	repo, mock, cleanup := setupPropertyMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM properties p\s+WHERE p\.id = \$1 AND p\.deleted = false`).
		WithArgs("p1").
		WillReturnRows(propertyRows("p1"))

	p, err := repo.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p1" || p.CreatedBy != "owner-1" {
		t.Errorf("unexpected property: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPropertyGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupPropertyMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM properties p`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(propertyTestColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPropertyCreate(t *testing.T) {
	repo, mock, cleanup := setupPropertyMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO properties`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), propertyFixture("p1", "u1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPropertySoftDelete(t *testing.T) {
	repo, mock, cleanup := setupPropertyMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE properties SET deleted = true, deleted_at = $2 WHERE id = $1`)).
		WithArgs("p1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SoftDelete(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPropertyCount(t *testing.T) {
	repo, mock, cleanup := setupPropertyMock(t)
	defer cleanup()

	min := 100000.0
	spec := filter.Spec{City: "Mumbai", Price: filter.Range{Min: &min}, Page: 1, Limit: 10}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM properties p WHERE p.deleted = false AND p.city = $1 AND p.price >= $2`)).
		WithArgs("Mumbai", min).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d; want 7", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPropertySearch_SortAndPagination(t *testing.T) {
	repo, mock, cleanup := setupPropertyMock(t)
	defer cleanup()

	bedrooms := 2
	spec := filter.Spec{
		Bedrooms: &bedrooms,
		SortBy:   filter.SortPrice,
		SortDir:  filter.Asc,
		Page:     3,
		Limit:    20,
	}

	// Sort applied before pagination, offset = (page-1)*limit.
	mock.ExpectQuery(`SELECT .+ FROM properties p WHERE p\.deleted = false AND p\.bedrooms = \$1 ORDER BY p\.price ASC LIMIT 20 OFFSET 40`).
		WithArgs(bedrooms).
		WillReturnRows(propertyRows("p1", "p2"))

	results, err := repo.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d; want 2", len(results))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestBuildWhere_AllPredicates(t *testing.T) {
	bedrooms, bathrooms := 3, 2
	min, max := 100.0, 200.0
	verified := true
	spec := filter.Spec{
		City:         "Pune",
		State:        "MH",
		Bedrooms:     &bedrooms,
		Bathrooms:    &bathrooms,
		Price:        filter.Range{Min: &min, Max: &max},
		Verified:     &verified,
		Types:        []string{"Villa"},
		ListingTypes: []string{"Rent"},
		Furnished:    []string{"Semi"},
		Tags:         []string{"garden"},
	}

	where, args := buildWhere(spec)
	if len(args) != 11 {
		t.Fatalf("len(args) = %d; want 11", len(args))
	}
	for _, frag := range []string{
		"p.deleted = false", "p.city = $1", "p.state = $2", "p.bedrooms = $3",
		"p.bathrooms = $4", "p.price >= $5", "p.price <= $6", "p.is_verified = $7",
		"p.type = ANY($8)", "p.listing_type = ANY($9)", "p.furnished = ANY($10)",
		"p.tags && $11",
	} {
		if !regexp.MustCompile(regexp.QuoteMeta(frag)).MatchString(where) {
			t.Errorf("where clause missing %q: %s", frag, where)
		}
	}
}

func TestBuildWhere_EmptySpec(t *testing.T) {
	where, args := buildWhere(filter.Spec{})
	if where != "p.deleted = false" {
		t.Errorf("where = %q; want soft-delete guard only", where)
	}
	if len(args) != 0 {
		t.Errorf("len(args) = %d; want 0", len(args))
	}
}
