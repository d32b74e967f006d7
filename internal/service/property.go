package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/akaryakin/propnest/internal/apperr"
	"github.com/akaryakin/propnest/internal/filter"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/repository"
)

// PropertyRepository defines the persistence operations required by
// PropertyService.
type PropertyRepository interface {
	// Create inserts a new property record.
	Create(ctx context.Context, p models.Property) error
	// GetByID fetches a property by ID; repository.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.Property, error)
	// Update persists the mutable fields of a property.
	Update(ctx context.Context, p models.Property) error
	// SoftDelete marks a property deleted.
	SoftDelete(ctx context.Context, id string) error
	// Count returns the number of properties matching the spec.
	Count(ctx context.Context, spec filter.Spec) (int64, error)
	// Search returns one page of properties matching the spec.
	Search(ctx context.Context, spec filter.Spec) ([]models.Property, error)
}

// PropertyUpdate carries the mutable fields of a partial update. Nil
// pointers leave the corresponding field unchanged; CreatedBy can never
// change.
type PropertyUpdate struct {
	Title         *string
	Price         *float64
	Amenities     *[]string
	Furnished     *models.Furnishing
	AvailableFrom *time.Time
	Tags          *[]string
	ColorTheme    *string
	Rating        *float64
	IsVerified    *bool
	ListingType   *models.ListingType
}

// SearchResult is one page of the catalog with its total count. Total and
// Results are independent reads and may reflect different instants.
type SearchResult struct {
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Results []models.Property `json:"results"`
}

// PropertyService implements catalog operations with ownership-based
// authorization on mutations.
type PropertyService struct {
	repo PropertyRepository
}

// NewPropertyService constructs a PropertyService using the provided
// repository.
func NewPropertyService(repo PropertyRepository) *PropertyService {
	return &PropertyService{repo: repo}
}

// Create inserts a new property owned by ownerID.
func (s *PropertyService) Create(ctx context.Context, ownerID string, p models.Property) (*models.Property, error) {
	now := time.Now()
	p.ID = uuid.NewString()
	p.CreatedBy = ownerID
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get fetches a single property. Returns NotFound if it does not exist.
func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "property not found")
		}
		return nil, err
	}
	return p, nil
}

// authorizeOwner re-fetches the property and confirms callerID owns it.
// The re-fetch is deliberate: no cached ownership decision is trusted.
// Policy (applied uniformly): NotFound when the property does not exist,
// Forbidden when it exists but is owned by someone else.
func (s *PropertyService) authorizeOwner(ctx context.Context, callerID, propertyID string) (*models.Property, error) {
	p, err := s.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != callerID {
		return nil, apperr.New(apperr.Forbidden, "you do not own this property")
	}
	return p, nil
}

// Update applies a partial update to a property owned by callerID.
func (s *PropertyService) Update(ctx context.Context, callerID, propertyID string, upd PropertyUpdate) (*models.Property, error) {
	p, err := s.authorizeOwner(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Amenities != nil {
		p.Amenities = *upd.Amenities
	}
	if upd.Furnished != nil {
		p.Furnished = *upd.Furnished
	}
	if upd.AvailableFrom != nil {
		p.AvailableFrom = *upd.AvailableFrom
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.ColorTheme != nil {
		p.ColorTheme = *upd.ColorTheme
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.IsVerified != nil {
		p.IsVerified = *upd.IsVerified
	}
	if upd.ListingType != nil {
		p.ListingType = *upd.ListingType
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a property owned by callerID.
func (s *PropertyService) Delete(ctx context.Context, callerID, propertyID string) error {
	if _, err := s.authorizeOwner(ctx, callerID, propertyID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, propertyID)
}

// Search executes a filter spec against the catalog: a count and a page
// fetch against the same predicate, as two independent reads.
func (s *PropertyService) Search(ctx context.Context, spec filter.Spec) (*SearchResult, error) {
	total, err := s.repo.Count(ctx, spec)
	if err != nil {
		return nil, err
	}
	results, err := s.repo.Search(ctx, spec)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.Property{}
	}
	return &SearchResult{
		Total:   total,
		Page:    spec.Page,
		Limit:   spec.Limit,
		Results: results,
	}, nil
}
