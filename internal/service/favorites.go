package service

import (
	"context"
	"errors"

	"github.com/akaryakin/propnest/internal/apperr"
	"github.com/akaryakin/propnest/internal/cache"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/repository"
)

// FavoritesRepository defines the persistence operations required by
// FavoritesService.
type FavoritesRepository interface {
	// AddFavorite adds a property to the user's favorite set (set
	// semantics, atomic).
	AddFavorite(ctx context.Context, userID, propertyID string) error
	// RemoveFavorite removes a property from the user's favorite set.
	RemoveFavorite(ctx context.Context, userID, propertyID string) error
	// GetFavorites resolves the favorite set to full property records.
	GetFavorites(ctx context.Context, userID string) ([]models.Property, error)
}

// PropertyGetter looks up a single property.
type PropertyGetter interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
}

// favoritesKey derives the cache key for a user's favorite set.
func favoritesKey(userID string) string {
	return "favorites:user:" + userID
}

// FavoritesService serves each user's favorite set through the cache-aside
// layer and invalidates it on every mutation.
type FavoritesService struct {
	repo       FavoritesRepository
	properties PropertyGetter
	aside      *cache.Aside
}

// NewFavoritesService constructs a FavoritesService.
func NewFavoritesService(repo FavoritesRepository, properties PropertyGetter, aside *cache.Aside) *FavoritesService {
	return &FavoritesService{repo: repo, properties: properties, aside: aside}
}

// Add puts a property into the user's favorite set. Adding twice is a
// no-op. Returns NotFound if the property does not exist.
// The store write commits before the cache key is invalidated.
func (s *FavoritesService) Add(ctx context.Context, userID, propertyID string) error {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.NotFound, "property not found")
		}
		return err
	}
	if err := s.repo.AddFavorite(ctx, userID, propertyID); err != nil {
		return err
	}
	s.aside.Invalidate(ctx, favoritesKey(userID))
	return nil
}

// Remove takes a property out of the user's favorite set. Removing an
// absent member is a no-op with a success outcome.
func (s *FavoritesService) Remove(ctx context.Context, userID, propertyID string) error {
	if err := s.repo.RemoveFavorite(ctx, userID, propertyID); err != nil {
		return err
	}
	s.aside.Invalidate(ctx, favoritesKey(userID))
	return nil
}

// List returns the user's favorite properties, served read-through from
// the side cache.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]models.Property, error) {
	return cache.ReadThrough(ctx, s.aside, favoritesKey(userID), func(ctx context.Context) ([]models.Property, error) {
		favorites, err := s.repo.GetFavorites(ctx, userID)
		if err != nil {
			return nil, err
		}
		if favorites == nil {
			favorites = []models.Property{}
		}
		return favorites, nil
	})
}
