package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/apperr"
	"github.com/akaryakin/propnest/internal/cache"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/repository"
)

// fakeFavoritesRepo is an in-memory favorites store with set semantics.
type fakeFavoritesRepo struct {
	properties map[string]*models.Property
	favorites  map[string][]string
	getCalls   int
}

func newFakeFavoritesRepo(props ...*models.Property) *fakeFavoritesRepo {
	m := map[string]*models.Property{}
	for _, p := range props {
		m[p.ID] = p
	}
	return &fakeFavoritesRepo{properties: m, favorites: map[string][]string{}}
}

func (f *fakeFavoritesRepo) AddFavorite(ctx context.Context, userID, propertyID string) error {
	for _, id := range f.favorites[userID] {
		if id == propertyID {
			return nil
		}
	}
	f.favorites[userID] = append(f.favorites[userID], propertyID)
	return nil
}

func (f *fakeFavoritesRepo) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	var kept []string
	for _, id := range f.favorites[userID] {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	f.favorites[userID] = kept
	return nil
}

func (f *fakeFavoritesRepo) GetFavorites(ctx context.Context, userID string) ([]models.Property, error) {
	f.getCalls++
	var out []models.Property
	for _, id := range f.favorites[userID] {
		if p, ok := f.properties[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeFavoritesRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	if p, ok := f.properties[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func newFavoritesService(repo *fakeFavoritesRepo) *FavoritesService {
	aside := cache.NewAside(cache.NewMemory(), time.Minute, zap.NewNop())
	return NewFavoritesService(repo, repo, aside)
}

func TestFavorites_RoundTrip(t *testing.T) {
	// U1 creates P1; U2 favorites it, lists, unfavorites, lists again.
	repo := newFakeFavoritesRepo(ownedProperty("p1", "u1"))
	svc := newFavoritesService(repo)
	ctx := context.Background()

	if err := svc.Add(ctx, "u2", "p1"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	got, err := svc.List(ctx, "u2")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("List after Add = %+v; want [p1]", got)
	}

	if err := svc.Remove(ctx, "u2", "p1"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	got, err = svc.List(ctx, "u2")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List after Remove = %+v; want []", got)
	}
}

func TestFavorites_InvalidationDefeatsWarmCache(t *testing.T) {
	repo := newFakeFavoritesRepo(ownedProperty("p1", "u1"))
	svc := newFavoritesService(repo)
	ctx := context.Background()

	if err := svc.Add(ctx, "u2", "p1"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	// Warm the cache.
	if _, err := svc.List(ctx, "u2"); err != nil {
		t.Fatalf("warm-up List: %v", err)
	}
	// A cached repeat must not hit the store.
	if _, err := svc.List(ctx, "u2"); err != nil {
		t.Fatalf("cached List: %v", err)
	}
	if repo.getCalls != 1 {
		t.Errorf("loader called %d times; want 1 (second read served warm)", repo.getCalls)
	}

	// The mutation must invalidate the warm entry.
	if err := svc.Remove(ctx, "u2", "p1"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	got, err := svc.List(ctx, "u2")
	if err != nil {
		t.Fatalf("post-remove List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("stale favorites served from warm cache: %+v", got)
	}
	if repo.getCalls != 2 {
		t.Errorf("loader called %d times; want 2 after invalidation", repo.getCalls)
	}
}

func TestFavorites_AddTwiceIsNoOp(t *testing.T) {
	repo := newFakeFavoritesRepo(ownedProperty("p1", "u1"))
	svc := newFavoritesService(repo)
	ctx := context.Background()

	if err := svc.Add(ctx, "u2", "p1"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := svc.Add(ctx, "u2", "p1"); err != nil {
		t.Fatalf("second Add must succeed: %v", err)
	}
	got, _ := svc.List(ctx, "u2")
	if len(got) != 1 {
		t.Errorf("favorites = %+v; want a single entry", got)
	}
}

func TestFavorites_RemoveAbsentIsNoOp(t *testing.T) {
	repo := newFakeFavoritesRepo()
	svc := newFavoritesService(repo)

	if err := svc.Remove(context.Background(), "u2", "never-added"); err != nil {
		t.Errorf("removing an absent favorite must succeed, got %v", err)
	}
}

func TestFavorites_AddMissingPropertyNotFound(t *testing.T) {
	repo := newFakeFavoritesRepo()
	svc := newFavoritesService(repo)

	err := svc.Add(context.Background(), "u2", "ghost")
	if apperr.CodeOf(err) != apperr.NotFound {
		t.Errorf("Add error code = %q; want not_found", apperr.CodeOf(err))
	}
}

func TestFavorites_EmptyListIsNotNil(t *testing.T) {
	repo := newFakeFavoritesRepo()
	svc := newFavoritesService(repo)

	got, err := svc.List(context.Background(), "u2")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got == nil {
		t.Error("List must return [] rather than nil for serialization")
	}
}
