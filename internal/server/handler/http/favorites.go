package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/middleware"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/server/respond"
)

// FavoritesService defines the favorites operations required by the HTTP
// handlers.
type FavoritesService interface {
	Add(ctx context.Context, userID, propertyID string) error
	Remove(ctx context.Context, userID, propertyID string) error
	List(ctx context.Context, userID string) ([]models.Property, error)
}

// FavoritesHandler handles the authenticated user's favorite set.
type FavoritesHandler struct {
	// FavoritesService performs the underlying favorites operations.
	FavoritesService FavoritesService
	// Log records handler failures.
	Log *zap.Logger
}

// Add puts a property into the caller's favorites.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := h.FavoritesService.Add(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "property added to favourite successfully", nil)
}

// Remove takes a property out of the caller's favorites.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := h.FavoritesService.Remove(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "property removed from favourite successfully", nil)
}

// List returns the caller's favorite properties.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	favorites, err := h.FavoritesService.List(r.Context(), user.ID)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "favorite properties retrieved successfully",
		map[string]any{"favorites": favorites})
}
