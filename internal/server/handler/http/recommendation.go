package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/middleware"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/server/respond"
)

// RecommendationService defines the recommendation operations required by
// the HTTP handlers.
type RecommendationService interface {
	Send(ctx context.Context, fromID, toEmail, propertyID, message string) (*models.Recommendation, error)
	ListReceived(ctx context.Context, userID string) ([]models.ReceivedRecommendation, error)
}

// RecommendationHandler handles sending and listing recommendations.
type RecommendationHandler struct {
	// RecommendationService performs the underlying operations.
	RecommendationService RecommendationService
	// Log records handler failures.
	Log *zap.Logger
}

// SendRequest represents the JSON payload for sending a recommendation.
type SendRequest struct {
	To         string `json:"to"`
	PropertyID string `json:"propertyId"`
	Message    string `json:"message"`
}

// Send creates a recommendation from the caller to another user.
func (h *RecommendationHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var errs []string
	if req.To == "" {
		errs = append(errs, "to is required")
	}
	if req.PropertyID == "" {
		errs = append(errs, "propertyId is required")
	}
	if len(req.Message) > 500 {
		errs = append(errs, "message must be at most 500 characters")
	}
	if len(errs) > 0 {
		respond.Error(w, http.StatusUnprocessableEntity, "validation failed", errs...)
		return
	}

	rec, err := h.RecommendationService.Send(r.Context(), user.ID, req.To, req.PropertyID, req.Message)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusCreated, "property recommended successfully",
		map[string]any{"recommendation": rec})
}

// ListReceived returns all recommendations addressed to the caller.
func (h *RecommendationHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	received, err := h.RecommendationService.ListReceived(r.Context(), user.ID)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "successfully retrieved all property recommendations", received)
}
