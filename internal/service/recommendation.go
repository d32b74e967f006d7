package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akaryakin/propnest/internal/apperr"
	"github.com/akaryakin/propnest/internal/cache"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/repository"
)

// RecommendationRepository defines the persistence operations required by
// RecommendationService.
type RecommendationRepository interface {
	// Exists reports whether a (from, to, property) edge already exists.
	Exists(ctx context.Context, fromID, toID, propertyID string) (bool, error)
	// Create inserts a recommendation edge; repository.ErrDuplicate when
	// the unique triple constraint is violated.
	Create(ctx context.Context, r models.Recommendation) error
	// ListReceived returns recommendations addressed to a user, joined
	// against sender and property records.
	ListReceived(ctx context.Context, toID string) ([]models.ReceivedRecommendation, error)
}

// RecipientLookup resolves a recipient user by email.
type RecipientLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// receivedKey derives the cache key for a user's received recommendations.
func receivedKey(userID string) string {
	return "receivedRecommendations:" + userID
}

// RecommendationService sends recommendations and serves each user's
// received set through the cache-aside layer.
type RecommendationService struct {
	repo       RecommendationRepository
	users      RecipientLookup
	properties PropertyGetter
	aside      *cache.Aside
}

// NewRecommendationService constructs a RecommendationService.
func NewRecommendationService(
	repo RecommendationRepository,
	users RecipientLookup,
	properties PropertyGetter,
	aside *cache.Aside,
) *RecommendationService {
	return &RecommendationService{repo: repo, users: users, properties: properties, aside: aside}
}

// Send creates a recommendation edge from fromID to the user registered
// under toEmail. At most one edge may exist per (from, to, property)
// triple, and a property may not be recommended to its own owner or back
// to the sender. The store write commits before the recipient's cache key
// is invalidated.
func (s *RecommendationService) Send(ctx context.Context, fromID, toEmail, propertyID, message string) (*models.Recommendation, error) {
	recipient, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(toEmail)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "user does not exist")
		}
		return nil, err
	}
	if recipient.ID == fromID {
		return nil, apperr.New(apperr.Conflict, "cannot recommend a property to yourself")
	}

	exists, err := s.repo.Exists(ctx, fromID, recipient.ID, propertyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "you have already recommended the property")
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "property does not exist")
		}
		return nil, err
	}
	if property.CreatedBy == recipient.ID {
		return nil, apperr.New(apperr.Conflict, "cannot send recommendation: the property is owned by the recommended user")
	}

	rec := models.Recommendation{
		ID:            uuid.NewString(),
		FromID:        fromID,
		ToID:          recipient.ID,
		PropertyID:    propertyID,
		Message:       message,
		RecommendedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "you have already recommended the property")
		}
		return nil, err
	}

	s.aside.Invalidate(ctx, receivedKey(recipient.ID))
	return &rec, nil
}

// ListReceived returns all recommendations addressed to userID, served
// read-through from the side cache.
func (s *RecommendationService) ListReceived(ctx context.Context, userID string) ([]models.ReceivedRecommendation, error) {
	return cache.ReadThrough(ctx, s.aside, receivedKey(userID), func(ctx context.Context) ([]models.ReceivedRecommendation, error) {
		received, err := s.repo.ListReceived(ctx, userID)
		if err != nil {
			return nil, err
		}
		if received == nil {
			received = []models.ReceivedRecommendation{}
		}
		return received, nil
	})
}
