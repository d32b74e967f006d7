// Package models defines the core data structures for users, properties,
// and recommendations.
package models

import "time"

// User represents an application user.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the unique, lowercased contact address used for login.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialized in API responses.
	PasswordHash []byte `json:"-"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// PropertyType defines the set of valid property category identifiers.
type PropertyType string

const (
	// Apartment represents a unit inside a multi-dwelling building.
	Apartment PropertyType = "Apartment"
	// Bungalow represents a single-storey detached house.
	Bungalow PropertyType = "Bungalow"
	// Villa represents a large detached residence.
	Villa PropertyType = "Villa"
)

// Furnishing defines the furnishing states a listing may declare.
type Furnishing string

const (
	// Furnished means the property comes fully furnished.
	Furnished Furnishing = "Furnished"
	// Unfurnished means the property comes without furniture.
	Unfurnished Furnishing = "Unfurnished"
	// SemiFurnished means the property is partially furnished.
	SemiFurnished Furnishing = "Semi"
)

// ListedBy identifies who placed the listing.
type ListedBy string

const (
	// ListedByBuilder marks listings placed by the builder.
	ListedByBuilder ListedBy = "Builder"
	// ListedByOwner marks listings placed by the owner.
	ListedByOwner ListedBy = "Owner"
	// ListedByAgent marks listings placed by an agent.
	ListedByAgent ListedBy = "Agent"
)

// ListingType distinguishes sale listings from rentals.
type ListingType string

const (
	// Sale marks a property offered for purchase.
	Sale ListingType = "Sale"
	// Rent marks a property offered for rent.
	Rent ListingType = "Rent"
)

// Property represents a single listing in the catalog.
// CreatedBy is immutable after creation; mutation and deletion require the
// caller's identity to equal CreatedBy.
type Property struct {
	// ID is the unique identifier for the property.
	ID string `json:"id"`
	// Title is the listing headline.
	Title string `json:"title"`
	// Type is the property category (Apartment, Bungalow, Villa).
	Type PropertyType `json:"type"`
	// Price is the asking price or rent.
	Price float64 `json:"price"`
	// State is the state or region of the property.
	State string `json:"state"`
	// City is the city of the property.
	City string `json:"city"`
	// AreaSqFt is the floor area in square feet.
	AreaSqFt float64 `json:"areaSqFt"`
	// Bedrooms is the bedroom count.
	Bedrooms int `json:"bedrooms"`
	// Bathrooms is the bathroom count.
	Bathrooms int `json:"bathrooms"`
	// Amenities lists what the property offers (gym, parking, ...).
	Amenities []string `json:"amenities"`
	// Furnished is the furnishing state.
	Furnished Furnishing `json:"furnished"`
	// AvailableFrom is the earliest move-in date.
	AvailableFrom time.Time `json:"availableFrom"`
	// ListedBy identifies who placed the listing.
	ListedBy ListedBy `json:"listedBy"`
	// Tags holds free-text labels for search.
	Tags []string `json:"tags"`
	// ColorTheme is a display hint for clients.
	ColorTheme string `json:"colorTheme,omitempty"`
	// Rating is the aggregate rating in [0, 5].
	Rating float64 `json:"rating"`
	// IsVerified reports whether the listing passed verification.
	IsVerified bool `json:"isVerified"`
	// ListingType distinguishes Sale from Rent.
	ListingType ListingType `json:"listingType"`
	// CreatedBy is the ID of the owning user.
	CreatedBy string `json:"createdBy"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last-modification timestamp.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recommendation is an edge from one user to another about a property.
// At most one recommendation may exist per (from, to, property) triple.
type Recommendation struct {
	// ID is the unique identifier for the recommendation.
	ID string `json:"id"`
	// FromID is the sending user's ID.
	FromID string `json:"from"`
	// ToID is the receiving user's ID.
	ToID string `json:"to"`
	// PropertyID is the recommended property's ID.
	PropertyID string `json:"propertyId"`
	// Message is an optional note from the sender.
	Message string `json:"message,omitempty"`
	// RecommendedAt is when the recommendation was sent.
	RecommendedAt time.Time `json:"recommendedAt"`
}

// ReceivedRecommendation is a recommendation joined against its sender and
// property records, as served to the recipient.
type ReceivedRecommendation struct {
	Recommendation
	// From is the sending user.
	From User `json:"fromUser"`
	// Property is the recommended listing.
	Property Property `json:"property"`
}
