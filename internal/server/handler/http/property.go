package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/filter"
	"github.com/akaryakin/propnest/internal/middleware"
	"github.com/akaryakin/propnest/internal/models"
	"github.com/akaryakin/propnest/internal/server/respond"
	"github.com/akaryakin/propnest/internal/service"
)

// PropertyService defines the catalog operations required by the HTTP
// handlers.
type PropertyService interface {
	Create(ctx context.Context, ownerID string, p models.Property) (*models.Property, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Update(ctx context.Context, callerID, propertyID string, upd service.PropertyUpdate) (*models.Property, error)
	Delete(ctx context.Context, callerID, propertyID string) error
	Search(ctx context.Context, spec filter.Spec) (*service.SearchResult, error)
}

// PropertyHandler handles property CRUD and catalog search.
type PropertyHandler struct {
	// PropertyService performs the underlying catalog operations.
	PropertyService PropertyService
	// Log records handler failures.
	Log *zap.Logger
}

// propertyPayload is the JSON body for property creation.
type propertyPayload struct {
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Price         *float64 `json:"price"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	AreaSqFt      *float64 `json:"areaSqFt"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Furnished     string   `json:"furnished"`
	AvailableFrom string   `json:"availableFrom"`
	ListedBy      string   `json:"listedBy"`
	Tags          []string `json:"tags"`
	ColorTheme    string   `json:"colorTheme"`
	Rating        *float64 `json:"rating"`
	IsVerified    *bool    `json:"isVerified"`
	ListingType   string   `json:"listingType"`
}

var (
	propertyTypes = map[string]bool{"Apartment": true, "Bungalow": true, "Villa": true}
	furnishings   = map[string]bool{"Furnished": true, "Unfurnished": true, "Semi": true}
	listedByVals  = map[string]bool{"Builder": true, "Owner": true, "Agent": true}
	listingTypes  = map[string]bool{"Sale": true, "Rent": true}
)

// validate checks the creation payload and converts it into a domain
// property, accumulating field-level errors.
func (p propertyPayload) validate() (models.Property, []string) {
	var errs []string
	var prop models.Property

	if p.Title == "" {
		errs = append(errs, "title is required")
	}
	if !propertyTypes[p.Type] {
		errs = append(errs, "type must be one of Apartment, Bungalow, Villa")
	}
	if p.Price == nil || *p.Price < 0 {
		errs = append(errs, "price is required and must be >= 0")
	}
	if p.State == "" {
		errs = append(errs, "state is required")
	}
	if p.City == "" {
		errs = append(errs, "city is required")
	}
	if p.AreaSqFt == nil || *p.AreaSqFt < 0 {
		errs = append(errs, "areaSqFt is required and must be >= 0")
	}
	if p.Bedrooms == nil || *p.Bedrooms < 0 {
		errs = append(errs, "bedrooms is required and must be >= 0")
	}
	if p.Bathrooms == nil || *p.Bathrooms < 0 {
		errs = append(errs, "bathrooms is required and must be >= 0")
	}
	if !furnishings[p.Furnished] {
		errs = append(errs, "furnished must be one of Furnished, Unfurnished, Semi")
	}
	availableFrom, dateErr := time.Parse("2006-01-02", p.AvailableFrom)
	if dateErr != nil {
		errs = append(errs, "availableFrom is required and must be a date (YYYY-MM-DD)")
	}
	if !listedByVals[p.ListedBy] {
		errs = append(errs, "listedBy must be one of Builder, Owner, Agent")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		errs = append(errs, "rating must be between 0 and 5")
	}
	if !listingTypes[p.ListingType] {
		errs = append(errs, "listingType must be one of Sale, Rent")
	}
	if len(errs) > 0 {
		return prop, errs
	}

	prop = models.Property{
		Title:         p.Title,
		Type:          models.PropertyType(p.Type),
		Price:         *p.Price,
		State:         p.State,
		City:          p.City,
		AreaSqFt:      *p.AreaSqFt,
		Bedrooms:      *p.Bedrooms,
		Bathrooms:     *p.Bathrooms,
		Amenities:     p.Amenities,
		Furnished:     models.Furnishing(p.Furnished),
		AvailableFrom: availableFrom,
		ListedBy:      models.ListedBy(p.ListedBy),
		Tags:          p.Tags,
		ColorTheme:    p.ColorTheme,
		ListingType:   models.ListingType(p.ListingType),
	}
	if p.Rating != nil {
		prop.Rating = *p.Rating
	}
	if p.IsVerified != nil {
		prop.IsVerified = *p.IsVerified
	}
	return prop, nil
}

// Create handles property creation for the authenticated user.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var payload propertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prop, errs := payload.validate()
	if len(errs) > 0 {
		respond.Error(w, http.StatusUnprocessableEntity, "validation failed", errs...)
		return
	}

	created, err := h.PropertyService.Create(r.Context(), user.ID, prop)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusCreated, "property created successfully", created)
}

// Get handles a single-property fetch.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.PropertyService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "property retrieved successfully", p)
}

// updatePayload is the JSON body for a partial property update. Absent
// fields stay unchanged.
type updatePayload struct {
	Title         *string   `json:"title"`
	Price         *float64  `json:"price"`
	Amenities     *[]string `json:"amenities"`
	Furnished     *string   `json:"furnished"`
	AvailableFrom *string   `json:"availableFrom"`
	Tags          *[]string `json:"tags"`
	ColorTheme    *string   `json:"colorTheme"`
	Rating        *float64  `json:"rating"`
	IsVerified    *bool     `json:"isVerified"`
	ListingType   *string   `json:"listingType"`
}

func (p updatePayload) validate() (service.PropertyUpdate, []string) {
	var errs []string
	upd := service.PropertyUpdate{
		Title:      p.Title,
		Price:      p.Price,
		Amenities:  p.Amenities,
		Tags:       p.Tags,
		ColorTheme: p.ColorTheme,
		Rating:     p.Rating,
		IsVerified: p.IsVerified,
	}

	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, "price must be >= 0")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		errs = append(errs, "rating must be between 0 and 5")
	}
	if p.Furnished != nil {
		if !furnishings[*p.Furnished] {
			errs = append(errs, "furnished must be one of Furnished, Unfurnished, Semi")
		} else {
			f := models.Furnishing(*p.Furnished)
			upd.Furnished = &f
		}
	}
	if p.ListingType != nil {
		if !listingTypes[*p.ListingType] {
			errs = append(errs, "listingType must be one of Sale, Rent")
		} else {
			lt := models.ListingType(*p.ListingType)
			upd.ListingType = &lt
		}
	}
	if p.AvailableFrom != nil {
		parsed, err := time.Parse("2006-01-02", *p.AvailableFrom)
		if err != nil {
			errs = append(errs, "availableFrom must be a date (YYYY-MM-DD)")
		} else {
			upd.AvailableFrom = &parsed
		}
	}
	return upd, errs
}

// isEmpty reports whether the update carries no fields at all.
func (p updatePayload) isEmpty() bool {
	return p.Title == nil && p.Price == nil && p.Amenities == nil &&
		p.Furnished == nil && p.AvailableFrom == nil && p.Tags == nil &&
		p.ColorTheme == nil && p.Rating == nil && p.IsVerified == nil &&
		p.ListingType == nil
}

// Update handles a partial update of a property owned by the caller.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.isEmpty() {
		respond.Error(w, http.StatusUnprocessableEntity, "validation failed",
			"at least one field must be provided")
		return
	}
	upd, errs := payload.validate()
	if len(errs) > 0 {
		respond.Error(w, http.StatusUnprocessableEntity, "validation failed", errs...)
		return
	}

	p, err := h.PropertyService.Update(r.Context(), user.ID, chi.URLParam(r, "id"), upd)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "property updated successfully", p)
}

// Delete handles deletion of a property owned by the caller.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := h.PropertyService.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK, "property deleted successfully", nil)
}

// Search handles catalog search. The raw query is translated into a typed
// filter spec; malformed parameters degrade gracefully rather than fail.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	spec := filter.Build(r.URL.Query())

	result, err := h.PropertyService.Search(r.Context(), spec)
	if err != nil {
		respond.FromError(w, h.Log, err)
		return
	}
	respond.Success(w, http.StatusOK,
		fmt.Sprintf("retrieved %d of %d properties", len(result.Results), result.Total), result)
}
