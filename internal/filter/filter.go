// Package filter translates untrusted listing query parameters into a
// validated, typed filter/sort/pagination specification. Build never fails:
// unrecognized or malformed parameters are dropped, favoring graceful
// degradation of search precision over hard failure on garbage input.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultLimit is the page size when limit is absent or malformed.
	DefaultLimit = 10
	// MaxLimit is the upper clamp for the page size.
	MaxLimit = 100
)

// SortField enumerates the columns a caller may sort by. Out-of-list
// sortBy values fall back to SortCreatedAt; the allow-list is enforced
// here so no caller-controlled field name ever reaches the store.
type SortField string

const (
	SortPrice         SortField = "price"
	SortRating        SortField = "rating"
	SortCreatedAt     SortField = "createdAt"
	SortAvailableFrom SortField = "availableFrom"
)

// Direction is the sort direction. Anything other than "asc" means
// descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Range holds optional numeric bounds. Only bounds that parsed are set.
type Range struct {
	Min *float64
	Max *float64
}

// HasBounds reports whether at least one bound is present.
func (r Range) HasBounds() bool { return r.Min != nil || r.Max != nil }

// Spec is the validated, typed search specification. Zero-value fields and
// nil pointers mean "predicate omitted".
type Spec struct {
	// City and State are exact-match predicates.
	City  string
	State string

	// Bedrooms and Bathrooms are exact-match counts.
	Bedrooms  *int
	Bathrooms *int

	// Price holds the optional min/max bounds.
	Price Range

	// Verified filters on the verification flag when set.
	Verified *bool

	// AvailableFrom matches listings available on or after the date.
	AvailableFrom *time.Time

	// Set-membership predicates. Empty slices mean omitted.
	Types        []string
	ListingTypes []string
	Furnished    []string
	Tags         []string

	// SortBy and SortDir order results before pagination.
	SortBy  SortField
	SortDir Direction

	// Page is ≥ 1; Limit is clamped to [1, MaxLimit].
	Page  int
	Limit int
}

// Build produces a best-effort Spec from a raw query map. Each rule is
// independent; a malformed value drops only its own predicate.
func Build(q url.Values) Spec {
	spec := Spec{
		SortBy:  SortCreatedAt,
		SortDir: Desc,
		Page:    1,
		Limit:   DefaultLimit,
	}

	spec.City = q.Get("city")
	spec.State = q.Get("state")

	spec.Bedrooms = parseInt(q.Get("bedrooms"))
	spec.Bathrooms = parseInt(q.Get("bathrooms"))

	spec.Price.Min = parseFloat(q.Get("minPrice"))
	spec.Price.Max = parseFloat(q.Get("maxPrice"))

	spec.Verified = parseBool(q.Get("isVerified"))
	spec.AvailableFrom = parseDate(q.Get("availableFrom"))

	spec.Types = parseSet(q["type"])
	spec.ListingTypes = parseSet(q["listingType"])
	spec.Furnished = parseSet(q["furnished"])
	spec.Tags = parseSet(q["tags"])

	if field, ok := sortFields[q.Get("sortBy")]; ok {
		spec.SortBy = field
	}
	if q.Get("sortOrder") == "asc" {
		spec.SortDir = Asc
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		spec.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		switch {
		case limit > MaxLimit:
			spec.Limit = MaxLimit
		case limit >= 1:
			spec.Limit = limit
		}
	}

	return spec
}

// sortFields is the server-side allow-list for sortBy.
var sortFields = map[string]SortField{
	"price":         SortPrice,
	"rating":        SortRating,
	"createdAt":     SortCreatedAt,
	"availableFrom": SortAvailableFrom,
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseBool accepts exactly "true" and "false"; anything else omits the
// predicate, so both verified and unverified listings can be requested.
func parseBool(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// parseSet flattens repeated parameters and comma-separated values into a
// deduplicated set, preserving first-seen order.
func parseSet(raw []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}
