package repository

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akaryakin/propnest/internal/models"
)

var propertyTestColumns = []string{
	"id", "title", "type", "price", "state", "city", "area_sqft",
	"bedrooms", "bathrooms", "amenities", "furnished", "available_from",
	"listed_by", "tags", "color_theme", "rating", "is_verified",
	"listing_type", "created_by", "created_at", "updated_at",
}

// propertyRows builds a result set with one minimal property row per id.
func propertyRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows(propertyTestColumns)
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, "Sunny 2BHK", "Apartment", 250000.0, "Maharashtra", "Mumbai",
			900.0, 2, 1, "{gym,parking}", "Furnished", now, "Owner", "{lake-view}",
			"", 4.2, true, "Sale", "owner-1", now, now)
	}
	return rows
}

func userFixture() models.User {
	return models.User{
		ID:           "u1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: []byte("hash"),
		CreatedAt:    time.Now(),
	}
}

func propertyFixture(id, owner string) models.Property {
	now := time.Now()
	return models.Property{
		ID:            id,
		Title:         "Sunny 2BHK",
		Type:          models.Apartment,
		Price:         250000,
		State:         "Maharashtra",
		City:          "Mumbai",
		AreaSqFt:      900,
		Bedrooms:      2,
		Bathrooms:     1,
		Amenities:     []string{"gym", "parking"},
		Furnished:     models.Furnished,
		AvailableFrom: now,
		ListedBy:      models.ListedByOwner,
		Tags:          []string{"lake-view"},
		Rating:        4.2,
		IsVerified:    true,
		ListingType:   models.Sale,
		CreatedBy:     owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
