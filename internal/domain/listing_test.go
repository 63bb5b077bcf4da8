package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForListing(t *testing.T) {
	tests := []struct {
		name         string
		id           int
		listingName  string
		wantCategory ListingCategory
		wantOK       bool
	}{
		{"id table wins", 145672, "whatever the name says 3BR", CategoryStudio, true},
		{"known 3BR id", 145700, "", CategoryThreeBed, true},
		{"name fallback 3B marker", 999001, "Skyline Suites (3B) 1204", CategoryThreeBed, true},
		{"name fallback premium", 999002, "Premium two bed corner", CategoryTwoBedPremium, true},
		{"name fallback 2BR", 999003, "Garden 2BR apartment", CategoryTwoBed, true},
		{"name fallback 1B marker", 999004, "Courtyard (1B) 302", CategoryOneBed, true},
		{"name fallback studio", 999005, "Deluxe Studio 17", CategoryStudio, true},
		{"case insensitive name", 999006, "deluxe studio 18", CategoryStudio, true},
		{"unclassifiable dropped", 999007, "Penthouse", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, ok := CategoryForListing(tt.id, tt.listingName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCategory, category)
		})
	}
}

func TestDailySnapshot_RolloverIfStale(t *testing.T) {
	snapshot := &DailySnapshot{
		LastUpdatedDate: "2024-06-09",
		TotalRevenue:    58_300,
		CategoryAvailability: map[ListingCategory]CategoryAvailability{
			CategoryStudio: {Available: 2, Reserved: 3},
		},
	}

	assert.True(t, snapshot.RolloverIfStale("2024-06-10"))
	assert.Equal(t, "2024-06-10", snapshot.LastUpdatedDate)
	assert.Zero(t, snapshot.TotalRevenue)
	assert.Empty(t, snapshot.CategoryAvailability)

	// Same day: nothing to do.
	snapshot.TotalRevenue = 1_000
	assert.False(t, snapshot.RolloverIfStale("2024-06-10"))
	assert.Equal(t, 1_000.0, snapshot.TotalRevenue)
}
