package domain

import "strings"

// ListingCategory is the room category used by the dashboard to group
// availability and occupancy figures.
type ListingCategory string

const (
	CategoryStudio        ListingCategory = "studio"
	CategoryOneBed        ListingCategory = "1BR"
	CategoryTwoBed        ListingCategory = "2BR"
	CategoryTwoBedPremium ListingCategory = "2BR-premium"
	CategoryThreeBed      ListingCategory = "3BR"
)

// listingCategoryByID maps the upstream listing IDs to their category.
// This is reference data maintained by hand: new listings must be added
// here, otherwise classification falls back to name matching.
var listingCategoryByID = map[int]ListingCategory{
	145672: CategoryStudio,
	145673: CategoryStudio,
	145680: CategoryOneBed,
	145681: CategoryOneBed,
	145682: CategoryOneBed,
	145690: CategoryTwoBed,
	145691: CategoryTwoBed,
	145692: CategoryTwoBedPremium,
	145693: CategoryTwoBedPremium,
	145700: CategoryThreeBed,
	145701: CategoryThreeBed,
}

// Listing is a rentable unit tracked by the property platform.
// Immutable reference data, refreshed from upstream on demand.
type Listing struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Country  string          `json:"country"`
	Category ListingCategory `json:"category"`
}

// CategoryForListing resolves the category for a listing, first by the
// fixed id table, then by name-pattern fallback. The second return value
// is false when the listing matches neither and should be dropped.
func CategoryForListing(id int, name string) (ListingCategory, bool) {
	if category, ok := listingCategoryByID[id]; ok {
		return category, true
	}
	return categoryFromName(name)
}

func categoryFromName(name string) (ListingCategory, bool) {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "(3B)") || strings.Contains(upper, "3BR"):
		return CategoryThreeBed, true
	case strings.Contains(upper, "PREMIUM"):
		return CategoryTwoBedPremium, true
	case strings.Contains(upper, "(2B)") || strings.Contains(upper, "2BR"):
		return CategoryTwoBed, true
	case strings.Contains(upper, "(1B)") || strings.Contains(upper, "1BR"):
		return CategoryOneBed, true
	case strings.Contains(upper, "STUDIO"):
		return CategoryStudio, true
	}
	return "", false
}

// CalendarDayStatus is the upstream per-day calendar status for a listing.
type CalendarDayStatus string

const (
	CalendarDayReserved  CalendarDayStatus = "reserved"
	CalendarDayAvailable CalendarDayStatus = "available"
)

// CalendarDay is the single-day calendar entry of one listing.
type CalendarDay struct {
	ListingID int               `json:"listing_id"`
	Date      string            `json:"date"`
	Status    CalendarDayStatus `json:"status"`
}
