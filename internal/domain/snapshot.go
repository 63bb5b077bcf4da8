package domain

import "time"

// CategoryAvailability holds today's room counts for one listing category.
type CategoryAvailability struct {
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
}

// DailySnapshot is the persisted, date-scoped accumulator of revenue and
// room availability. One row, overwritten per calendar day.
//
// TotalRevenue accumulates across repeated runs within the same calendar
// day; CategoryAvailability reflects the latest run. LastUpdatedDate
// decides validity: any read on a new calendar day must reset both before
// accumulating (see RolloverIfStale).
type DailySnapshot struct {
	LastUpdatedDate      string                                   `json:"last_updated_date"` // 2006-01-02
	TotalRevenue         float64                                  `json:"total_revenue"`
	CategoryAvailability map[ListingCategory]CategoryAvailability `json:"category_availability"`
	UpdatedAt            time.Time                                `json:"updated_at"`
}

// RolloverIfStale resets the accumulated fields when the snapshot belongs
// to a previous calendar day. Returns true when a reset happened.
func (s *DailySnapshot) RolloverIfStale(today string) bool {
	if s.LastUpdatedDate == today {
		return false
	}
	s.LastUpdatedDate = today
	s.TotalRevenue = 0
	s.CategoryAvailability = map[ListingCategory]CategoryAvailability{}
	return true
}
