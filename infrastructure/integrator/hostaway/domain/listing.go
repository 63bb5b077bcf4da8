package domain

// Listing is the upstream listing payload, reduced to the fields the
// dashboard reads.
type Listing struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// CalendarDay is one per-listing per-day calendar entry.
type CalendarDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}
