package domain

import "time"

// SkipReason says why a reservation or listing was excluded from a run.
// The first failing predicate wins; counts end up in RunDiagnostics.
type SkipReason string

const (
	SkipMissingDates        SkipReason = "missing_dates"
	SkipInactiveStatus      SkipReason = "inactive_status"
	SkipUnknownListing      SkipReason = "unknown_listing"
	SkipOutsideStayWindow   SkipReason = "outside_stay_window"
	SkipTestGuest           SkipReason = "test_guest"
	SkipFinanceUnavailable  SkipReason = "finance_unavailable"
	SkipCalendarUnavailable SkipReason = "calendar_unavailable"
	SkipBadData             SkipReason = "bad_data"
)

// SkippedItem identifies one excluded item for diagnostics.
type SkippedItem struct {
	ID     int        `json:"id"`
	Reason SkipReason `json:"reason"`
}

// RunDiagnostics makes the engine's catch-and-continue behaviour
// observable: everything skipped during a run, with per-reason counts.
type RunDiagnostics struct {
	Skipped []SkippedItem      `json:"skipped,omitempty"`
	Counts  map[SkipReason]int `json:"counts,omitempty"`
}

// Add records one skipped item.
func (d *RunDiagnostics) Add(id int, reason SkipReason) {
	d.Skipped = append(d.Skipped, SkippedItem{ID: id, Reason: reason})
	if d.Counts == nil {
		d.Counts = map[SkipReason]int{}
	}
	d.Counts[reason]++
}

// DashboardReport is the result of one aggregation run.
//
// TotalRevenue is run-scoped (actual + expected for this run only).
// DayRevenueToDate is the day-cumulative figure carried by the persisted
// snapshot across runs; the two are deliberately distinct fields.
type DashboardReport struct {
	Date             string                                   `json:"date"`
	ActualRevenue    float64                                  `json:"actualRevenue"`
	ExpectedRevenue  float64                                  `json:"expectedRevenue"`
	TotalRevenue     float64                                  `json:"totalRevenue"`
	DayRevenueToDate float64                                  `json:"dayRevenueToDate"`
	OccupancyRate    float64                                  `json:"occupancyRate"`
	TotalRooms       int                                      `json:"totalRooms"`
	ReservedRooms    int                                      `json:"reservedRooms"`
	AvailableRooms   int                                      `json:"availableRooms"`
	Categories       map[ListingCategory]CategoryAvailability `json:"categories"`
	Diagnostics      RunDiagnostics                           `json:"diagnostics,omitempty"`
	GeneratedAt      time.Time                                `json:"generatedAt"`
}

// Summary projects the report down to what the landing page shows.
func (r *DashboardReport) Summary() *DashboardSummary {
	return &DashboardSummary{
		Date:            r.Date,
		TotalRevenue:    r.TotalRevenue,
		ActualRevenue:   r.ActualRevenue,
		ExpectedRevenue: r.ExpectedRevenue,
		OccupancyRate:   r.OccupancyRate,
		GeneratedAt:     r.GeneratedAt,
	}
}

// Occupancy projects the report down to the room-status view.
func (r *DashboardReport) Occupancy() *OccupancyReport {
	return &OccupancyReport{
		Date:           r.Date,
		OccupancyRate:  r.OccupancyRate,
		TotalRooms:     r.TotalRooms,
		ReservedRooms:  r.ReservedRooms,
		AvailableRooms: r.AvailableRooms,
		Categories:     r.Categories,
		GeneratedAt:    r.GeneratedAt,
	}
}

// DashboardSummary is the lighter projection served to the frontend.
type DashboardSummary struct {
	Date            string    `json:"date"`
	TotalRevenue    float64   `json:"totalRevenue"`
	ActualRevenue   float64   `json:"actualRevenue"`
	ExpectedRevenue float64   `json:"expectedRevenue"`
	OccupancyRate   float64   `json:"occupancyRate"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// OccupancyReport is the occupancy-only projection.
type OccupancyReport struct {
	Date           string                                   `json:"date"`
	OccupancyRate  float64                                  `json:"occupancyRate"`
	TotalRooms     int                                      `json:"totalRooms"`
	ReservedRooms  int                                      `json:"reservedRooms"`
	AvailableRooms int                                      `json:"availableRooms"`
	Categories     map[ListingCategory]CategoryAvailability `json:"categories"`
	GeneratedAt    time.Time                                `json:"generatedAt"`
}

// HourlyMetrics is the payload the spreadsheet sync posts every hour.
type HourlyMetrics struct {
	Timestamp     time.Time `json:"timestamp"`
	ActualRevenue float64   `json:"actualRevenue"`
	TotalRevenue  float64   `json:"totalRevenue"`
}
