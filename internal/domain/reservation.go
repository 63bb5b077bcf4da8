package domain

import (
	"strings"
	"time"
)

// ReservationStatus is the upstream lifecycle status of a reservation.
// Only the subset the dashboard cares about is modelled; anything else is
// carried through as an opaque string and filtered out.
type ReservationStatus string

const (
	ReservationStatusNew       ReservationStatus = "new"
	ReservationStatusModified  ReservationStatus = "modified"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusOwnerStay ReservationStatus = "ownerStay"
)

// IsActive reports whether the reservation counts towards revenue.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusNew || s == ReservationStatusModified
}

// Channel IDs as assigned by the property platform. The channel decides
// both the payout field and the currency of the finance record.
const (
	ChannelAirbnb        = 2018
	ChannelVrbo          = 2002
	ChannelBookingCom    = 2005
	ChannelDirect        = 2000
	ChannelBookingEngine = 2013
)

// usdChannels are the channels whose finance records are denominated in
// USD and need conversion to the local currency.
var usdChannels = map[int]bool{
	ChannelAirbnb: true,
	ChannelVrbo:   true,
}

// IsUSDChannel reports whether finance amounts for the channel are in USD.
func IsUSDChannel(channelID int) bool {
	return usdChannels[channelID]
}

// ActualCheckInFieldID is the custom field the operations team fills in
// when a guest physically checks in ("Actual Check-in Time").
const ActualCheckInFieldID = 60304

// CustomFieldValue is one custom field value attached to a reservation.
type CustomFieldValue struct {
	FieldID int    `json:"field_id"`
	Value   string `json:"value"`
}

// Reservation is a read-only snapshot of one upstream booking, fetched
// per aggregation run and discarded afterwards.
type Reservation struct {
	ID            int                `json:"id"`
	ListingID     int                `json:"listing_id"`
	GuestName     string             `json:"guest_name"`
	ChannelID     int                `json:"channel_id"`
	Status        ReservationStatus  `json:"status"`
	ArrivalDate   string             `json:"arrival_date"`   // calendar date, 2006-01-02
	DepartureDate string             `json:"departure_date"` // calendar date, 2006-01-02
	Nights        int                `json:"nights"`
	CustomFields  []CustomFieldValue `json:"custom_fields,omitempty"`
}

// HasCheckedIn reports whether the "Actual Check-in Time" custom field is
// present with a non-blank value.
func (r Reservation) HasCheckedIn() bool {
	for _, field := range r.CustomFields {
		if field.FieldID == ActualCheckInFieldID && strings.TrimSpace(field.Value) != "" {
			return true
		}
	}
	return false
}

// StayIncludes reports whether day falls within the half-open stay
// interval [arrival, departure). Arrival day counts, departure day does
// not. Malformed dates simply do not match.
func (r Reservation) StayIncludes(day time.Time) bool {
	arrival, err := time.Parse(time.DateOnly, r.ArrivalDate)
	if err != nil {
		return false
	}
	departure, err := time.Parse(time.DateOnly, r.DepartureDate)
	if err != nil {
		return false
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(arrival) && day.Before(departure)
}

// StayNights returns the number of nights of the stay, preferring the
// upstream-reported value and falling back to the date difference.
func (r Reservation) StayNights() int {
	if r.Nights > 0 {
		return r.Nights
	}
	arrival, err := time.Parse(time.DateOnly, r.ArrivalDate)
	if err != nil {
		return 0
	}
	departure, err := time.Parse(time.DateOnly, r.DepartureDate)
	if err != nil {
		return 0
	}
	return int(departure.Sub(arrival).Hours()/24 + 0.5)
}

// testGuestPatterns are name fragments used by the operations team for
// placeholder bookings. Reservations matching any of them are excluded.
var testGuestPatterns = []string{"test", "testing", "guests", "new guest", "new"}

// IsTestGuest reports whether the guest display name is blank or matches
// one of the placeholder patterns (case-insensitive).
func IsTestGuest(guestName string) bool {
	name := strings.ToLower(strings.TrimSpace(guestName))
	if name == "" {
		return true
	}
	for _, pattern := range testGuestPatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
