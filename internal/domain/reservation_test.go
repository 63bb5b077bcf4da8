package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_StayIncludes(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name        string
		reservation Reservation
		day         time.Time
		want        bool
	}{
		{
			name:        "arrival day counts",
			reservation: Reservation{ArrivalDate: "2024-06-10", DepartureDate: "2024-06-15"},
			day:         day("2024-06-10"),
			want:        true,
		},
		{
			name:        "mid-stay day counts",
			reservation: Reservation{ArrivalDate: "2024-06-10", DepartureDate: "2024-06-15"},
			day:         day("2024-06-12"),
			want:        true,
		},
		{
			name:        "departure day does not count",
			reservation: Reservation{ArrivalDate: "2024-06-10", DepartureDate: "2024-06-15"},
			day:         day("2024-06-15"),
			want:        false,
		},
		{
			name:        "day before arrival does not count",
			reservation: Reservation{ArrivalDate: "2024-06-10", DepartureDate: "2024-06-15"},
			day:         day("2024-06-09"),
			want:        false,
		},
		{
			name:        "malformed arrival date never matches",
			reservation: Reservation{ArrivalDate: "10/06/2024", DepartureDate: "2024-06-15"},
			day:         day("2024-06-12"),
			want:        false,
		},
		{
			name:        "malformed departure date never matches",
			reservation: Reservation{ArrivalDate: "2024-06-10", DepartureDate: ""},
			day:         day("2024-06-12"),
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reservation.StayIncludes(tt.day))
		})
	}
}

func TestReservation_StayNights(t *testing.T) {
	tests := []struct {
		name        string
		reservation Reservation
		want        int
	}{
		{
			name:        "reported nights preferred",
			reservation: Reservation{Nights: 3, ArrivalDate: "2024-06-10", DepartureDate: "2024-06-15"},
			want:        3,
		},
		{
			name:        "date difference fallback",
			reservation: Reservation{ArrivalDate: "2024-06-10", DepartureDate: "2024-06-15"},
			want:        5,
		},
		{
			name:        "malformed dates yield zero",
			reservation: Reservation{ArrivalDate: "not-a-date", DepartureDate: "2024-06-15"},
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reservation.StayNights())
		})
	}
}

func TestIsTestGuest(t *testing.T) {
	tests := []struct {
		name      string
		guestName string
		want      bool
	}{
		{"blank name is placeholder", "   ", true},
		{"explicit test booking", "Test Booking", true},
		{"testing substring", "API testing run", true},
		{"new guest placeholder", "New Guest", true},
		{"case insensitive", "TEST", true},
		{"real guest passes", "Alice Carter", false},
		{"substring match inside word", "Ernest Moore", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTestGuest(tt.guestName))
		})
	}
}

func TestReservation_HasCheckedIn(t *testing.T) {
	checkedIn := Reservation{CustomFields: []CustomFieldValue{
		{FieldID: ActualCheckInFieldID, Value: "2024-06-10 14:05"},
	}}
	assert.True(t, checkedIn.HasCheckedIn())

	blankValue := Reservation{CustomFields: []CustomFieldValue{
		{FieldID: ActualCheckInFieldID, Value: "   "},
	}}
	assert.False(t, blankValue.HasCheckedIn())

	otherField := Reservation{CustomFields: []CustomFieldValue{
		{FieldID: 999, Value: "2024-06-10 14:05"},
	}}
	assert.False(t, otherField.HasCheckedIn())

	assert.False(t, Reservation{}.HasCheckedIn())
}

func TestReservationStatus_IsActive(t *testing.T) {
	assert.True(t, ReservationStatusNew.IsActive())
	assert.True(t, ReservationStatusModified.IsActive())
	assert.False(t, ReservationStatusCancelled.IsActive())
	assert.False(t, ReservationStatusOwnerStay.IsActive())
	assert.False(t, ReservationStatus("inquiry").IsActive())
}
