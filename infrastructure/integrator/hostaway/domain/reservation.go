package domain

// Reservation is the upstream reservation payload. CustomFieldValues is
// only populated when the reservation is fetched with the richer
// include-set.
type Reservation struct {
	ID                int                `json:"id"`
	ListingMapID      int                `json:"listingMapId"`
	GuestName         string             `json:"guestName"`
	ChannelID         int                `json:"channelId"`
	Status            string             `json:"status"`
	ArrivalDate       string             `json:"arrivalDate"`
	DepartureDate     string             `json:"departureDate"`
	Nights            int                `json:"nights"`
	CustomFieldValues []CustomFieldValue `json:"customFieldValues,omitempty"`
}

type CustomFieldValue struct {
	CustomFieldID int    `json:"customFieldId"`
	Value         string `json:"value"`
}
