package hostaway

import (
	"context"

	hostawaydomain "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/domain"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/hostawayclient"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
)

// Integrator exposes the property platform to the aggregation engine in
// internal domain terms.
type Integrator interface {
	ListListings(ctx context.Context) ([]domain.Listing, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	GetReservationDetail(ctx context.Context, reservationID int) (*domain.Reservation, error)
	GetCalendarDay(ctx context.Context, listingID int, date string) (*domain.CalendarDay, error)
	GetFinance(ctx context.Context, reservationID int) domain.FinanceResult
}

type HostawayIntegrator struct {
	cfg    *config.Config
	client hostawayclient.Client
}

func New(cfg *config.Config, client hostawayclient.Client) *HostawayIntegrator {
	return &HostawayIntegrator{
		cfg:    cfg,
		client: client,
	}
}

func (i *HostawayIntegrator) ListListings(ctx context.Context) ([]domain.Listing, error) {
	upstream, err := i.client.ListListings(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(upstream))
	for _, l := range upstream {
		listings = append(listings, domain.Listing{
			ID:      l.ID,
			Name:    l.Name,
			Country: l.Country,
		})
	}
	return listings, nil
}

func (i *HostawayIntegrator) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	upstream, err := i.client.ListReservations(ctx)
	if err != nil {
		return nil, err
	}

	reservations := make([]domain.Reservation, 0, len(upstream))
	for _, r := range upstream {
		reservations = append(reservations, mapReservation(r))
	}
	return reservations, nil
}

func (i *HostawayIntegrator) GetReservationDetail(ctx context.Context, reservationID int) (*domain.Reservation, error) {
	upstream, err := i.client.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	reservation := mapReservation(*upstream)
	return &reservation, nil
}

func (i *HostawayIntegrator) GetCalendarDay(ctx context.Context, listingID int, date string) (*domain.CalendarDay, error) {
	upstream, err := i.client.GetCalendarDay(ctx, listingID, date)
	if err != nil {
		return nil, err
	}

	status := domain.CalendarDayAvailable
	if upstream.Status == string(domain.CalendarDayReserved) {
		status = domain.CalendarDayReserved
	}

	return &domain.CalendarDay{
		ListingID: listingID,
		Date:      upstream.Date,
		Status:    status,
	}, nil
}

// GetFinance returns a typed result so the aggregation engine can treat
// missing or failed finance lookups as zero revenue instead of aborting.
func (i *HostawayIntegrator) GetFinance(ctx context.Context, reservationID int) domain.FinanceResult {
	finance, found, err := i.client.GetReservationFinance(ctx, reservationID)
	if err != nil {
		return domain.FinanceResult{Err: err}
	}
	if !found {
		return domain.FinanceResult{Missing: true}
	}

	return domain.FinanceResult{
		Record: &domain.FinanceRecord{
			ReservationID:    reservationID,
			BaseRate:         finance.BaseRate,
			ChannelPayoutSum: finance.PayoutSum(),
		},
	}
}

func mapReservation(r hostawaydomain.Reservation) domain.Reservation {
	fields := make([]domain.CustomFieldValue, 0, len(r.CustomFieldValues))
	for _, f := range r.CustomFieldValues {
		fields = append(fields, domain.CustomFieldValue{
			FieldID: f.CustomFieldID,
			Value:   f.Value,
		})
	}

	return domain.Reservation{
		ID:            r.ID,
		ListingID:     r.ListingMapID,
		GuestName:     r.GuestName,
		ChannelID:     r.ChannelID,
		Status:        domain.ReservationStatus(r.Status),
		ArrivalDate:   r.ArrivalDate,
		DepartureDate: r.DepartureDate,
		Nights:        r.Nights,
		CustomFields:  fields,
	}
}
