package aggregating

import (
	"context"
	"testing"
	"time"

	exchangemocks "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/exchange/mocks"
	hostawaymocks "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/mocks"
	"github.com/hostfolio/property-dashboard-api/infrastructure/repository/mocks"
	"github.com/hostfolio/property-dashboard-api/internal/cache"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	hostaway *hostawaymocks.MockIntegrator
	rates    *exchangemocks.MockRateSource
	snapshot *mocks.MockSnapshotRepository
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		hostaway: hostawaymocks.NewMockIntegrator(ctrl),
		rates:    exchangemocks.NewMockRateSource(ctrl),
		snapshot: mocks.NewMockSnapshotRepository(ctrl),
	}

	service := NewService(cfg, m.hostaway, m.rates, m.snapshot, cache.New(cache.NewMemoryStore()))
	return service, m
}

func aggregatingTestConfig() *config.Config {
	return &config.Config{
		Cache: config.Cache{
			RevenueTTLMinutes:  5,
			CalendarTTLMinutes: 10,
		},
		Location: time.UTC,
	}
}

// dateOffset renders today+days as a calendar date in loc.
func dateOffset(loc *time.Location, days int) string {
	return time.Now().In(loc).AddDate(0, 0, days).Format(time.DateOnly)
}

func TestService_DashboardReport_FullRun(t *testing.T) {
	cfg := aggregatingTestConfig()
	service, m := newTestService(t, cfg)

	today := dateOffset(cfg.Location, 0)
	tomorrow := dateOffset(cfg.Location, 1)
	inTwoDays := dateOffset(cfg.Location, 2)

	listings := []domain.Listing{
		{ID: 145672, Name: "Studio 1"},
		{ID: 145680, Name: "1BR 1"},
		{ID: 999999, Name: "Penthouse"}, // no category, dropped
	}

	checkedIn := domain.Reservation{
		ID: 1, ListingID: 145672, GuestName: "Alice Carter",
		ChannelID: domain.ChannelAirbnb, Status: domain.ReservationStatusNew,
		ArrivalDate: today, DepartureDate: tomorrow, Nights: 1,
		CustomFields: []domain.CustomFieldValue{
			{FieldID: domain.ActualCheckInFieldID, Value: "14:05"},
		},
	}
	expectedGuest := domain.Reservation{
		ID: 2, ListingID: 145680, GuestName: "Bilal Khan",
		ChannelID: domain.ChannelDirect, Status: domain.ReservationStatusNew,
		ArrivalDate: today, DepartureDate: inTwoDays, Nights: 2,
	}
	testGuest := domain.Reservation{
		ID: 3, ListingID: 145672, GuestName: "Test Guest",
		Status:      domain.ReservationStatusNew,
		ArrivalDate: today, DepartureDate: tomorrow,
	}
	cancelled := domain.Reservation{
		ID: 4, ListingID: 145680, GuestName: "Carol Danvers",
		Status:      domain.ReservationStatusCancelled,
		ArrivalDate: today, DepartureDate: tomorrow,
	}
	departed := domain.Reservation{
		ID: 5, ListingID: 145680, GuestName: "Dan Brown",
		Status:      domain.ReservationStatusNew,
		ArrivalDate: dateOffset(cfg.Location, -3), DepartureDate: today,
	}

	m.hostaway.EXPECT().ListListings(gomock.Any()).Return(listings, nil)
	m.hostaway.EXPECT().ListReservations(gomock.Any()).Return([]domain.Reservation{
		checkedIn, expectedGuest, testGuest, cancelled, departed,
	}, nil)

	// Detail refetch returns the same records.
	m.hostaway.EXPECT().GetReservationDetail(gomock.Any(), 1).Return(&checkedIn, nil)
	m.hostaway.EXPECT().GetReservationDetail(gomock.Any(), 2).Return(&expectedGuest, nil)

	m.rates.EXPECT().USDToLocal(gomock.Any()).Return(280.0)

	// Airbnb finance uses the channel payout sum, in USD.
	m.hostaway.EXPECT().GetFinance(gomock.Any(), 1).Return(domain.FinanceResult{
		Record: &domain.FinanceRecord{ReservationID: 1, BaseRate: 50, ChannelPayoutSum: 100},
	})
	// Direct-channel finance uses the base rate, already local currency.
	m.hostaway.EXPECT().GetFinance(gomock.Any(), 2).Return(domain.FinanceResult{
		Record: &domain.FinanceRecord{ReservationID: 2, BaseRate: 200},
	})

	m.hostaway.EXPECT().GetCalendarDay(gomock.Any(), 145672, today).
		Return(&domain.CalendarDay{ListingID: 145672, Date: today, Status: domain.CalendarDayReserved}, nil)
	m.hostaway.EXPECT().GetCalendarDay(gomock.Any(), 145680, today).
		Return(&domain.CalendarDay{ListingID: 145680, Date: today, Status: domain.CalendarDayAvailable}, nil)

	// Yesterday's snapshot rolls over before accumulating.
	m.snapshot.EXPECT().LoadSnapshot().Return(&domain.DailySnapshot{
		LastUpdatedDate: dateOffset(cfg.Location, -1),
		TotalRevenue:    999_999,
	}, nil)

	var saved *domain.DailySnapshot
	m.snapshot.EXPECT().SaveSnapshot(gomock.Any()).DoAndReturn(func(s *domain.DailySnapshot) error {
		saved = s
		return nil
	})

	report, err := service.DashboardReport(context.Background(), ReportOptions{})
	require.NoError(t, err)

	// Airbnb: 100 payout / 1 night * 280 = 28000 actual.
	assert.Equal(t, 28_000.0, report.ActualRevenue)
	// Direct: 200 base / 2 nights = 100 expected, no USD conversion.
	assert.Equal(t, 100.0, report.ExpectedRevenue)
	assert.Equal(t, 28_100.0, report.TotalRevenue)

	assert.Equal(t, today, report.Date)
	assert.Equal(t, 2, report.TotalRooms)
	assert.Equal(t, 1, report.ReservedRooms)
	assert.Equal(t, 1, report.AvailableRooms)
	assert.Equal(t, 50.0, report.OccupancyRate)
	assert.Equal(t, domain.CategoryAvailability{Reserved: 1}, report.Categories[domain.CategoryStudio])
	assert.Equal(t, domain.CategoryAvailability{Available: 1}, report.Categories[domain.CategoryOneBed])

	// Rolled-over snapshot holds only this run's total.
	require.NotNil(t, saved)
	assert.Equal(t, today, saved.LastUpdatedDate)
	assert.Equal(t, 28_100.0, saved.TotalRevenue)
	assert.Equal(t, 28_100.0, report.DayRevenueToDate)

	// Every excluded reservation is accounted for.
	skipped := map[int]domain.SkipReason{}
	for _, s := range report.Diagnostics.Skipped {
		skipped[s.ID] = s.Reason
	}
	assert.Equal(t, domain.SkipTestGuest, skipped[3])
	assert.Equal(t, domain.SkipInactiveStatus, skipped[4])
	assert.Equal(t, domain.SkipOutsideStayWindow, skipped[5])
	assert.Equal(t, domain.SkipBadData, skipped[999999])
}

func TestService_DashboardReport_AccumulatesSameDaySnapshot(t *testing.T) {
	cfg := aggregatingTestConfig()
	service, m := newTestService(t, cfg)

	today := dateOffset(cfg.Location, 0)

	m.hostaway.EXPECT().ListListings(gomock.Any()).Return(nil, nil)
	m.hostaway.EXPECT().ListReservations(gomock.Any()).Return(nil, nil)

	// Same-day snapshot keeps its accumulated revenue; a zero-revenue
	// run adds nothing.
	m.snapshot.EXPECT().LoadSnapshot().Return(&domain.DailySnapshot{
		LastUpdatedDate: today,
		TotalRevenue:    58_300,
	}, nil)

	var saved *domain.DailySnapshot
	m.snapshot.EXPECT().SaveSnapshot(gomock.Any()).DoAndReturn(func(s *domain.DailySnapshot) error {
		saved = s
		return nil
	})

	report, err := service.DashboardReport(context.Background(), ReportOptions{})
	require.NoError(t, err)

	assert.Zero(t, report.TotalRevenue)
	assert.Equal(t, 58_300.0, report.DayRevenueToDate)
	require.NotNil(t, saved)
	assert.Equal(t, 58_300.0, saved.TotalRevenue)

	// No rooms at all: occupancy reads zero, not NaN.
	assert.Zero(t, report.OccupancyRate)
	assert.Zero(t, report.TotalRooms)
}

func TestService_DashboardReport_FinanceFailuresContributeZero(t *testing.T) {
	cfg := aggregatingTestConfig()
	service, m := newTestService(t, cfg)

	today := dateOffset(cfg.Location, 0)
	tomorrow := dateOffset(cfg.Location, 1)

	reservation := domain.Reservation{
		ID: 7, ListingID: 145672, GuestName: "Erin Song",
		ChannelID: domain.ChannelDirect, Status: domain.ReservationStatusNew,
		ArrivalDate: today, DepartureDate: tomorrow, Nights: 1,
	}

	m.hostaway.EXPECT().ListListings(gomock.Any()).Return([]domain.Listing{{ID: 145672, Name: "Studio 1"}}, nil)
	m.hostaway.EXPECT().ListReservations(gomock.Any()).Return([]domain.Reservation{reservation}, nil)
	m.hostaway.EXPECT().GetReservationDetail(gomock.Any(), 7).Return(&reservation, nil)
	m.rates.EXPECT().USDToLocal(gomock.Any()).Return(280.0)

	// Upstream has no finance record for this reservation.
	m.hostaway.EXPECT().GetFinance(gomock.Any(), 7).Return(domain.FinanceResult{Missing: true})

	m.hostaway.EXPECT().GetCalendarDay(gomock.Any(), 145672, today).
		Return(&domain.CalendarDay{Status: domain.CalendarDayReserved}, nil)

	m.snapshot.EXPECT().LoadSnapshot().Return(&domain.DailySnapshot{LastUpdatedDate: today}, nil)
	m.snapshot.EXPECT().SaveSnapshot(gomock.Any()).Return(nil)

	report, err := service.DashboardReport(context.Background(), ReportOptions{})
	require.NoError(t, err)

	assert.Zero(t, report.TotalRevenue)

	skipped := map[int]domain.SkipReason{}
	for _, s := range report.Diagnostics.Skipped {
		skipped[s.ID] = s.Reason
	}
	assert.Equal(t, domain.SkipFinanceUnavailable, skipped[7])
}

func TestService_DashboardReport_CachedReportServedWhenFresh(t *testing.T) {
	cfg := aggregatingTestConfig()
	service, _ := newTestService(t, cfg)

	cached := &domain.DashboardReport{Date: "2024-06-10", TotalRevenue: 1_000}
	service.lastReport = cached
	service.lastReportAt = time.Now()

	// No mock expectations: a fresh cached report short-circuits the run.
	report, err := service.DashboardReport(context.Background(), ReportOptions{})
	require.NoError(t, err)
	assert.Same(t, cached, report)
}

func TestService_DashboardReport_StaleFallback(t *testing.T) {
	cfg := aggregatingTestConfig()
	cfg.Cache.RevenueTTLMinutes = 0 // every cached report is stale
	service, m := newTestService(t, cfg)

	stale := &domain.DashboardReport{Date: "2024-06-10", TotalRevenue: 1_000}
	service.lastReport = stale
	service.lastReportAt = time.Now().Add(-time.Hour)

	upstreamErr := errors.New("upstream down")
	m.hostaway.EXPECT().ListListings(gomock.Any()).Return(nil, upstreamErr)

	report, err := service.DashboardReport(context.Background(), ReportOptions{AllowStale: true})

	// The stale report is returned together with the typed error.
	require.Error(t, err)
	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Same(t, stale, report)
}

func TestService_DashboardReport_NoStaleDataMeansError(t *testing.T) {
	cfg := aggregatingTestConfig()
	service, m := newTestService(t, cfg)

	m.hostaway.EXPECT().ListListings(gomock.Any()).Return(nil, errors.New("upstream down"))

	report, err := service.DashboardReport(context.Background(), ReportOptions{AllowStale: true})
	require.Error(t, err)
	assert.Nil(t, report)
}
