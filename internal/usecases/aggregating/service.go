package aggregating

import (
	"context"
	"sync"
	"time"

	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/exchange"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway"
	"github.com/hostfolio/property-dashboard-api/infrastructure/repository"
	"github.com/hostfolio/property-dashboard-api/internal/cache"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	// calendarBatchSize bounds concurrent calendar lookups; batches are
	// joined with settle-all semantics and separated by a short pause.
	// This is client-side throttling, not a correctness mechanism.
	calendarBatchSize  = 10
	calendarBatchPause = 250 * time.Millisecond
)

// Service is the aggregation engine: it pulls listings, reservations,
// calendars and finance records, computes revenue and occupancy for
// "today" in the configured timezone, and maintains the persisted daily
// snapshot.
type Service struct {
	cfg          *config.Config
	hostaway     hostaway.Integrator
	rates        exchange.RateSource
	snapshotRepo repository.SnapshotRepository
	dayCache     *cache.Cache

	// runMu serializes aggregation runs so the snapshot's
	// read-modify-write never races between the scheduler and an
	// on-demand HTTP call.
	runMu sync.Mutex

	reportMu     sync.RWMutex
	lastReport   *domain.DashboardReport
	lastReportAt time.Time
}

func NewService(
	cfg *config.Config,
	hostawayService hostaway.Integrator,
	rates exchange.RateSource,
	snapshotRepo repository.SnapshotRepository,
	dayCache *cache.Cache,
) *Service {
	return &Service{
		cfg:          cfg,
		hostaway:     hostawayService,
		rates:        rates,
		snapshotRepo: snapshotRepo,
		dayCache:     dayCache,
	}
}

// DashboardReport returns the current revenue/occupancy report, from
// cache when fresh enough, otherwise from a full aggregation run.
func (s *Service) DashboardReport(ctx context.Context, opts ReportOptions) (*domain.DashboardReport, error) {
	if !opts.ForceRefresh {
		if report, ok := s.freshReport(); ok {
			return report, nil
		}
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if !opts.ForceRefresh {
		if report, ok := s.freshReport(); ok {
			return report, nil
		}
	}

	report, err := s.run(ctx)
	if err != nil {
		if opts.AllowStale {
			if stale, ok := s.LastReport(); ok {
				logrus.WithError(err).Warn("aggregation: serving stale report after failed run")
				return stale, err
			}
		}
		return nil, err
	}

	s.reportMu.Lock()
	s.lastReport = report
	s.lastReportAt = time.Now()
	s.reportMu.Unlock()

	return report, nil
}

// LastReport returns the most recently computed report, if any.
func (s *Service) LastReport() (*domain.DashboardReport, bool) {
	s.reportMu.RLock()
	defer s.reportMu.RUnlock()

	if s.lastReport == nil {
		return nil, false
	}
	return s.lastReport, true
}

// CacheStatus reports report-cache freshness for the health probe.
func (s *Service) CacheStatus() CacheStatus {
	s.reportMu.RLock()
	defer s.reportMu.RUnlock()

	status := CacheStatus{
		TTLMinutes: s.cfg.Cache.RevenueTTLMinutes,
	}
	if s.lastReport != nil {
		status.HasReport = true
		status.GeneratedAt = s.lastReport.GeneratedAt
		status.AgeSeconds = time.Since(s.lastReportAt).Seconds()
	}
	return status
}

func (s *Service) freshReport() (*domain.DashboardReport, bool) {
	s.reportMu.RLock()
	defer s.reportMu.RUnlock()

	ttl := time.Duration(s.cfg.Cache.RevenueTTLMinutes) * time.Minute
	if s.lastReport == nil || time.Since(s.lastReportAt) > ttl {
		return nil, false
	}
	return s.lastReport, true
}

// run executes one full aggregation. Per-item failures are isolated
// into diagnostics; only the top-level listing and reservation fetches
// are fatal.
func (s *Service) run(ctx context.Context) (*domain.DashboardReport, error) {
	startTime := time.Now()
	today := utils.Today(s.cfg.Location)
	diagnostics := domain.RunDiagnostics{}

	listings, err := s.hostaway.ListListings(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "listings fetch", Err: err}
	}

	categoryByListing := s.partitionListings(listings, &diagnostics)

	reservations, err := s.hostaway.ListReservations(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "reservations fetch", Err: err}
	}

	active := s.filterReservations(reservations, categoryByListing, today, &diagnostics)
	active = s.refetchDetails(ctx, active)

	actualRevenue, expectedRevenue := s.computeRevenue(ctx, active, &diagnostics)
	runTotal := actualRevenue + expectedRevenue

	categories, reserved, available := s.computeOccupancy(ctx, listings, categoryByListing, today, &diagnostics)

	occupancyRate := 0.0
	if reserved+available > 0 {
		occupancyRate = utils.RoundWithTwoDecimalPlace(float64(reserved) / float64(reserved+available) * 100)
	}

	dayRevenueToDate := s.persistSnapshot(today, runTotal, categories)

	report := &domain.DashboardReport{
		Date:             today,
		ActualRevenue:    utils.RoundWithTwoDecimalPlace(actualRevenue),
		ExpectedRevenue:  utils.RoundWithTwoDecimalPlace(expectedRevenue),
		TotalRevenue:     utils.RoundWithTwoDecimalPlace(runTotal),
		DayRevenueToDate: utils.RoundWithTwoDecimalPlace(dayRevenueToDate),
		OccupancyRate:    occupancyRate,
		TotalRooms:       reserved + available,
		ReservedRooms:    reserved,
		AvailableRooms:   available,
		Categories:       categories,
		Diagnostics:      diagnostics,
		GeneratedAt:      time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"date":           today,
		"total_revenue":  report.TotalRevenue,
		"occupancy_rate": report.OccupancyRate,
		"reservations":   len(active),
		"skipped":        len(diagnostics.Skipped),
		"duration":       time.Since(startTime).String(),
	}).Info("aggregation: run finished")

	return report, nil
}

// partitionListings resolves each listing's category. Listings matching
// neither the id table nor a name pattern are dropped with a warning.
func (s *Service) partitionListings(listings []domain.Listing, diagnostics *domain.RunDiagnostics) map[int]domain.ListingCategory {
	categoryByListing := make(map[int]domain.ListingCategory, len(listings))
	for _, listing := range listings {
		category, ok := domain.CategoryForListing(listing.ID, listing.Name)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"listing_id":   listing.ID,
				"listing_name": listing.Name,
			}).Warn("aggregation: listing matches no category, dropping")
			diagnostics.Add(listing.ID, domain.SkipBadData)
			continue
		}
		categoryByListing[listing.ID] = category
	}
	return categoryByListing
}

// filterReservations applies the exclusion predicates in order,
// short-circuiting at the first failure so diagnostics count why each
// reservation was dropped.
func (s *Service) filterReservations(
	reservations []domain.Reservation,
	categoryByListing map[int]domain.ListingCategory,
	today string,
	diagnostics *domain.RunDiagnostics,
) []domain.Reservation {
	todayDate, err := time.Parse(time.DateOnly, today)
	if err != nil {
		return nil
	}

	allowed := map[int]bool{}
	for _, id := range s.cfg.Hostaway.AllowedListingIDs {
		allowed[id] = true
	}

	var active []domain.Reservation
	for _, r := range reservations {
		switch {
		case r.ArrivalDate == "" || r.DepartureDate == "":
			diagnostics.Add(r.ID, domain.SkipMissingDates)
		case !r.Status.IsActive():
			diagnostics.Add(r.ID, domain.SkipInactiveStatus)
		case len(allowed) > 0 && !allowed[r.ListingID]:
			diagnostics.Add(r.ID, domain.SkipUnknownListing)
		case !r.StayIncludes(todayDate):
			diagnostics.Add(r.ID, domain.SkipOutsideStayWindow)
		case domain.IsTestGuest(r.GuestName):
			diagnostics.Add(r.ID, domain.SkipTestGuest)
		default:
			active = append(active, r)
		}
	}
	return active
}

// refetchDetails upgrades surviving reservations to the richer record
// carrying custom field values. Best-effort: a failed refetch keeps the
// base record.
func (s *Service) refetchDetails(ctx context.Context, reservations []domain.Reservation) []domain.Reservation {
	for i, r := range reservations {
		if ctx.Err() != nil {
			break
		}

		detail, err := s.hostaway.GetReservationDetail(ctx, r.ID)
		if err != nil {
			logrus.WithError(err).WithField("reservation_id", r.ID).
				Warn("aggregation: detail refetch failed, keeping base record")
			continue
		}
		reservations[i] = *detail
	}
	return reservations
}

// computeRevenue accumulates nightly rates into the actual bucket for
// checked-in guests, the expected bucket otherwise. Any reservation
// whose finance lookup fails contributes zero.
func (s *Service) computeRevenue(ctx context.Context, reservations []domain.Reservation, diagnostics *domain.RunDiagnostics) (actual, expected float64) {
	if len(reservations) == 0 {
		return 0, 0
	}

	// One rate per run; cached up to an hour with a fixed fallback.
	fxRate := s.rates.USDToLocal(ctx)

	for _, r := range reservations {
		if ctx.Err() != nil {
			break
		}

		result := s.hostaway.GetFinance(ctx, r.ID)
		if result.Err != nil {
			logrus.WithError(result.Err).WithField("reservation_id", r.ID).
				Warn("aggregation: finance lookup failed, contributing zero")
			diagnostics.Add(r.ID, domain.SkipFinanceUnavailable)
			continue
		}
		if result.Missing {
			diagnostics.Add(r.ID, domain.SkipFinanceUnavailable)
			continue
		}

		nights := r.StayNights()
		if nights <= 0 {
			diagnostics.Add(r.ID, domain.SkipBadData)
			continue
		}

		nightly := result.Record.BaseAmount(r.ChannelID) / float64(nights)
		if domain.IsUSDChannel(r.ChannelID) {
			nightly *= fxRate
		}

		if r.HasCheckedIn() {
			actual += nightly
		} else {
			expected += nightly
		}
	}

	return actual, expected
}

// computeOccupancy classifies each known listing's single-day calendar
// entry, reading entries from cache (~10 minutes) before going upstream
// in bounded batches.
func (s *Service) computeOccupancy(
	ctx context.Context,
	listings []domain.Listing,
	categoryByListing map[int]domain.ListingCategory,
	today string,
	diagnostics *domain.RunDiagnostics,
) (map[domain.ListingCategory]domain.CategoryAvailability, int, int) {
	categories := map[domain.ListingCategory]domain.CategoryAvailability{}
	reserved, available := 0, 0

	type dayResult struct {
		listingID int
		status    domain.CalendarDayStatus
		err       error
	}

	var known []domain.Listing
	for _, listing := range listings {
		if _, ok := categoryByListing[listing.ID]; ok {
			known = append(known, listing)
		}
	}

	maxAge := time.Duration(s.cfg.Cache.CalendarTTLMinutes) * time.Minute

	for start := 0; start < len(known); start += calendarBatchSize {
		if ctx.Err() != nil {
			break
		}

		end := start + calendarBatchSize
		if end > len(known) {
			end = len(known)
		}
		batch := known[start:end]

		results := make([]dayResult, len(batch))
		var wg sync.WaitGroup
		for i, listing := range batch {
			wg.Add(1)
			go func(i int, listingID int) {
				defer wg.Done()
				status, err := s.calendarDayStatus(ctx, listingID, today, maxAge)
				results[i] = dayResult{listingID: listingID, status: status, err: err}
			}(i, listing.ID)
		}
		wg.Wait()

		for _, result := range results {
			if result.err != nil {
				logrus.WithError(result.err).WithField("listing_id", result.listingID).
					Warn("aggregation: calendar lookup failed, skipping listing")
				diagnostics.Add(result.listingID, domain.SkipCalendarUnavailable)
				continue
			}

			category := categoryByListing[result.listingID]
			counts := categories[category]
			if result.status == domain.CalendarDayReserved {
				counts.Reserved++
				reserved++
			} else {
				counts.Available++
				available++
			}
			categories[category] = counts
		}

		if end < len(known) {
			if err := sleepContext(ctx, calendarBatchPause); err != nil {
				break
			}
		}
	}

	return categories, reserved, available
}

func (s *Service) calendarDayStatus(ctx context.Context, listingID int, date string, maxAge time.Duration) (domain.CalendarDayStatus, error) {
	cacheKey := cache.Key("calendar_day", map[string]any{"listing_id": listingID, "date": date})

	var cached domain.CalendarDay
	if s.dayCache.GetInto(cacheKey, maxAge, &cached) {
		return cached.Status, nil
	}

	day, err := s.hostaway.GetCalendarDay(ctx, listingID, date)
	if err != nil {
		return "", err
	}

	if err := s.dayCache.Set(cacheKey, day); err != nil {
		logrus.WithError(err).Warn("aggregation: could not cache calendar day")
	}

	return day.Status, nil
}

// persistSnapshot applies the date rollover, accumulates the run total
// into the day-cumulative revenue and stores the latest availability.
// Returns the day-cumulative revenue after accumulation. Storage
// failures are logged, not fatal: the run report is still valid.
func (s *Service) persistSnapshot(today string, runTotal float64, categories map[domain.ListingCategory]domain.CategoryAvailability) float64 {
	snapshot, err := s.snapshotRepo.LoadSnapshot()
	if err != nil {
		logrus.WithError(err).Error("aggregation: could not load daily snapshot")
		snapshot = &domain.DailySnapshot{}
	}

	if snapshot.RolloverIfStale(today) {
		logrus.WithField("date", today).Info("aggregation: daily snapshot rolled over")
	}

	snapshot.TotalRevenue += runTotal
	snapshot.CategoryAvailability = categories
	snapshot.UpdatedAt = time.Now()

	if err := s.snapshotRepo.SaveSnapshot(snapshot); err != nil {
		logrus.WithError(err).Error("aggregation: could not persist daily snapshot")
	}

	return snapshot.TotalRevenue
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
