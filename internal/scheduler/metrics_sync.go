package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/posting"
	"github.com/hostfolio/property-dashboard-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MetricsSyncConfig holds the scheduler's own settings.
type MetricsSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// MetricsSyncService runs the hourly metrics sync: one aggregation run
// followed by a post to the spreadsheet store. It fires at minute 0 of
// every hour in the configured timezone.
type MetricsSyncService struct {
	scheduler  *gocron.Scheduler
	config     MetricsSyncConfig
	appConfig  *config.Config
	aggregator aggregating.Reporter
	poster     posting.Poster

	stateMu             sync.Mutex
	started             bool
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewMetricsSyncService(
	aggregator aggregating.Reporter,
	poster posting.Poster,
	appConfig *config.Config,
) *MetricsSyncService {
	syncConfig := MetricsSyncConfig{
		CronSchedule: appConfig.MetricsSync.CronSchedule,
		SyncEnabled:  appConfig.MetricsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(appConfig.Location)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"timezone":      appConfig.Location.String(),
	}).Info("metrics sync scheduler configured")

	return &MetricsSyncService{
		scheduler:  scheduler,
		config:     syncConfig,
		appConfig:  appConfig,
		aggregator: aggregator,
		poster:     poster,
	}
}

// Start registers the hourly job and launches the scheduler. Calling
// Start twice is a no-op; the timer is never registered twice.
func (s *MetricsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("metrics sync disabled by configuration")
		return nil
	}

	s.stateMu.Lock()
	if s.started {
		s.stateMu.Unlock()
		logrus.Info("metrics sync scheduler already started, ignoring")
		return nil
	}
	s.started = true
	s.stateMu.Unlock()

	logrus.WithField("cron", s.config.CronSchedule).Info("starting metrics sync scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(context.Background())
	})
	if err != nil {
		s.stateMu.Lock()
		s.started = false
		s.stateMu.Unlock()
		return fmt.Errorf("could not schedule metrics sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the scheduler. Safe to call before Start or repeatedly.
func (s *MetricsSyncService) Stop() {
	s.stateMu.Lock()
	wasStarted := s.started
	s.started = false
	s.stateMu.Unlock()

	if wasStarted {
		logrus.Info("stopping metrics sync scheduler")
	}
	s.scheduler.Stop()
}

// TriggerManualSync runs one sync outside the schedule, in background.
func (s *MetricsSyncService) TriggerManualSync() {
	go s.runSync(context.Background())
}

// GetStatus returns the scheduler state for the cron status endpoint.
func (s *MetricsSyncService) GetStatus() map[string]any {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	status := map[string]any{
		"enabled":       s.config.SyncEnabled,
		"started":       s.started,
		"sync_running":  s.syncRunning,
		"cron_schedule": s.config.CronSchedule,
	}

	if !s.lastSyncStartedAt.IsZero() {
		status["last_sync_started_at"] = s.lastSyncStartedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		status["last_sync_completed_at"] = s.lastSyncCompletedAt
	}
	if s.lastSyncError != "" {
		status["last_sync_error"] = s.lastSyncError
	}

	return status
}

// runSync executes one aggregation run and posts the resulting metrics.
// Overlapping invocations are ignored.
func (s *MetricsSyncService) runSync(ctx context.Context) {
	s.stateMu.Lock()
	if s.syncRunning {
		s.stateMu.Unlock()
		logrus.Info("metrics sync already in progress, ignoring")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.stateMu.Unlock()

	defer func() {
		s.stateMu.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.stateMu.Unlock()
	}()

	runID, idErr := utils.GenerateID()
	if idErr != nil {
		runID = "unknown"
	}
	logger := logrus.WithField("run_id", runID)

	logger.Info("metrics sync started")

	err := s.syncOnce(ctx)

	s.stateMu.Lock()
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
	}
	s.stateMu.Unlock()

	if err != nil {
		// Duplicate-hour and cooldown outcomes are expected when the
		// scheduler and a manual trigger land in the same hour.
		if errors.Is(err, posting.ErrDuplicateHour) || errors.Is(err, posting.ErrCooldownActive) {
			logger.WithError(err).Info("metrics sync skipped posting")
			return
		}
		logger.WithError(err).Error("metrics sync failed")
		return
	}

	logger.Info("metrics sync finished")
}

func (s *MetricsSyncService) syncOnce(ctx context.Context) error {
	report, err := s.aggregator.DashboardReport(ctx, aggregating.ReportOptions{ForceRefresh: true})
	if err != nil {
		return errors.Wrap(err, "aggregation run")
	}

	return s.poster.Post(ctx, domain.HourlyMetrics{
		Timestamp:     time.Now(),
		ActualRevenue: report.ActualRevenue,
		TotalRevenue:  report.TotalRevenue,
	})
}
