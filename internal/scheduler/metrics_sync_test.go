package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating"
	aggregatingmocks "github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating/mocks"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/posting"
	postingmocks "github.com/hostfolio/property-dashboard-api/internal/usecases/posting/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func schedulerTestConfig(enabled bool) *config.Config {
	return &config.Config{
		MetricsSync: config.MetricsSync{
			CronSchedule: "0 * * * *",
			Enabled:      enabled,
		},
		Location: time.UTC,
	}
}

func TestMetricsSyncService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMetricsSyncService(
		aggregatingmocks.NewMockReporter(ctrl),
		postingmocks.NewMockPoster(ctrl),
		schedulerTestConfig(false),
	)

	require.NoError(t, service.Start(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, false, status["enabled"])
	assert.Equal(t, false, status["started"])
}

func TestMetricsSyncService_StartIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMetricsSyncService(
		aggregatingmocks.NewMockReporter(ctrl),
		postingmocks.NewMockPoster(ctrl),
		schedulerTestConfig(true),
	)
	defer service.Stop()

	ctx := context.Background()
	require.NoError(t, service.Start(ctx))
	require.NoError(t, service.Start(ctx), "second start must be a no-op")

	status := service.GetStatus()
	assert.Equal(t, true, status["started"])
	assert.Equal(t, "0 * * * *", status["cron_schedule"])
}

func TestMetricsSyncService_StopBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMetricsSyncService(
		aggregatingmocks.NewMockReporter(ctrl),
		postingmocks.NewMockPoster(ctrl),
		schedulerTestConfig(true),
	)

	// Must not panic, and the service remains startable afterwards.
	service.Stop()
	require.NoError(t, service.Start(context.Background()))
	service.Stop()
}

func TestMetricsSyncService_RunSyncPostsReportMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := aggregatingmocks.NewMockReporter(ctrl)
	mockPoster := postingmocks.NewMockPoster(ctrl)

	service := NewMetricsSyncService(mockReporter, mockPoster, schedulerTestConfig(true))

	report := &domain.DashboardReport{
		Date:          "2024-06-10",
		ActualRevenue: 28_000,
		TotalRevenue:  28_100,
	}

	mockReporter.EXPECT().
		DashboardReport(gomock.Any(), aggregating.ReportOptions{ForceRefresh: true}).
		Return(report, nil)

	posted := make(chan domain.HourlyMetrics, 1)
	mockPoster.EXPECT().
		Post(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, metrics domain.HourlyMetrics) error {
			posted <- metrics
			return nil
		})

	service.runSync(context.Background())

	select {
	case metrics := <-posted:
		assert.Equal(t, 28_000.0, metrics.ActualRevenue)
		assert.Equal(t, 28_100.0, metrics.TotalRevenue)
	default:
		t.Fatal("expected metrics to be posted")
	}

	status := service.GetStatus()
	assert.NotContains(t, status, "last_sync_error")
	assert.Contains(t, status, "last_sync_completed_at")
}

func TestMetricsSyncService_DuplicateHourIsNotAFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := aggregatingmocks.NewMockReporter(ctrl)
	mockPoster := postingmocks.NewMockPoster(ctrl)

	service := NewMetricsSyncService(mockReporter, mockPoster, schedulerTestConfig(true))

	mockReporter.EXPECT().
		DashboardReport(gomock.Any(), gomock.Any()).
		Return(&domain.DashboardReport{}, nil)
	mockPoster.EXPECT().
		Post(gomock.Any(), gomock.Any()).
		Return(posting.ErrDuplicateHour)

	service.runSync(context.Background())

	// The duplicate-hour outcome is still recorded in the status.
	status := service.GetStatus()
	assert.Contains(t, status, "last_sync_error")
	assert.Equal(t, false, status["sync_running"])
}

func TestMetricsSyncService_AggregationFailureRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := aggregatingmocks.NewMockReporter(ctrl)
	mockPoster := postingmocks.NewMockPoster(ctrl)

	service := NewMetricsSyncService(mockReporter, mockPoster, schedulerTestConfig(true))

	mockReporter.EXPECT().
		DashboardReport(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("upstream down"))

	service.runSync(context.Background())

	status := service.GetStatus()
	assert.Contains(t, status, "last_sync_error")
}
