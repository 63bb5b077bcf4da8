package posting

import (
	"context"
	"testing"
	"time"

	stackbymocks "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/stackby/stackbyclient/mocks"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/stackby/stackbyclient"
	"github.com/hostfolio/property-dashboard-api/infrastructure/repository"
	"github.com/hostfolio/property-dashboard-api/infrastructure/repository/mocks"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postingTestConfig(cooldownMinutes int) *config.Config {
	return &config.Config{
		MetricsSync: config.MetricsSync{CooldownMinutes: cooldownMinutes},
		Location:    time.UTC,
	}
}

func TestService_Post_CreatesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStackby := stackbymocks.NewMockClient(ctrl)
	mockPostLog := mocks.NewMockMetricPostLogRepository(ctrl)

	service := NewService(postingTestConfig(0), mockStackby, mockPostLog)

	timestamp := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	mockStackby.EXPECT().ListRows(gomock.Any()).Return([]stackbyclient.Row{
		{ID: "r1", Fields: stackbyclient.RowFields{DateAndTime: "2024-06-10 13:00"}},
	}, nil)

	var created stackbyclient.RowFields
	mockStackby.EXPECT().
		CreateRow(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields stackbyclient.RowFields) (*stackbyclient.Row, error) {
			created = fields
			return &stackbyclient.Row{ID: "r2", Fields: fields}, nil
		})

	mockPostLog.EXPECT().RecordPost(gomock.Any()).Return(nil)

	err := service.Post(context.Background(), domain.HourlyMetrics{
		Timestamp:     timestamp,
		ActualRevenue: 583_000,
		TotalRevenue:  1_200_000,
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10 14:00", created.DateAndTime)
	assert.Equal(t, "Rs583K", created.Actual)
	assert.Equal(t, "Rs1.2M", created.Achieved)
}

func TestService_Post_DuplicateHourSkipsCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStackby := stackbymocks.NewMockClient(ctrl)
	mockPostLog := mocks.NewMockMetricPostLogRepository(ctrl)

	service := NewService(postingTestConfig(0), mockStackby, mockPostLog)

	timestamp := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)

	// An existing row in the same (date, hour) bucket, different minute.
	mockStackby.EXPECT().ListRows(gomock.Any()).Return([]stackbyclient.Row{
		{ID: "r1", Fields: stackbyclient.RowFields{DateAndTime: "2024-06-10 14:02"}},
	}, nil)

	err := service.Post(context.Background(), domain.HourlyMetrics{Timestamp: timestamp})
	assert.ErrorIs(t, err, ErrDuplicateHour)
}

func TestService_Post_VerificationFailureFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStackby := stackbymocks.NewMockClient(ctrl)
	mockPostLog := mocks.NewMockMetricPostLogRepository(ctrl)

	service := NewService(postingTestConfig(0), mockStackby, mockPostLog)

	mockStackby.EXPECT().ListRows(gomock.Any()).Return(nil, errors.New("store unreachable"))

	err := service.Post(context.Background(), domain.HourlyMetrics{Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestService_Post_CooldownFromPersistedLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStackby := stackbymocks.NewMockClient(ctrl)
	mockPostLog := mocks.NewMockMetricPostLogRepository(ctrl)

	service := NewService(postingTestConfig(60), mockStackby, mockPostLog)

	// Fresh process: the in-memory marker is empty, the persisted log
	// has a post from ten minutes ago.
	mockPostLog.EXPECT().LastPost().Return(&repository.MetricPost{
		PostedAt: time.Now().Add(-10 * time.Minute),
	}, nil)

	err := service.Post(context.Background(), domain.HourlyMetrics{Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrCooldownActive)
}

func TestService_Post_CooldownExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStackby := stackbymocks.NewMockClient(ctrl)
	mockPostLog := mocks.NewMockMetricPostLogRepository(ctrl)

	service := NewService(postingTestConfig(60), mockStackby, mockPostLog)

	mockPostLog.EXPECT().LastPost().Return(&repository.MetricPost{
		PostedAt: time.Now().Add(-2 * time.Hour),
	}, nil)
	mockStackby.EXPECT().ListRows(gomock.Any()).Return(nil, nil)
	mockStackby.EXPECT().CreateRow(gomock.Any(), gomock.Any()).Return(&stackbyclient.Row{ID: "r1"}, nil)
	mockPostLog.EXPECT().RecordPost(gomock.Any()).Return(nil)

	err := service.Post(context.Background(), domain.HourlyMetrics{Timestamp: time.Now()})
	assert.NoError(t, err)
}
