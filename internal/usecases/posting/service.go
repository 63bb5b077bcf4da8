// Package posting pushes computed hourly metrics to the external
// spreadsheet store, enforcing at most one row per (date, hour) bucket.
//
// The duplicate-hour check re-reads existing rows from the store before
// every write, which is inherently racy against a second process posting
// concurrently. This is a known, accepted limitation: the dashboard is
// deployed as a single instance.
package posting

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/stackby/stackbyclient"
	"github.com/hostfolio/property-dashboard-api/infrastructure/repository"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// rowTimeLayout is how the spreadsheet's "Date and Time" column is
// written; its prefix is the (date, hour) bucket.
const rowTimeLayout = "2006-01-02 15:04"

var (
	// ErrDuplicateHour means a row already exists for the current hour
	// bucket. Distinct from upstream failures so callers can tell
	// "already posted" apart from "store unreachable".
	ErrDuplicateHour = errors.New("a metrics row already exists for this hour")

	// ErrCooldownActive means the minimum gap since the last successful
	// post has not passed yet.
	ErrCooldownActive = errors.New("minimum gap since last post has not elapsed")

	// ErrVerificationFailed means the duplicate check itself failed.
	// Posting is refused (fail closed) rather than risking a duplicate.
	ErrVerificationFailed = errors.New("could not verify existing rows, refusing to post")
)

// Poster posts hourly metrics to the spreadsheet store.
type Poster interface {
	Post(ctx context.Context, metrics domain.HourlyMetrics) error
}

type Service struct {
	cfg     *config.Config
	stackby stackbyclient.Client
	postLog repository.MetricPostLogRepository

	mu         sync.Mutex
	lastPostAt time.Time
}

func NewService(cfg *config.Config, stackbyClient stackbyclient.Client, postLog repository.MetricPostLogRepository) *Service {
	return &Service{
		cfg:     cfg,
		stackby: stackbyClient,
		postLog: postLog,
	}
}

// Post writes one metrics row for the hour of metrics.Timestamp, unless
// the hour already has one or the cooldown is still active.
func (s *Service) Post(ctx context.Context, metrics domain.HourlyMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCooldown(); err != nil {
		return err
	}

	bucket := utils.HourBucket(metrics.Timestamp, s.cfg.Location)

	rows, err := s.stackby.ListRows(ctx)
	if err != nil {
		return errors.Wrap(ErrVerificationFailed, err.Error())
	}

	for _, row := range rows {
		if strings.HasPrefix(row.Fields.DateAndTime, bucket) {
			logrus.WithField("hour_bucket", bucket).Info("posting: row already exists for hour, skipping")
			return ErrDuplicateHour
		}
	}

	fields := stackbyclient.RowFields{
		DateAndTime: metrics.Timestamp.In(s.cfg.Location).Format(rowTimeLayout),
		Actual:      FormatRevenueValue(metrics.ActualRevenue),
		Achieved:    FormatRevenueValue(metrics.TotalRevenue),
	}

	logrus.Debugf("posting: row payload %s", utils.PrettyJson(fields))

	if _, err := s.stackby.CreateRow(ctx, fields); err != nil {
		return errors.Wrap(err, "creating metrics row")
	}

	now := time.Now()
	s.lastPostAt = now

	if err := s.postLog.RecordPost(&repository.MetricPost{
		PostedAt:        now,
		ActualFormatted: fields.Actual,
		TotalFormatted:  fields.Achieved,
	}); err != nil {
		logrus.WithError(err).Warn("posting: could not record post locally")
	}

	logrus.WithFields(logrus.Fields{
		"hour_bucket": bucket,
		"actual":      fields.Actual,
		"achieved":    fields.Achieved,
	}).Info("posting: metrics row created")

	return nil
}

// checkCooldown enforces the minimum gap since the last successful
// post, consulting the persisted log when the process restarted.
func (s *Service) checkCooldown() error {
	cooldown := time.Duration(s.cfg.MetricsSync.CooldownMinutes) * time.Minute
	if cooldown <= 0 {
		return nil
	}

	lastPostAt := s.lastPostAt
	if lastPostAt.IsZero() {
		if last, err := s.postLog.LastPost(); err != nil {
			logrus.WithError(err).Warn("posting: could not read post log, assuming no prior post")
		} else if last != nil {
			lastPostAt = last.PostedAt
			s.lastPostAt = lastPostAt
		}
	}

	if !lastPostAt.IsZero() && time.Since(lastPostAt) < cooldown {
		return ErrCooldownActive
	}

	return nil
}
