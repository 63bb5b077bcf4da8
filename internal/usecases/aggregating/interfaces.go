package aggregating

import (
	"context"
	"fmt"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/domain"
)

// ReportOptions controls one report request.
type ReportOptions struct {
	// ForceRefresh bypasses the cached report and runs a fresh
	// aggregation.
	ForceRefresh bool

	// AllowStale serves the previous report as a degraded response when
	// the fresh run fails at a top-level fetch. The typed error is still
	// returned alongside the stale data.
	AllowStale bool
}

// Reporter produces the dashboard's revenue/occupancy report.
type Reporter interface {
	DashboardReport(ctx context.Context, opts ReportOptions) (*domain.DashboardReport, error)
	LastReport() (*domain.DashboardReport, bool)
	CacheStatus() CacheStatus
}

// CacheStatus describes the freshness of the cached report, served by
// the health probe.
type CacheStatus struct {
	HasReport   bool      `json:"hasReport"`
	GeneratedAt time.Time `json:"generatedAt,omitempty"`
	AgeSeconds  float64   `json:"ageSeconds"`
	TTLMinutes  int       `json:"ttlMinutes"`
}

// UpstreamError is a fatal top-level fetch failure: the run could not
// produce a report from live data.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
