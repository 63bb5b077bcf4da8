package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating"
	"github.com/hostfolio/property-dashboard-api/pkg/apiErrors"
	"github.com/hostfolio/property-dashboard-api/pkg/log"
)

// DashboardResponse is the envelope for dashboard endpoints. When a
// refresh fails but a previous report exists, the stale report is
// served with Success=false and the upstream error attached.
type DashboardResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Stale   bool   `json:"stale,omitempty"`
	Error   string `json:"error,omitempty"`
}

func GetDashboardMetrics(service aggregating.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		opts := aggregating.ReportOptions{
			ForceRefresh: r.URL.Query().Get("refresh") == "true",
			AllowStale:   true,
		}

		report, err := service.DashboardReport(r.Context(), opts)
		writeReport(w, logger, report, err, func(rep *domain.DashboardReport) any {
			return rep
		})
	})
}

func GetDashboardSummary(service aggregating.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, err := service.DashboardReport(r.Context(), aggregating.ReportOptions{AllowStale: true})
		writeReport(w, logger, report, err, func(rep *domain.DashboardReport) any {
			return rep.Summary()
		})
	})
}

func GetOccupancy(service aggregating.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, err := service.DashboardReport(r.Context(), aggregating.ReportOptions{AllowStale: true})
		writeReport(w, logger, report, err, func(rep *domain.DashboardReport) any {
			return rep.Occupancy()
		})
	})
}

// RefreshDashboard forces a fresh aggregation run, bypassing the cache.
// Unlike the read endpoints it does not fall back to stale data.
func RefreshDashboard(service aggregating.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dashboard: manual refresh requested")

		report, err := service.DashboardReport(r.Context(), aggregating.ReportOptions{ForceRefresh: true})
		if err != nil {
			logger.WithError(err).Error("dashboard: manual refresh failed")
			apiErrors.WriteError(w, apiErrors.ErrUpstreamUnavailable, "Dashboard refresh failed", map[string]any{
				"reason": err.Error(),
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(DashboardResponse{Success: true, Data: report}); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
		}
	})
}

// GetServiceStatus reports cache freshness and the last generated
// report's timestamp.
func GetServiceStatus(service aggregating.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := map[string]any{
			"time":  time.Now().Format(time.RFC3339),
			"cache": service.CacheStatus(),
		}
		if report, ok := service.LastReport(); ok {
			status["lastReportGeneratedAt"] = report.GeneratedAt
			status["lastReportDate"] = report.Date
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.WithError(err).Error("status: failed to encode response")
		}
	})
}

// writeReport encodes a report projection, downgrading to a stale
// response when the refresh failed but old data is available.
func writeReport(w http.ResponseWriter, logger log.Logger, report *domain.DashboardReport, err error, project func(*domain.DashboardReport) any) {
	if err != nil && report == nil {
		logger.WithError(err).Error("dashboard: report unavailable")
		apiErrors.WriteError(w, apiErrors.ErrUpstreamUnavailable, "Dashboard data unavailable", map[string]any{
			"reason": err.Error(),
		})
		return
	}

	response := DashboardResponse{
		Success: err == nil,
		Data:    project(report),
	}
	if err != nil {
		logger.WithError(err).Warn("dashboard: serving stale report after refresh failure")
		response.Stale = true
		response.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if encErr := json.NewEncoder(w).Encode(response); encErr != nil {
		logger.WithError(encErr).Error("dashboard: failed to encode response")
	}
}
