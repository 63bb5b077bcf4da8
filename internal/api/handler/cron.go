package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/hostfolio/property-dashboard-api/internal/scheduler"
	"github.com/hostfolio/property-dashboard-api/pkg/apiErrors"
	"github.com/hostfolio/property-dashboard-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Cron job types accepted by the manual trigger endpoint.
const (
	CronJobTypeMetrics = "metrics"
	CronJobTypeAll     = "all"
)

// CronJobServices holds the schedulers exposed through the cron endpoints.
type CronJobServices struct {
	MetricsSyncService *scheduler.MetricsSyncService
}

// RunCronJob triggers a cron job outside its schedule.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID == domain.RoleViewer {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Viewers may not run cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cron job type not specified", nil)
			return
		}

		switch cronType {
		case CronJobTypeMetrics, CronJobTypeAll:
			if services.MetricsSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Metrics sync service not available", nil)
				return
			}
			services.MetricsSyncService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid cron job type. Accepted values: metrics, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job started",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus reports the current state of the cron jobs.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID == domain.RoleViewer {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Viewers may not inspect cron jobs", nil)
			return
		}

		status := map[string]any{
			"metrics": services.MetricsSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
