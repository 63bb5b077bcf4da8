package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating"
	"github.com/sirupsen/logrus"
)

// HealthcheckHandler reports liveness plus the freshness of the cached
// dashboard report.
func HealthcheckHandler(reporter aggregating.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
			"cache":  reporter.CacheStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
