package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/api/handler"
	"github.com/hostfolio/property-dashboard-api/internal/api/handler/router"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/scheduler"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/authenticating"
	"github.com/hostfolio/property-dashboard-api/pkg/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	reporter aggregating.Reporter,
	authenticator authenticating.Authenticator,
	metricsSyncService *scheduler.MetricsSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		MetricsSyncService: metricsSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(reporter)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Dashboard(reporter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error while running server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("HTTP server shut down")
	return nil
}
