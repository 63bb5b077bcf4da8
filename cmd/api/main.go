package main

import (
	"context"
	"time"

	"github.com/hostfolio/property-dashboard-api/infrastructure/database/postgres"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/exchange"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/hostawayclient"
	"github.com/hostfolio/property-dashboard-api/infrastructure/integrator/stackby/stackbyclient"
	"github.com/hostfolio/property-dashboard-api/infrastructure/repository"
	"github.com/hostfolio/property-dashboard-api/internal/api"
	"github.com/hostfolio/property-dashboard-api/internal/cache"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/scheduler"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/aggregating"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/authenticating"
	"github.com/hostfolio/property-dashboard-api/internal/usecases/posting"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	postLogRepo := repository.NewMetricPostLogRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	hostawayClient := hostawayclient.NewClient(cfg)
	hostawayIntegrator := hostaway.New(cfg, hostawayClient)

	stackbyClient := stackbyclient.NewClient(cfg)

	dayCache := cache.New(newCacheStore(cfg.Cache.Dir))
	exchangeService := exchange.New(cfg, cache.New(newCacheStore(cfg.Cache.Dir)))

	reporter := aggregating.NewService(cfg, hostawayIntegrator, exchangeService, snapshotRepo, dayCache)
	poster := posting.NewService(cfg, stackbyClient, postLogRepo)

	metricsSyncService := scheduler.NewMetricsSyncService(reporter, poster, cfg)

	if err := metricsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start metrics sync scheduler")
	} else {
		logrus.Info("metrics sync scheduler started")
	}
	defer metricsSyncService.Stop()

	server, err := api.New(
		cfg,
		reporter,
		authenticator,
		metricsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// newCacheStore prefers a file-backed store so cached upstream data
// survives restarts. It falls back to memory when the directory is
// unavailable.
func newCacheStore(dir string) cache.Store {
	if dir == "" {
		return cache.NewMemoryStore()
	}

	store, err := cache.NewFileStore(dir)
	if err != nil {
		logrus.WithError(err).WithField("dir", dir).Warn("cache directory unavailable, using in-memory cache")
		return cache.NewMemoryStore()
	}

	return store
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
