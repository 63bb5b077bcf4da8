package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Hostaway    Hostaway    `mapstructure:",squash"`
	Stackby     Stackby     `mapstructure:",squash"`
	Exchange    Exchange    `mapstructure:",squash"`
	Cache       Cache       `mapstructure:",squash"`
	MetricsSync MetricsSync `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`

	// Location is resolved from App.TimeZone at startup; falls back to a
	// fixed UTC+5 offset when the IANA name cannot be loaded.
	Location *time.Location `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	TimeZone string `mapstructure:"time_zone"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Hostaway struct {
	URL         string `mapstructure:"hostaway_url"`
	AccessToken string `mapstructure:"hostaway_access_token"`

	// Calls per rolling minute. The finance endpoint carries its own,
	// stricter budget.
	RateLimitPerMinute        int `mapstructure:"hostaway_rate_limit_per_minute"`
	FinanceRateLimitPerMinute int `mapstructure:"hostaway_finance_rate_limit_per_minute"`

	// AllowedListingIDs restricts aggregation to the listed units when
	// non-empty. Comma-separated in the environment.
	AllowedListingIDs    []int  `mapstructure:"-"`
	AllowedListingIDsRaw string `mapstructure:"hostaway_allowed_listing_ids"`
}

type Stackby struct {
	URL     string `mapstructure:"stackby_url"`
	APIKey  string `mapstructure:"stackby_api_key"`
	TableID string `mapstructure:"stackby_table_id"`
}

type Exchange struct {
	URL          string  `mapstructure:"exchange_url"`
	FallbackRate float64 `mapstructure:"exchange_fallback_rate"`
}

type Cache struct {
	Dir                string `mapstructure:"cache_dir"`
	RevenueTTLMinutes  int    `mapstructure:"cache_revenue_ttl_minutes"`
	CalendarTTLMinutes int    `mapstructure:"cache_calendar_ttl_minutes"`
	ExchangeTTLMinutes int    `mapstructure:"cache_exchange_ttl_minutes"`
	ListingsTTLMinutes int    `mapstructure:"cache_listings_ttl_minutes"`
}

type MetricsSync struct {
	CronSchedule    string `mapstructure:"metrics_sync_cron"`
	Enabled         bool   `mapstructure:"metrics_sync_enabled"`
	CooldownMinutes int    `mapstructure:"metrics_sync_cooldown_minutes"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("HOSTAWAY_URL", "https://api.hostaway.com/v1")
	viper.SetDefault("HOSTAWAY_ACCESS_TOKEN", "")
	viper.SetDefault("HOSTAWAY_RATE_LIMIT_PER_MINUTE", 90)
	viper.SetDefault("HOSTAWAY_FINANCE_RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("HOSTAWAY_ALLOWED_LISTING_IDS", "")

	viper.SetDefault("STACKBY_URL", "https://stackby.com/api/betav1")
	viper.SetDefault("STACKBY_API_KEY", "")
	viper.SetDefault("STACKBY_TABLE_ID", "")

	viper.SetDefault("EXCHANGE_URL", "https://open.er-api.com/v6/latest/USD")
	viper.SetDefault("EXCHANGE_FALLBACK_RATE", 280.0)

	viper.SetDefault("CACHE_DIR", ".cache")
	viper.SetDefault("CACHE_REVENUE_TTL_MINUTES", 5)
	viper.SetDefault("CACHE_CALENDAR_TTL_MINUTES", 10)
	viper.SetDefault("CACHE_EXCHANGE_TTL_MINUTES", 60)
	viper.SetDefault("CACHE_LISTINGS_TTL_MINUTES", 60)

	// Once per hour at minute 0, in the configured timezone.
	viper.SetDefault("METRICS_SYNC_CRON", "0 * * * *")
	viper.SetDefault("METRICS_SYNC_ENABLED", false)
	viper.SetDefault("METRICS_SYNC_COOLDOWN_MINUTES", 60)

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("TIME_ZONE", "Asia/Karachi")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	config.Hostaway.AllowedListingIDs, err = parseListingIDs(config.Hostaway.AllowedListingIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid HOSTAWAY_ALLOWED_LISTING_IDS: %w", err)
	}

	config.Location = resolveLocation(config.App.TimeZone)

	return config, nil
}

// resolveLocation loads the configured IANA timezone, defaulting to the
// fixed UTC+5 offset the dashboard has always been aligned to.
func resolveLocation(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		logrus.Warnf("could not load timezone %q, using fixed UTC+5", name)
	}
	return time.FixedZone("PKT", 5*60*60)
}

func parseListingIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadEnvFile loads the .env file via godotenv, trying the usual local
// development locations.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve current directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from: ", location)
			return
		}
	}

	logrus.Warn("no .env file found, relying on process environment")
}
