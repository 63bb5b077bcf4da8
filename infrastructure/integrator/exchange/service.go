// Package exchange resolves the USD to local currency rate used to
// convert USD-channel payouts. The rate is cached for up to an hour and
// falls back to a fixed default when the upstream lookup fails, so a
// rate outage never blocks an aggregation run.
package exchange

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/cache"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/sirupsen/logrus"
)

const localCurrency = "PKR"

// RateSource returns the current USD→local rate. Implementations never
// fail; they degrade to a configured fallback.
type RateSource interface {
	USDToLocal(ctx context.Context) float64
}

type Service struct {
	cfg        *config.Config
	httpClient *http.Client
	rateCache  *cache.Cache
}

func New(cfg *config.Config, rateCache *cache.Cache) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		rateCache: rateCache,
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (s *Service) USDToLocal(ctx context.Context) float64 {
	cacheKey := cache.Key("exchange_rate", map[string]any{"base": "USD", "quote": localCurrency})
	maxAge := time.Duration(s.cfg.Cache.ExchangeTTLMinutes) * time.Minute

	var cached float64
	if s.rateCache.GetInto(cacheKey, maxAge, &cached) && cached > 0 {
		return cached
	}

	rate, err := s.fetchRate(ctx)
	if err != nil {
		logrus.WithError(err).Warnf("exchange: lookup failed, using fallback rate %.2f", s.cfg.Exchange.FallbackRate)
		return s.cfg.Exchange.FallbackRate
	}

	if err := s.rateCache.Set(cacheKey, rate); err != nil {
		logrus.WithError(err).Warn("exchange: could not cache rate")
	}

	return rate
}

func (s *Service) fetchRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Exchange.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &unexpectedStatusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var response ratesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, err
	}

	rate, ok := response.Rates[localCurrency]
	if !ok || rate <= 0 {
		return 0, &missingRateError{currency: localCurrency}
	}

	return rate, nil
}

type unexpectedStatusError struct {
	code int
}

func (e *unexpectedStatusError) Error() string {
	return "exchange API returned status " + http.StatusText(e.code)
}

type missingRateError struct {
	currency string
}

func (e *missingRateError) Error() string {
	return "exchange API response missing rate for " + e.currency
}
