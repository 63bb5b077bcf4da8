package hostawayclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/config"
	hostawaydomain "github.com/hostfolio/property-dashboard-api/infrastructure/integrator/hostaway/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultMaxRetries = 3
	baseRetryDelay    = 500 * time.Millisecond
	maxRetryDelay     = 8 * time.Second
)

type Client interface {
	ListListings(ctx context.Context) ([]hostawaydomain.Listing, error)
	ListReservations(ctx context.Context) ([]hostawaydomain.Reservation, error)
	GetReservation(ctx context.Context, reservationID int) (*hostawaydomain.Reservation, error)
	GetCalendarDay(ctx context.Context, listingID int, date string) (*hostawaydomain.CalendarDay, error)
	GetReservationFinance(ctx context.Context, reservationID int) (*hostawaydomain.Finance, bool, error)
}

// StatusError is a non-retryable upstream response (4xx other than 429).
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hostaway returned status %d: %s", e.Code, e.Body)
}

// HostawayClient wraps the property platform's REST API with pooled
// keep-alive connections, bounded retries with exponential backoff and
// two rolling rate budgets: a general one and a stricter one for the
// finance endpoint.
type HostawayClient struct {
	cfg            *config.Config
	httpClient     *http.Client
	limiter        *rate.Limiter
	financeLimiter *rate.Limiter
}

func NewClient(cfg *config.Config) Client {
	return &HostawayClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter:        perMinuteLimiter(cfg.Hostaway.RateLimitPerMinute),
		financeLimiter: perMinuteLimiter(cfg.Hostaway.FinanceRateLimitPerMinute),
	}
}

func perMinuteLimiter(callsPerMinute int) *rate.Limiter {
	if callsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(callsPerMinute)), callsPerMinute)
}

// do performs one rate-limited GET against the platform, retrying
// transient failures. 4xx responses (except 429) fail fast; network
// errors and 5xx retry with exponential backoff; 429 honors Retry-After
// when present.
func (c *HostawayClient) do(ctx context.Context, limiter *rate.Limiter, endpoint string, query url.Values, maxRetries int) ([]byte, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "waiting for rate limit slot")
	}

	requestURL := c.cfg.Hostaway.URL + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error
	var nextDelay time.Duration
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := sleepContext(ctx, nextDelay); err != nil {
			return nil, err
		}

		body, retryAfter, err := c.doOnce(ctx, requestURL)
		if err == nil {
			return body, nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code < 500 && statusErr.Code != http.StatusTooManyRequests {
			// Client errors are not retried.
			return nil, err
		}

		lastErr = err

		// A 429 with Retry-After overrides the backoff schedule.
		nextDelay = backoffDelay(attempt + 1)
		if retryAfter > 0 {
			nextDelay = retryAfter
		}
	}

	return nil, errors.Wrapf(lastErr, "hostaway call failed after %d attempts", maxRetries+1)
}

// doOnce issues a single request and reports the outcome. The returned
// duration is the Retry-After hint for 429 responses, zero otherwise.
func (c *HostawayClient) doOnce(ctx context.Context, requestURL string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Hostaway.AccessToken)
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url":         req.URL.Path,
			"duration_ms": duration.Milliseconds(),
			"error":       err.Error(),
		}).Warn("hostaway: request failed")
		return nil, 0, err
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"url":         req.URL.Path,
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}).Debug("hostaway: request finished")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, 0, nil
	}

	statusErr := &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), statusErr
	}

	if resp.StatusCode >= 500 {
		return nil, 0, errors.Wrap(statusErr, "transient upstream error")
	}

	return nil, 0, statusErr
}

func backoffDelay(attempt int) time.Duration {
	delay := baseRetryDelay << (attempt - 1)
	if delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
