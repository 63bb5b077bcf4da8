package hostawayclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientFor(serverURL string) Client {
	return NewClient(&config.Config{
		Hostaway: config.Hostaway{
			URL:         serverURL,
			AccessToken: "test-token",
			// Effectively unlimited so tests never wait on the limiter.
			RateLimitPerMinute:        0,
			FinanceRateLimitPerMinute: 0,
		},
		Location: time.UTC,
	})
}

func TestClient_ListListings_RetriesTransientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"status":"success","result":[{"id":145672,"name":"Studio 1"}]}`)
	}))
	defer server.Close()

	listings, err := clientFor(server.URL).ListListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, 145672, listings[0].ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ListListings_ClientErrorFailsFast(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"status":"fail","message":"invalid token"}`)
	}))
	defer server.Close()

	_, err := clientFor(server.URL).ListListings(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not be retried")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
}

func TestClient_ListListings_GivesUpAfterRetryBudget(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := clientFor(server.URL).ListListings(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(defaultMaxRetries+1), atomic.LoadInt32(&calls))
}

func TestClient_GetReservationFinance_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations/41000/financeField", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	finance, found, err := clientFor(server.URL).GetReservationFinance(context.Background(), 41000)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, finance)
}

func TestClient_GetCalendarDay_EmptyResultMeansAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-06-10", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-06-10", r.URL.Query().Get("endDate"))
		fmt.Fprint(w, `{"status":"success","result":[]}`)
	}))
	defer server.Close()

	day, err := clientFor(server.URL).GetCalendarDay(context.Background(), 145672, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, "available", day.Status)
	assert.Equal(t, "2024-06-10", day.Date)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-3"))
	assert.Equal(t, 7*time.Second, parseRetryAfter("7"))
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, backoffDelay(1))
	assert.Equal(t, 1*time.Second, backoffDelay(2))
	assert.Equal(t, 2*time.Second, backoffDelay(3))
	// Capped at the maximum.
	assert.Equal(t, 8*time.Second, backoffDelay(10))
}
