package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGetInto(t *testing.T) {
	c := New(NewMemoryStore())

	type payload struct {
		Rate float64 `json:"rate"`
	}

	require.NoError(t, c.Set("rate", payload{Rate: 280.5}))

	var got payload
	assert.True(t, c.GetInto("rate", time.Minute, &got))
	assert.Equal(t, 280.5, got.Rate)
}

func TestCache_StaleEntryIsEvicted(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)

	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set("key", "value"))

	// Move the clock past the TTL.
	c.now = func() time.Time { return now.Add(11 * time.Minute) }

	_, ok := c.Get("key", 10*time.Minute)
	assert.False(t, ok)

	// The stale entry was deleted on read, so even a generous max age
	// misses now.
	_, ok = c.Get("key", 24*time.Hour)
	assert.False(t, ok)
}

func TestCache_MissingKey(t *testing.T) {
	c := New(NewMemoryStore())

	var out string
	assert.False(t, c.GetInto("absent", time.Minute, &out))
}

func TestKey_DeterministicAcrossParamOrder(t *testing.T) {
	a := Key("calendar_day", map[string]any{"listing_id": 145672, "date": "2024-06-10"})
	b := Key("calendar_day", map[string]any{"date": "2024-06-10", "listing_id": 145672})
	assert.Equal(t, a, b)

	c := Key("calendar_day", map[string]any{"date": "2024-06-11", "listing_id": 145672})
	assert.NotEqual(t, a, c)

	d := Key("exchange_rate", map[string]any{"date": "2024-06-10", "listing_id": 145672})
	assert.NotEqual(t, a, d)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	c := New(store)
	require.NoError(t, c.Set(Key("test", map[string]any{"id": 1}), map[string]int{"n": 7}))

	// A second store over the same directory sees the entry.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	var got map[string]int
	assert.True(t, New(reopened).GetInto(Key("test", map[string]any{"id": 1}), time.Minute, &got))
	assert.Equal(t, 7, got["n"])
}
