// Package cache is a small TTL key/value cache for expensive upstream
// lookups (exchange rate, per-listing calendar days). It is best-effort:
// losing every entry just means a cold start, never wrong data.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is one stored payload with its write timestamp. An entry older
// than the caller's max age is treated as absent and evicted lazily.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	WrittenAt time.Time       `json:"written_at"`
}

// Store persists entries. Last write wins; no other guarantees.
type Store interface {
	Read(key string) (*Entry, bool)
	Write(key string, entry *Entry) error
	Delete(key string)
}

// Cache wraps a Store with TTL semantics.
type Cache struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
	}
}

// Get returns the stored payload when its age is within maxAge. A stale
// entry is deleted as a side effect and reported as a miss.
func (c *Cache) Get(key string, maxAge time.Duration) (json.RawMessage, bool) {
	entry, ok := c.store.Read(key)
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.WrittenAt) > maxAge {
		c.store.Delete(key)
		return nil, false
	}

	return entry.Payload, true
}

// GetInto unmarshals a fresh cached payload into out.
func (c *Cache) GetInto(key string, maxAge time.Duration, out any) bool {
	payload, ok := c.Get(key, maxAge)
	if !ok {
		return false
	}

	if err := json.Unmarshal(payload, out); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("cache: discarding undecodable entry")
		c.store.Delete(key)
		return false
	}

	return true
}

// Set overwrites any existing entry for key.
func (c *Cache) Set(key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return c.store.Write(key, &Entry{
		Payload:   raw,
		WrittenAt: c.now(),
	})
}

// Key builds a deterministic key from a logical name and a parameter
// map. Structurally identical requests collide; distinct ones do not.
func Key(name string, params map[string]any) string {
	h := sha256.New()
	h.Write([]byte(name))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(h, "|%s=%v", k, params[k])
	}

	return hex.EncodeToString(h.Sum(nil))
}
