package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// MemoryStore keeps entries in a process-local map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
	}
}

func (s *MemoryStore) Read(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

func (s *MemoryStore) Write(key string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// FileStore keeps one JSON file per entry under a directory, so cached
// lookups survive restarts. Keys are already hex digests, safe as file
// names.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Read(key string) (*Entry, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	entry := &Entry{}
	if err := json.Unmarshal(raw, entry); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("cache: removing corrupt file entry")
		s.Delete(key)
		return nil, false
	}

	return entry, true
}

func (s *FileStore) Write(key string, entry *Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(key), raw, 0o644)
}

func (s *FileStore) Delete(key string) {
	_ = os.Remove(s.path(key))
}
