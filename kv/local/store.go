package local

import (
	"context"
	"sync"

	"github.com/kasuganosora/memorybox/kv"
)

// Config holds LocalStore settings.
type Config struct {
	// QuotaBytes caps the summed length of all keys and values. Zero means
	// unlimited.
	QuotaBytes int64
}

// LocalStore is an in-process kv.Store. Contents are lost on exit.
type LocalStore struct {
	mu    sync.RWMutex
	data  map[string]string
	used  int64
	quota int64
}

// NewStore creates an empty LocalStore.
func NewStore(cfg Config) *LocalStore {
	return &LocalStore{
		data:  make(map[string]string),
		quota: cfg.QuotaBytes,
	}
}

func slotSize(key, value string) int64 {
	return int64(len(key) + len(value))
}

func (s *LocalStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (s *LocalStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.used + slotSize(key, value)
	if old, ok := s.data[key]; ok {
		next -= slotSize(key, old)
	}
	if s.quota > 0 && next > s.quota {
		return kv.ErrQuotaExceeded
	}
	s.data[key] = value
	s.used = next
	return nil
}

func (s *LocalStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if old, ok := s.data[k]; ok {
			s.used -= slotSize(k, old)
			delete(s.data, k)
		}
	}
	return nil
}

func (s *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

// Used returns the number of bytes currently counted against the quota.
func (s *LocalStore) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
