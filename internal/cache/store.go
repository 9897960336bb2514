package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kanithisathvik/aspectrank/internal/clients"
)

// Store is the narrow durable key-value surface the result cache
// needs. Valkey backs it in the default deployment, DynamoDB in the
// AWS one, and MemoryStore covers tests and offline runs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ValkeyStore adapts the shared Valkey client to the Store interface.
type ValkeyStore struct {
	client *clients.ValkeyClient
}

func NewValkeyStore(client *clients.ValkeyClient) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.client.GetValue(ctx, key)
}

func (s *ValkeyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.SetValue(ctx, key, value, ttl)
}

func (s *ValkeyStore) Delete(ctx context.Context, key string) error {
	return s.client.DeleteValue(ctx, key)
}

// MemoryStore is a process-local Store. Entries do not survive a
// restart; it exists for tests and for runs without a cache server.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
