package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// MockCacheStore implements domain.CacheStore for testing. Every operation can
// be overridden with a func field; the defaults run against an in-memory map
// so service tests get working round-trips without a Redis server.
type MockCacheStore struct {
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	GetFunc    func(ctx context.Context, key string) (string, error)
	DelFunc    func(ctx context.Context, keys ...string) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, ttl time.Duration) error
	TTLFunc    func(ctx context.Context, key string) (time.Duration, error)

	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

// NewMockCacheStore creates a new MockCacheStore backed by an empty map
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *MockCacheStore) expired(key string) bool {
	exp, ok := m.expires[key]
	return ok && time.Now().After(exp)
}

// Set stores a value with a TTL
func (m *MockCacheStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	if ttl > 0 {
		m.expires[key] = time.Now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}

// Get retrieves a value, returning ErrCacheMiss for absent or expired keys
func (m *MockCacheStore) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok || m.expired(key) {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

// Del removes keys
func (m *MockCacheStore) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
		delete(m.expires, k)
	}
	return nil
}

// Incr increments a counter key
func (m *MockCacheStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expired(key) {
		delete(m.values, key)
		delete(m.expires, key)
	}
	var n int64
	if v, ok := m.values[key]; ok {
		n, _ = strconv.ParseInt(v, 10, 64)
	}
	n++
	m.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// Expire sets a TTL on an existing key
func (m *MockCacheStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		m.expires[key] = time.Now().Add(ttl)
	}
	return nil
}

// TTL reports the remaining lifetime of a key
func (m *MockCacheStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	if m.TTLFunc != nil {
		return m.TTLFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok || m.expired(key) {
		return -2 * time.Nanosecond, nil
	}
	exp, ok := m.expires[key]
	if !ok {
		return -1 * time.Nanosecond, nil
	}
	return time.Until(exp), nil
}

// Has reports whether a live value is stored under key
func (m *MockCacheStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok && !m.expired(key)
}

// Compile-time interface compliance verification
var _ domain.CacheStore = (*MockCacheStore)(nil)
