// Package cache provides the key-value side store used for per-user derived
// views, plus a generic read-through/invalidate-on-write helper. The cache
// is never authoritative: on any ambiguity the system of record wins, and a
// fixed TTL bounds staleness from missed invalidations.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the side-store contract: get, set-with-ttl, delete.
type Cache interface {
	// Get returns the value for key, or ErrMiss if absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Del removes key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error
}

// Redis implements Cache over a go-redis client.
type Redis struct{ client *redis.Client }

// NewRedis wraps an existing redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get returns the value for key, mapping redis.Nil to ErrMiss.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	res, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return res, err
}

// Set stores value under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Del removes key.
func (r *Redis) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Memory is a simple in-memory TTL cache used in tests and as a local
// fallback when redis is not configured.
type Memory struct {
	mu    sync.Mutex
	items map[string]memItem
}

type memItem struct {
	value     string
	expiresAt time.Time
}

// NewMemory constructs an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{items: map[string]memItem{}}
}

// Get returns the value for key, or ErrMiss if absent or expired.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked()
	item, ok := m.items[key]
	if !ok {
		return "", ErrMiss
	}
	return item.value, nil
}

// Set stores value under key with the given TTL.
func (m *Memory) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked()
	m.items[key] = memItem{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Del removes key.
func (m *Memory) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) cleanupLocked() {
	now := time.Now()
	for k, v := range m.items {
		if now.After(v.expiresAt) {
			delete(m.items, k)
		}
	}
}

// New tries redis, falls back to memory when the client is nil or
// unreachable. Cache is an optimization, so startup never fails on it.
func New(ctx context.Context, client *redis.Client) Cache {
	if client != nil {
		if err := client.Ping(ctx).Err(); err == nil {
			return NewRedis(client)
		}
	}
	return NewMemory()
}
