package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// opTimeout bounds every individual cache operation so a slow side store
// can never hang a request.
const opTimeout = 2 * time.Second

// Aside is a read-through-cache-with-invalidation primitive. Values are
// serialized as JSON with a fixed TTL. Cache failures are absorbed and
// logged, never surfaced: a failed read behaves as a miss, a failed
// invalidation is a logged no-op bounded by the TTL backstop.
type Aside struct {
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
	sf    singleflight.Group
}

// NewAside constructs an Aside over the given cache. A non-positive ttl
// defaults to 300 seconds.
func NewAside(c Cache, ttl time.Duration, log *zap.Logger) *Aside {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &Aside{cache: c, ttl: ttl, log: log}
}

// ReadThrough returns the cached value for key, or calls load on a miss and
// populates the cache with the result. Concurrent in-process misses for the
// same key are coalesced into a single load; duplicate loads across
// processes remain possible and harmless (last writer wins, both return
// correct data).
func ReadThrough[T any](ctx context.Context, a *Aside, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	raw, err := a.cache.Get(opCtx, key)
	cancel()
	switch {
	case err == nil:
		var out T
		if jerr := json.Unmarshal([]byte(raw), &out); jerr == nil {
			return out, nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		a.invalidateOne(ctx, key)
	case !errors.Is(err, ErrMiss):
		a.log.Warn("cache read failed, falling through to loader",
			zap.String("key", key), zap.Error(err))
	}

	res, err, _ := a.sf.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if b, jerr := json.Marshal(v); jerr == nil {
			setCtx, cancel := context.WithTimeout(ctx, opTimeout)
			defer cancel()
			if serr := a.cache.Set(setCtx, key, string(b), a.ttl); serr != nil {
				a.log.Warn("cache populate failed",
					zap.String("key", key), zap.Error(serr))
			}
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(T), nil
}

// Invalidate unconditionally deletes the given keys. It is idempotent and
// never fails the host operation; every state-mutating operation on a
// cached entity must call it after the store write commits, never before.
func (a *Aside) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		a.invalidateOne(ctx, key)
	}
}

func (a *Aside) invalidateOne(ctx context.Context, key string) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := a.cache.Del(opCtx, key); err != nil {
		a.log.Warn("cache invalidation failed, relying on TTL expiry",
			zap.String("key", key), zap.Error(err))
	}
}
