// Package cache is a small typed TTL cache with an in-memory and a Redis
// backend, plus a read-through helper that collapses concurrent misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache stores values of one type under string keys.
//
// A zero ttl passed to Set means the backend default; a negative ttl means
// no expiry.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Version returns the current generation of key, 0 if never bumped.
	Version(ctx context.Context, key string) (uint64, error)
	// Bump starts a new generation of key and drops the entry stored
	// under the old one.
	Bump(ctx context.Context, key string) error

	Close() error
}

type options struct {
	prefix          string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

type Option func(*options)

// WithDefaultTTL sets the expiry used for Set calls with a zero ttl. Default 1h.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) { o.defaultTTL = d }
}

// WithPrefix namespaces Redis keys as "prefix:key". Ignored by Memory.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithCleanupInterval sets how often Memory drops expired entries.
// Zero disables the janitor.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) { o.cleanupInterval = d }
}

func newOptions(opts []Option) options {
	o := options{defaultTTL: time.Hour, cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func expiry(ttl, def time.Duration) time.Duration {
	if ttl == 0 {
		return def
	}
	return ttl
}

// versioned is the storage key of one generation of key.
func versioned(key string, gen uint64) string {
	return key + "@" + strconv.FormatUint(gen, 10)
}

var group singleflight.Group

// flight scopes a singleflight key to one cache instance.
func flight[V any](c Cache[V], key string) string {
	return fmt.Sprintf("%T@%p/%s", c, c, key)
}

// GetOrSet returns the cached value for key or loads it with fn. Concurrent
// misses for the same key share one fn call. A failed load is not cached;
// a failed store is ignored and the loaded value is still returned.
//
// The value is stored under the generation read before fn ran, so a load
// that overlaps Invalidate never lands in the new generation.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, ttl time.Duration, fn func(context.Context) (V, error)) (V, error) {
	var zero V

	gen, err := c.Version(ctx, key)
	if err != nil {
		return zero, err
	}
	vkey := versioned(key, gen)
	if v, err := c.Get(ctx, vkey); err == nil {
		return v, nil
	}

	res, err, _ := group.Do(flight(c, vkey), func() (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, vkey, v, ttl)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(V), nil
}

// Refresh loads fn and stores the result as the current generation of key.
func Refresh[V any](ctx context.Context, c Cache[V], key string, ttl time.Duration, fn func(context.Context) (V, error)) error {
	gen, err := c.Version(ctx, key)
	if err != nil {
		return err
	}
	v, err := fn(ctx)
	if err != nil {
		return err
	}
	return c.Set(ctx, versioned(key, gen), v, ttl)
}

// Invalidate retires the cached value of key. Loads still running store
// into the retired generation, which nothing reads.
func Invalidate[V any](ctx context.Context, c Cache[V], key string) error {
	return c.Bump(ctx, key)
}

func encode[V any](v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func decode[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}
