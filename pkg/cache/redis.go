package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache storing JSON-encoded values. The client is owned by the
// caller; Close does not close it.
type Redis[V any] struct {
	client redis.UniversalClient
	opts   options
}

func NewRedis[V any](client redis.UniversalClient, opts ...Option) *Redis[V] {
	return &Redis[V]{client: client, opts: newOptions(opts)}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		var zero V
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return decode[V](data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	// Redis treats 0 as no expiry.
	return r.client.Set(ctx, r.key(key), data, max(expiry(ttl, r.opts.defaultTTL), 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis[V]) Version(ctx context.Context, key string) (uint64, error) {
	gen, err := r.client.Get(ctx, r.genKey(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Bump is atomic across processes sharing the Redis instance.
func (r *Redis[V]) Bump(ctx context.Context, key string) error {
	gen, err := r.client.Incr(ctx, r.genKey(key)).Uint64()
	if err != nil {
		return err
	}
	return r.client.Del(ctx, r.key(versioned(key, gen-1))).Err()
}

func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) genKey(k string) string { return r.key("gen:" + k) }

func (r *Redis[V]) key(k string) string {
	if r.opts.prefix == "" {
		return k
	}
	return r.opts.prefix + ":" + k
}

var _ Cache[any] = (*Redis[any])(nil)
