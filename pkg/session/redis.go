package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore persists sessions in Redis. Every key carries the session's
// remaining lifetime as TTL, so expired sessions disappear on their own.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the "session:" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) dataKey(id string) string     { return s.prefix + "data:" + id }
func (s *RedisStore) tokenKey(token string) string { return s.prefix + "token:" + token }
func (s *RedisStore) userKey(userID string) string { return s.prefix + "user:" + userID }

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess, "")
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	id, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Token != token {
		return nil, ErrInvalidToken
	}
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	return sess, nil
}

func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	prev, err := s.load(ctx, sess.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	staleToken := ""
	if prev != nil && prev.Token != sess.Token {
		staleToken = prev.Token
	}
	return s.write(ctx, sess, staleToken)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	sess, err := s.load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.dataKey(id), s.tokenKey(sess.Token))
		if sess.UserID != nil {
			p.SRem(ctx, s.userKey(*sess.UserID), id)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) DeleteByUserID(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return err
		}
	}
	if err := s.client.Del(ctx, s.userKey(userID)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) Touch(ctx context.Context, id string, lastActiveAt time.Time) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	sess.LastActiveAt = lastActiveAt
	return s.write(ctx, sess, "")
}

func (s *RedisStore) load(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.dataKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return &sess, nil
}

func (s *RedisStore) write(ctx context.Context, sess *Session, staleToken string) error {
	ttl := sess.TTL()
	if ttl <= 0 {
		return ErrExpired
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", sess.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.dataKey(sess.ID), raw, ttl)
		p.Set(ctx, s.tokenKey(sess.Token), sess.ID, ttl)
		if staleToken != "" {
			p.Del(ctx, s.tokenKey(staleToken))
		}
		if sess.UserID != nil {
			p.SAdd(ctx, s.userKey(*sess.UserID), sess.ID)
			p.Expire(ctx, s.userKey(*sess.UserID), ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
