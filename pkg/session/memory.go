package session

import (
	"context"
	"maps"
	"sync"
	"time"
)

const defaultCleanupInterval = time.Minute

// MemoryStore keeps sessions in process memory. It is meant for tests and
// single-instance development setups.
type MemoryStore struct {
	byID    map[string]*Session
	byToken map[string]string
	done    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
}

type MemoryStoreOption func(*memoryConfig)

type memoryConfig struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired sessions are evicted.
// Zero disables eviction. Default one minute.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(c *memoryConfig) { c.cleanupInterval = d }
}

// NewMemoryStore returns an empty MemoryStore. Close stops its janitor.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	cfg := memoryConfig{cleanupInterval: defaultCleanupInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &MemoryStore{
		byID:    make(map[string]*Session),
		byToken: make(map[string]string),
		done:    make(chan struct{}),
	}
	if cfg.cleanupInterval > 0 {
		go m.janitor(cfg.cleanupInterval)
	}
	return m
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = clone(s)
	m.byToken[s.Token] = s.ID
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return clone(s), nil
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.byID[s.ID]; ok && prev.Token != s.Token {
		delete(m.byToken, prev.Token)
	}
	m.byID[s.ID] = clone(s)
	m.byToken[s.Token] = s.ID
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteLocked(id)
	return nil
}

func (m *MemoryStore) DeleteByUserID(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.byID {
		if s.UserID != nil && *s.UserID == userID {
			m.deleteLocked(id)
		}
	}
	return nil
}

func (m *MemoryStore) Touch(_ context.Context, id string, lastActiveAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	s.LastActiveAt = lastActiveAt
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// Close stops the janitor. Safe to call more than once.
func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

func (m *MemoryStore) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-t.C:
			m.mu.Lock()
			for id, s := range m.byID {
				if now.After(s.ExpiresAt) {
					m.deleteLocked(id)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *MemoryStore) deleteLocked(id string) {
	if s, ok := m.byID[id]; ok {
		delete(m.byToken, s.Token)
		delete(m.byID, id)
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Values = maps.Clone(s.Values)
	if s.UserID != nil {
		uid := *s.UserID
		c.UserID = &uid
	}
	c.dirty = false
	return &c
}
