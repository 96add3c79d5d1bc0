package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Memory is a Storage kept in a map. Used in tests.
type Memory struct {
	objects map[string][]byte
	types   map[string]string
	mu      sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (*Object, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, classify(err, ErrUploadFailed)
	}

	m.mu.Lock()
	m.objects[key] = buf.Bytes()
	m.types[key] = contentType
	m.mu.Unlock()

	return &Object{Key: key, ContentType: contentType, Size: int64(buf.Len()), URL: m.URL(key)}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func (m *Memory) URL(key string) string { return "/uploads/" + key }

// Has reports whether key is stored.
func (m *Memory) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

var _ Storage = (*Memory)(nil)
