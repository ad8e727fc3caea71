// Package memory is an in-process cart.Storage for tests and development.
package memory

import (
	"context"
	"sync"

	"github.com/ziplofy/storeconfig/pkg/auth"
)

// Storage keeps values in a map. When the context carries a visitor, keys
// are scoped to it the way the Redis adapter scopes them.
type Storage struct {
	mu   sync.Mutex
	data map[string][]byte
	Err  error // when set, every call fails with it
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	v, ok := s.data[scoped(ctx, key)]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (s *Storage) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.data[scoped(ctx, key)] = append([]byte{}, data...)
	return nil
}

// Raw returns the stored bytes of key for the visitor in ctx.
func (s *Storage) Raw(ctx context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[scoped(ctx, key)]
	return v, ok
}

func scoped(ctx context.Context, key string) string {
	if visitor, err := auth.VisitorIDFromCtx(ctx); err == nil {
		return visitor + ":" + key
	}
	return key
}
