package kvmock

import (
	"context"
	"sync"

	"loanchain-web/internal/domain/session"
)

var _ session.KV = (*Store)(nil)

// Store is an in-memory session.KV. The optional Fn fields override the map
// for error injection.
type Store struct {
	mu   sync.Mutex
	data map[string]map[string]string

	GetFn func(ctx context.Context, clientID, key string) (string, error)
	SetFn func(ctx context.Context, clientID, key, value string) error
}

func New() *Store { return &Store{data: map[string]map[string]string{}} }

func (s *Store) Get(ctx context.Context, clientID, key string) (string, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, clientID, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[clientID][key]
	if !ok {
		return "", session.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, clientID, key, value string) error {
	if s.SetFn != nil {
		return s.SetFn(ctx, clientID, key, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string]map[string]string{}
	}
	if s.data[clientID] == nil {
		s.data[clientID] = map[string]string{}
	}
	s.data[clientID][key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[clientID], key)
	return nil
}

// Peek returns the stored value without going through GetFn.
func (s *Store) Peek(clientID, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[clientID][key]
	return v, ok
}
