package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrNoCredentials reports an empty credential store (nobody logged in).
var ErrNoCredentials = errors.New("no stored credentials")

// CredentialStore persists the single current-user record so a session can be
// restored after a restart. Opaque key-value semantics; one record at most.
type CredentialStore interface {
	Get(ctx context.Context) (*User, error)
	Put(ctx context.Context, u User) error
	Clear(ctx context.Context) error
}

// MemoryCredentialStore holds the record in memory.
type MemoryCredentialStore struct {
	mu sync.Mutex
	u  *User
}

func NewMemoryCredentialStore() *MemoryCredentialStore { return &MemoryCredentialStore{} }

func (s *MemoryCredentialStore) Get(ctx context.Context) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.u == nil {
		return nil, ErrNoCredentials
	}
	cp := *s.u
	return &cp, nil
}

func (s *MemoryCredentialStore) Put(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u = &u
	return nil
}

func (s *MemoryCredentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u = nil
	return nil
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)
