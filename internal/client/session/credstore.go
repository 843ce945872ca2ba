// Package session owns the client's authentication state: the in-memory
// session token and its durable copy in the credential store.
package session

import (
	"context"
	"sync"
	"time"
)

// Credentials is the durable form of a session: the opaque token plus the
// instant it stops being trustworthy.
type Credentials struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the credentials are past their expiry at the
// given instant.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// CredentialStore persists a single set of credentials across restarts.
// Load returns (nil, nil) when nothing is stored; Clear on an empty store
// is a no-op.
type CredentialStore interface {
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

// MemoryCredentialStore keeps credentials in process memory. It backs
// tests and the non-durable storage variant.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	creds *Credentials
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Load(_ context.Context) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryCredentialStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}

func (s *MemoryCredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
