package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/flogin/prodadmin/internal/client/api"
)

// ErrLoginInFlight is returned by LogIn while a previous attempt has not
// finished. Concurrent attempts are rejected rather than raced.
var ErrLoginInFlight = errors.New("login already in progress")

// Store is the process-wide session state container. It is constructed
// once at startup and injected by reference into everything that needs to
// know whether, and as whom, the user is logged in.
//
// "Not yet initialized" is distinct from "initialized with no token": the
// UI must not treat a session as logged out before Init has had a chance
// to restore a persisted token.
type Store struct {
	mu        sync.Mutex
	client    api.Client
	creds     CredentialStore
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
	token     string
	initDone  bool
	loggingIn bool
}

// NewStore creates a session store. ttl bounds how long a freshly issued
// token is kept in the credential store.
func NewStore(client api.Client, creds CredentialStore, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		creds:  creds,
		ttl:    ttl,
		logger: logger.With("component", "session"),
		now:    time.Now,
	}
}

// Init restores a previously persisted token, discarding it when expired.
// It is idempotent: every call after the first returns immediately, so it
// is safe to run on every UI mount. The store counts as initialized even
// when restoration fails; the error is reported for logging only.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initDone {
		return nil
	}
	s.initDone = true

	stored, err := s.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if stored == nil {
		return nil
	}
	if stored.Expired(s.now()) {
		s.logger.InfoContext(ctx, "Discarding expired session token")
		if err := s.creds.Clear(ctx); err != nil {
			return fmt.Errorf("failed to discard expired token: %w", err)
		}
		return nil
	}
	s.token = stored.Token
	s.logger.InfoContext(ctx, "Session restored from credential store")
	return nil
}

// LogIn authenticates against the backend. On success the token is
// persisted durably and kept in memory; on failure the session is left
// exactly as it was. A second call while one is in flight fails with
// ErrLoginInFlight.
func (s *Store) LogIn(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.loggingIn {
		s.mu.Unlock()
		return ErrLoginInFlight
	}
	s.loggingIn = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loggingIn = false
		s.mu.Unlock()
	}()

	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	expiresAt := s.now().Add(s.ttl)
	if err := s.creds.Save(ctx, Credentials{Token: token, ExpiresAt: expiresAt}); err != nil {
		// The backend accepted the credentials; losing durability is not a
		// reason to throw the session away.
		s.logger.WarnContext(ctx, "Token obtained but not persisted", "error", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "Logged in", "username", username)
	return nil
}

// LogOut clears the in-memory session and removes the durable token. It
// never fails the caller: a logout with no token is a no-op, and a
// credential-store hiccup is only logged.
func (s *Store) LogOut(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to clear persisted token", "error", err)
	}
	s.logger.InfoContext(ctx, "Logged out")
}

// Profile fetches the authenticated user's profile from the backend.
func (s *Store) Profile(ctx context.Context) (*api.Profile, error) {
	profile, err := s.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// Token returns the current session token, or "" while logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Initialized reports whether Init has run.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initDone
}

// LoggedIn reports whether a session token is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}
