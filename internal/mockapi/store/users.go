package store

import (
	"sync"

	mkerrors "github.com/flogin/prodadmin/internal/mockapi/errors"
)

// UserStore keeps the seeded accounts, keyed by username.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]User
	nextID int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]User),
		nextID: 1,
	}
}

// Seed adds a user with the next id and returns it.
func (s *UserStore) Seed(username, fullName string, passwordHash []byte) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{ID: s.nextID, Username: username, FullName: fullName, PasswordHash: passwordHash}
	s.nextID++
	s.users[username] = u
	return u
}

// FindByUsername retrieves a user by username.
// Returns ErrUserNotFound if no such user exists.
func (s *UserStore) FindByUsername(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, mkerrors.ErrUserNotFound
	}
	return &u, nil
}
