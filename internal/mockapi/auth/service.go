package auth

import (
	"errors"
	"fmt"

	mkerrors "github.com/flogin/prodadmin/internal/mockapi/errors"
	"github.com/flogin/prodadmin/internal/mockapi/store"
	"golang.org/x/crypto/bcrypt"
)

// Service checks credentials against the user store and exchanges them
// for access tokens.
type Service struct {
	users  *store.UserStore
	tokens *TokenManager
}

func NewService(users *store.UserStore, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies the username/password pair and issues a token. Unknown
// users and wrong passwords are indistinguishable to the caller: both
// return ErrBadCredentials.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, mkerrors.ErrUserNotFound) {
			return "", mkerrors.ErrBadCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", mkerrors.ErrBadCredentials
	}
	return s.tokens.Issue(user.Username)
}

// ProfileFor returns the profile of the named user.
func (s *Service) ProfileFor(username string) (*store.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// HashPassword hashes a seed password with bcrypt's default cost.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
