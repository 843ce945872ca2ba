package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	keyAccessToken = "access_token"
	keyExpiresAt   = "expires_at"
)

// SQLiteCredentialStore persists credentials in the local credential
// database (see bootstrap.NewCredentialDB). Writes of the token and its
// expiry happen in one transaction so a crash cannot leave a token without
// an expiry.
type SQLiteCredentialStore struct {
	db *sql.DB
}

var _ CredentialStore = (*SQLiteCredentialStore)(nil)

func NewSQLiteCredentialStore(db *sql.DB) *SQLiteCredentialStore {
	return &SQLiteCredentialStore{db: db}
}

func (s *SQLiteCredentialStore) Load(ctx context.Context) (*Credentials, error) {
	token, err := s.get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	rawExpiry, err := s.get(ctx, keyExpiresAt)
	if err != nil {
		return nil, err
	}
	expiresAt, err := time.Parse(time.RFC3339, rawExpiry)
	if err != nil {
		return nil, fmt.Errorf("stored token expiry is unreadable: %w", err)
	}
	return &Credentials{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *SQLiteCredentialStore) Save(ctx context.Context, creds Credentials) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin credential transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range map[string]string{
		keyAccessToken: creds.Token,
		keyExpiresAt:   creds.ExpiresAt.Format(time.RFC3339),
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO credentials (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("failed to save credential %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit credentials: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential %s: %w", key, err)
	}
	return value, nil
}
