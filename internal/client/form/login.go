package form

import (
	"context"
	"sync"

	"github.com/flogin/prodadmin/internal/client/session"
	"github.com/flogin/prodadmin/internal/client/validate"
)

// LoginForm validates credentials and hands them to the session store.
type LoginForm struct {
	Username string
	Password string

	mu         sync.Mutex
	submitting bool
	sessions   *session.Store
}

func NewLoginForm(sessions *session.Store) *LoginForm {
	return &LoginForm{sessions: sessions}
}

// Validate runs every field validator and collects all failures; it never
// stops at the first invalid field.
func (f *LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.put("username", validate.Username(f.Username))
	errs.put("password", validate.Password(f.Password))
	return errs
}

// Submit validates and, only when every field passes, attempts the login.
// Field errors are returned without any backend call having been made.
// A downstream failure comes back as a single general error, never as
// field-level attribution.
func (f *LoginForm) Submit(ctx context.Context) (FieldErrors, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if errs := f.Validate(); !errs.Valid() {
		return errs, nil
	}

	if err := f.sessions.LogIn(ctx, f.Username, f.Password); err != nil {
		return nil, err
	}
	f.Password = ""
	return nil, nil
}
