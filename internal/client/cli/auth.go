package cli

import (
	"context"
	"errors"

	"github.com/flogin/prodadmin/internal/client/api"
	"github.com/flogin/prodadmin/internal/client/form"
)

// Login prompts for credentials and submits them through the login form.
// Field errors are shown inline; backend failures become one general
// message so the user cannot tell which half of the pair was wrong.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in. Use 'logout' first.")
		return nil
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	f := form.NewLoginForm(a.sessions)
	f.Username = username
	f.Password = password

	fieldErrs, err := f.Submit(ctx)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrInvalidCredentials):
			a.printf("Login failed: invalid username or password.")
		case errors.Is(err, api.ErrUnavailable):
			a.printf("Login failed: cannot reach the server.")
		default:
			a.printf("Login failed: %v", err)
		}
		return nil
	}
	if !fieldErrs.Valid() {
		printFieldErrors(a.out, fieldErrs)
		return nil
	}

	a.printf("Login successful.")
	return nil
}

// Logout clears the session; it never fails.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.LogOut(ctx)
	a.printf("Logged out.")
	return nil
}

// Profile shows who the current token belongs to.
func (a *App) Profile(ctx context.Context) error {
	profile, err := a.sessions.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNoToken) {
			a.sessions.LogOut(ctx)
			a.printf("Session expired, please log in again.")
			return nil
		}
		return err
	}
	a.printf("Logged in as %s (%s)", profile.FullName, profile.Username)
	return nil
}
