package api

import "errors"

// Failure taxonomy for backend calls. Callers classify outcomes with
// errors.Is; the stores guarantee unchanged local state for every one of
// these.
var (
	// ErrInvalidCredentials is returned by Login when the backend rejects
	// the username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned by protected calls when the token is
	// missing server-side, expired, or revoked. Callers should clear the
	// session and send the user back to login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoToken is returned before any request is made when a protected
	// call is attempted without a session token.
	ErrNoToken = errors.New("no session token")

	// ErrNotFound is returned when the target resource no longer exists
	// server-side.
	ErrNotFound = errors.New("resource not found")

	// ErrServer is returned on 5xx responses.
	ErrServer = errors.New("server error")

	// ErrUnavailable is returned when no response was received at all.
	ErrUnavailable = errors.New("server unavailable")
)
