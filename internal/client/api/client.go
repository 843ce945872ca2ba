// Package api is the REST backend collaborator for the admin client.
// The session store and the caches consume it as an opaque set of
// request/response functions; the HTTP implementation lives in http.go.
package api

import "context"

// Client is the backend surface the client-side state layer depends on.
// Implementations map transport failures onto the sentinel errors declared
// in errors.go and never panic.
type Client interface {
	// Login exchanges credentials for an access token.
	// Returns ErrInvalidCredentials when the backend rejects them.
	Login(ctx context.Context, username, password string) (string, error)

	// Profile fetches the authenticated user's profile.
	Profile(ctx context.Context) (*Profile, error)

	// Categories fetches the full category set.
	Categories(ctx context.Context) ([]Category, error)

	// Products fetches the full product list.
	Products(ctx context.Context) ([]Product, error)

	// CreateProduct creates a product; the returned object carries the
	// server-assigned id.
	CreateProduct(ctx context.Context, payload ProductPayload) (*Product, error)

	// UpdateProduct replaces the product's mutable fields and returns the
	// full updated object. Returns ErrNotFound for unknown ids.
	UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (*Product, error)

	// DeleteProduct removes a product. Returns ErrNotFound for unknown ids.
	DeleteProduct(ctx context.Context, id int64) error
}
