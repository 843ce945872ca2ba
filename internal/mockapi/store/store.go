// Package store provides the in-memory storage backing the mock backend.
// Every store is safe for concurrent use; ids are assigned server-side
// from an incrementing counter, like the real backend would.
package store

// Product is a stored product row. CategoryID references a Category.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	Quantity    int
	Description string
	CategoryID  int64
}

// Category is a stored category row. Categories are seeded at startup and
// read-only afterwards.
type Category struct {
	ID   int64
	Name string
}

// User is a stored account. PasswordHash is a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	FullName     string
	PasswordHash []byte
}
