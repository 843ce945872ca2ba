// Package validate holds the pure field validators behind the login and
// product forms. Every validator is a total function over its input: it
// returns "" when the value is acceptable and a human-readable message
// otherwise. Validators never panic and have no side effects.
package validate

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/flogin/prodadmin/internal/client/api"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	PasswordMinLen = 6
	PasswordMaxLen = 30

	ProductNameMinLen = 3
	ProductNameMaxLen = 100
	PriceMax          = 999_999_999
	QuantityMax       = 99_999
	DescriptionMaxLen = 500
)

// Username checks the login name: required, 3-20 runes, restricted to
// letters, digits, '.', '_' and '-'.
func Username(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Username must not be empty"
	}
	if len([]rune(username)) < UsernameMinLen {
		return "Username must be at least 3 characters"
	}
	if len([]rune(username)) > UsernameMaxLen {
		return "Username must not exceed 20 characters"
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return "Username may only contain letters, digits, '.', '_' and '-'"
		}
	}
	return ""
}

// Password checks the login password: required, 6-30 runes, must mix
// letters and digits.
func Password(password string) string {
	if strings.TrimSpace(password) == "" {
		return "Password must not be empty"
	}
	if len([]rune(password)) < PasswordMinLen {
		return "Password must be at least 6 characters"
	}
	if len([]rune(password)) > PasswordMaxLen {
		return "Password must not exceed 30 characters"
	}
	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain both letters and digits"
	}
	return ""
}

// ProductName checks the product name length bounds.
func ProductName(name string) string {
	n := len([]rune(strings.TrimSpace(name)))
	if n < ProductNameMinLen {
		return "Product name must be at least 3 characters"
	}
	if n > ProductNameMaxLen {
		return "Product name must not exceed 100 characters"
	}
	return ""
}

// Price checks the raw price input. An empty price is a missing required
// field, never defaulted; otherwise it must parse as a number, be strictly
// positive, and stay within bounds.
func Price(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Price is required"
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "Price must be a number"
	}
	if price <= 0 {
		return "Price must be greater than 0"
	}
	if price > PriceMax {
		return "Price must not exceed 999,999,999"
	}
	return ""
}

// Quantity checks the raw quantity input. An empty quantity coerces to 0
// before the bounds check; otherwise it must be an integer in [0, 99999].
func Quantity(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "" // empty maps to 0, which is in range
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return "Quantity must be an integer"
	}
	if qty < 0 {
		return "Quantity must be >= 0"
	}
	if qty > QuantityMax {
		return "Quantity must not exceed 99,999"
	}
	return ""
}

// CategoryID checks that raw names a category present in the currently
// loaded set. Selection is required.
func CategoryID(raw string, categories []api.Category) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Please choose a category"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "Please choose a category"
	}
	for _, c := range categories {
		if c.ID == id {
			return ""
		}
	}
	return "Unknown category"
}

// Description checks the optional description length.
func Description(description string) string {
	if len([]rune(description)) > DescriptionMaxLen {
		return "Description must not exceed 500 characters"
	}
	return ""
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	default:
		return false
	}
}
