// Package form binds the field validators to input state. A form collects
// raw user input, reports every invalid field at once, and only calls the
// downstream operation when the whole set passes. While a submission is in
// flight the form rejects further submissions, which is the client-side
// equivalent of disabling the submit button.
package form

import "errors"

// ErrSubmitInFlight is returned by Submit while a previous submission has
// not completed.
var ErrSubmitInFlight = errors.New("submission already in progress")

// FieldErrors maps a field name to its validation message. An empty map
// means every field passed.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// put records a validator result, skipping empty (valid) outcomes.
func (e FieldErrors) put(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}
