// Package repository defines error types that are reused across
// multiple repositories. These sentinel values let handlers translate
// failure scenarios to HTTP responses without inspecting SQL errors.
// ErrNotFound deliberately covers both "row absent" and "row outside
// the caller's scope" so a customer probing foreign ids cannot tell
// the two apart.
package repository

import "errors"

// ErrNotFound is returned when a scoped lookup matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert would duplicate a user's
// email address. Handlers should translate this into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrHasBookings is returned when a customer cannot be deleted because
// bookings ending today or later still reference them. Handlers should
// translate this into an HTTP 400 response.
var ErrHasBookings = errors.New("customer has active bookings")
