package domain

import "errors"

// ErrNotFound is returned by service functions when the requested trip,
// section, entry or comment does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank item text, check-out before check-in).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateKey is returned when a derived section key collides with an
// existing section of the same trip. Nothing is mutated.
var ErrDuplicateKey = errors.New("duplicate section key")

// ErrBuiltIn is returned when a caller tries to rename or delete one of the
// six built-in sections.
var ErrBuiltIn = errors.New("built-in section")

// ErrForbidden is returned when the acting user's role does not permit the
// operation. Nothing is mutated.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyVoted is returned by the poll store when a user votes twice on
// the same entry. The existing vote is kept.
var ErrAlreadyVoted = errors.New("already voted")
