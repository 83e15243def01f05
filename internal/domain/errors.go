package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrFull              = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")
	ErrInvalidAction     = errors.New("invalid review action")
	ErrAlreadyReviewed   = errors.New("request has already been reviewed")
	ErrStorage           = errors.New("storage failure")
)

// IsKnown reports whether err carries one of the domain errors that can be
// shown to a user as is.
func IsKnown(err error) bool {
	for _, known := range []error{
		ErrNotFound,
		ErrFull,
		ErrAlreadyRegistered,
		ErrNotRegistered,
		ErrInvalidAction,
		ErrAlreadyReviewed,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
