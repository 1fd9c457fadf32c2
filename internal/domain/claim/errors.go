package claim

import "errors"

var (
	// ErrNotFound is returned when the referenced claim does not exist
	ErrNotFound = errors.New("claim not found")

	// ErrForbidden is returned when the actor's role may not set the requested status
	ErrForbidden = errors.New("role not permitted to set requested status")

	// ErrInvalidTransition is returned when the current status does not permit the requested edge
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation is returned when input is malformed
	ErrValidation = errors.New("validation failed")
)
