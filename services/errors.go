package services

import "errors"

// Workflow errors. Controllers translate these into HTTP statuses;
// anything else is reported as an internal failure.
var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrNotFound               = errors.New("not found")
	ErrSlotUnavailable        = errors.New("slot unavailable")
	ErrConflict               = errors.New("booking conflict")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
