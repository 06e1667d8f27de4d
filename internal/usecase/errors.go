package usecase

import "errors"

// Sentinel errors separating caller faults from system faults.
// Handlers map these to HTTP statuses; anything unwrapped is a 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")

	// ErrConflict covers slot contention at insert time and
	// status-guard mismatches: another transition landed first and
	// the caller should refresh rather than retry blindly.
	ErrConflict = errors.New("conflict")
)
