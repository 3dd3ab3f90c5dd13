package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSessionNotFound indicates no persisted state exists for a session
	ErrSessionNotFound = errors.New("session not found")

	// ErrTransportInvalid indicates the host reported no usable playback position
	ErrTransportInvalid = errors.New("transport position is not valid")

	// ErrInvalidConfig indicates a configuration value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreClosed indicates the session store was used after Close
	ErrStoreClosed = errors.New("session store is closed")

	// ErrUnknownParam indicates a parameter ID that the store does not define
	ErrUnknownParam = errors.New("unknown parameter")
)
