// Package common defines shared sentinel errors used across drivefetch.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors. These are fatal: no retry, surfaced immediately.
	ErrMissingFileName    = errors.New("filename not provided")
	ErrMissingCredentials = errors.New("credentials not provided (use -k or set DRIVE_CREDENTIALS)")
	ErrMissingContainer   = errors.New("container id not provided (use -f or set DRIVE_FOLDER_ID)")
	ErrUnknownBackend     = errors.New("unknown storage backend")

	// Policy validation errors.
	ErrInvalidAttempts = errors.New("max attempts must be at least 1")
)
