package service

import "errors"

// Error kinds surfaced to handlers; services wrap these with context so
// handlers can map them to HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Report download outcomes that are user-visible results rather than
	// failures of the request itself.
	ErrReportProcessing = errors.New("report is still being processed")
	ErrReportFailed     = errors.New("report generation failed")
)
