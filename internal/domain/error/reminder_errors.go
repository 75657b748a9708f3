// Package error defines domain-specific errors for the SubTrack application.
package error

import "errors"

// Renewal-reminder domain errors.
var (
	// ErrReminderQueueFailed is returned when a reminder fails to be queued.
	ErrReminderQueueFailed = errors.New("failed to queue reminder")

	// ErrReminderJobNotFound is returned when a reminder job is not found.
	ErrReminderJobNotFound = errors.New("reminder job not found")

	// ErrPermanentEmailFailure is returned when an email fails with a permanent error.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when an email fails with a temporary error.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// ReminderErrorCode defines error codes for reminder errors.
// Format: MAIL-XXYYYY where XX is category and YYYY is specific error.
type ReminderErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeReminderQueueFailed ReminderErrorCode = "MAIL-010001"
	ErrCodeReminderJobNotFound ReminderErrorCode = "MAIL-010002"

	// Send errors (02XXXX)
	ErrCodePermanentEmailFailure ReminderErrorCode = "MAIL-020001"
	ErrCodeTemporaryEmailFailure ReminderErrorCode = "MAIL-020002"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
