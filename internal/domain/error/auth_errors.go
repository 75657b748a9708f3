// Package error defines domain-specific errors for the SubTrack application.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrDeviceNotFound is returned when a device is not found in the system.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidDeviceName is returned when the device name is empty or blank.
	ErrInvalidDeviceName = errors.New("device name must not be blank")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeInvalidDeviceName AuthErrorCode = "AUTH-010001"
	ErrCodeRateLimited       AuthErrorCode = "AUTH-010002"

	// Token errors (02XXXX)
	ErrCodeInvalidToken   AuthErrorCode = "AUTH-020001"
	ErrCodeExpiredToken   AuthErrorCode = "AUTH-020002"
	ErrCodeMissingToken   AuthErrorCode = "AUTH-020003"
	ErrCodeDeviceNotFound AuthErrorCode = "AUTH-020004"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
