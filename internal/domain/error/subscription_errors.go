// Package error defines domain-specific errors for the SubTrack application.
package error

import "errors"

// Subscription domain errors.
var (
	// ErrSubscriptionNotFound is returned when a subscription is not found in the ledger.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvalidSubscriptionName is returned when the subscription name is empty or blank.
	ErrInvalidSubscriptionName = errors.New("subscription name must not be blank")

	// ErrInvalidSubscriptionPrice is returned when the subscription price is not positive.
	ErrInvalidSubscriptionPrice = errors.New("subscription price must be greater than zero")

	// ErrInvalidCategory is returned when the category is outside the known enumeration.
	ErrInvalidCategory = errors.New("invalid subscription category")

	// ErrInvalidBillingCycle is returned when the billing cycle is outside the known enumeration.
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")

	// ErrInvalidCurrency is returned when the currency code is missing or malformed.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrDescriptionTooLong is returned when the description exceeds the allowed length.
	ErrDescriptionTooLong = errors.New("subscription description is too long")

	// ErrInvalidPriceRange is returned when a filter price range has min greater than max.
	ErrInvalidPriceRange = errors.New("invalid price range")

	// ErrInvalidSortField is returned when the requested sort field is unknown.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrSyncProviderUnavailable is returned when no subscription provider is configured.
	ErrSyncProviderUnavailable = errors.New("subscription provider not configured")

	// ErrSyncFailed is returned when fetching subscriptions from the provider fails.
	ErrSyncFailed = errors.New("failed to fetch subscriptions from provider")
)

// SubscriptionErrorCode defines error codes for subscription errors.
// Format: SUB-XXYYYY where XX is category and YYYY is specific error.
type SubscriptionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSubscriptionName   SubscriptionErrorCode = "SUB-010001"
	ErrCodeInvalidSubscriptionPrice  SubscriptionErrorCode = "SUB-010002"
	ErrCodeInvalidCategory           SubscriptionErrorCode = "SUB-010003"
	ErrCodeInvalidBillingCycle       SubscriptionErrorCode = "SUB-010004"
	ErrCodeInvalidCurrency           SubscriptionErrorCode = "SUB-010005"
	ErrCodeMissingSubscriptionFields SubscriptionErrorCode = "SUB-010006"
	ErrCodeDescriptionTooLong        SubscriptionErrorCode = "SUB-010007"

	// Lookup errors (02XXXX)
	ErrCodeSubscriptionNotFound SubscriptionErrorCode = "SUB-020001"

	// Query errors (03XXXX)
	ErrCodeInvalidPriceRange SubscriptionErrorCode = "SUB-030001"
	ErrCodeInvalidSortField  SubscriptionErrorCode = "SUB-030002"

	// Sync errors (04XXXX)
	ErrCodeSyncProviderUnavailable SubscriptionErrorCode = "SUB-040001"
	ErrCodeSyncFailed              SubscriptionErrorCode = "SUB-040002"
)

// SubscriptionError represents a subscription error with code and message.
type SubscriptionError struct {
	Code    SubscriptionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// NewSubscriptionError creates a new SubscriptionError with the given code and message.
func NewSubscriptionError(code SubscriptionErrorCode, message string, err error) *SubscriptionError {
	return &SubscriptionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
