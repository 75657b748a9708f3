// Package error defines domain-specific errors for the SubTrack application.
package error

import "errors"

// Wallet and payment-stream domain errors.
var (
	// ErrUnsupportedChain is returned when the chain ID is not in the supported set.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidWalletAddress is returned when a wallet address is malformed.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")

	// ErrChainUnavailable is returned when the chain RPC endpoint cannot be reached.
	ErrChainUnavailable = errors.New("chain RPC unavailable")

	// ErrStreamNotFound is returned when a payment stream is not found.
	ErrStreamNotFound = errors.New("payment stream not found")

	// ErrInvalidStreamProtocol is returned when the streaming protocol is unknown.
	ErrInvalidStreamProtocol = errors.New("invalid stream protocol")

	// ErrInvalidStreamAmount is returned when the stream amount is not positive.
	ErrInvalidStreamAmount = errors.New("stream amount must be greater than zero")

	// ErrStreamAlreadyCancelled is returned when cancelling an inactive stream.
	ErrStreamAlreadyCancelled = errors.New("payment stream already cancelled")
)

// WalletErrorCode defines error codes for wallet errors.
// Format: WLT-XXYYYY where XX is category and YYYY is specific error.
type WalletErrorCode string

const (
	// Chain errors (01XXXX)
	ErrCodeUnsupportedChain     WalletErrorCode = "WLT-010001"
	ErrCodeInvalidWalletAddress WalletErrorCode = "WLT-010002"
	ErrCodeChainUnavailable     WalletErrorCode = "WLT-010003"

	// Stream errors (02XXXX)
	ErrCodeStreamNotFound         WalletErrorCode = "WLT-020001"
	ErrCodeInvalidStreamProtocol  WalletErrorCode = "WLT-020002"
	ErrCodeInvalidStreamAmount    WalletErrorCode = "WLT-020003"
	ErrCodeStreamAlreadyCancelled WalletErrorCode = "WLT-020004"
)

// WalletError represents a wallet error with code and message.
type WalletError struct {
	Code    WalletErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WalletError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WalletError) Unwrap() error {
	return e.Err
}

// NewWalletError creates a new WalletError with the given code and message.
func NewWalletError(code WalletErrorCode, message string, err error) *WalletError {
	return &WalletError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
