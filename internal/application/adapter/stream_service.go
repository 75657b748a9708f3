// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
)

// CreateStreamRequest carries the parameters for opening a payment stream.
type CreateStreamRequest struct {
	Token     string
	Amount    decimal.Decimal
	FlowRate  string // base units per second
	Recipient string
	ChainID   int64
	StartDate time.Time
	EndDate   *time.Time
}

// StreamService opens and cancels payment streams on a single streaming
// protocol. Implementations may simulate the protocol; callers depend only on
// this contract and never on the implementation's timing.
type StreamService interface {
	// Protocol identifies the protocol this service drives.
	Protocol() entity.StreamProtocol

	// CreateStream opens a stream and returns the protocol's stream identifier.
	CreateStream(ctx context.Context, req CreateStreamRequest) (string, error)

	// CancelStream closes the stream with the given protocol identifier.
	CancelStream(ctx context.Context, externalID string) error
}
