// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StreamProtocol identifies the payment-streaming protocol backing a stream.
type StreamProtocol string

const (
	StreamProtocolSuperfluid StreamProtocol = "superfluid"
	StreamProtocolSablier    StreamProtocol = "sablier"
)

// IsValid reports whether the protocol is one of the known values.
func (p StreamProtocol) IsValid() bool {
	return p == StreamProtocolSuperfluid || p == StreamProtocolSablier
}

// secondsPerMonth approximates a 30-day month, matching how flow rates are
// presented to users (token/month over 30 days).
const secondsPerMonth = 30 * 24 * 60 * 60

// PaymentStream represents a token stream paying for one subscription.
type PaymentStream struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	Protocol       StreamProtocol
	Token          string
	Amount         decimal.Decimal
	FlowRate       string // token base units (wei) per second
	Recipient      string
	ChainID        int64
	StartDate      time.Time
	EndDate        *time.Time
	IsActive       bool
	ExternalID     string // identifier returned by the streaming protocol
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPaymentStream creates a new PaymentStream entity. Streams start active.
func NewPaymentStream(
	subscriptionID uuid.UUID,
	protocol StreamProtocol,
	token string,
	amount decimal.Decimal,
	flowRate string,
	recipient string,
	chainID int64,
	startDate time.Time,
	endDate *time.Time,
	externalID string,
) *PaymentStream {
	now := time.Now().UTC()

	return &PaymentStream{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		Protocol:       protocol,
		Token:          token,
		Amount:         amount,
		FlowRate:       flowRate,
		Recipient:      recipient,
		ChainID:        chainID,
		StartDate:      startDate,
		EndDate:        endDate,
		IsActive:       true,
		ExternalID:     externalID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CalculateFlowRate converts a monthly token amount into base units (10^decimals)
// streamed per second over a 30-day month, truncated to an integer as required by
// streaming protocols.
func CalculateFlowRate(monthlyAmount decimal.Decimal, decimals int32) string {
	baseUnits := monthlyAmount.Shift(decimals)
	perSecond := baseUnits.Div(decimal.NewFromInt(secondsPerMonth))
	return perSecond.Truncate(0).String()
}
