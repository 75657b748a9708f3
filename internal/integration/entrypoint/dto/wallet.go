package dto

import (
	"time"

	"github.com/subtrack/backend/internal/domain/entity"
)

// TokenBalanceResponse represents one token balance in API responses.
type TokenBalanceResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Balance  string `json:"balance"`
	Decimals int32  `json:"decimals"`
}

// BalancesResponse represents the response for a balance lookup.
type BalancesResponse struct {
	ChainID  int64                  `json:"chain_id"`
	Address  string                 `json:"address"`
	Balances []TokenBalanceResponse `json:"balances"`
	Cached   bool                   `json:"cached"`
}

// GasEstimateResponse represents the response for a gas estimate.
type GasEstimateResponse struct {
	GasLimit      string `json:"gas_limit"`
	GasPrice      string `json:"gas_price_gwei"`
	EstimatedCost string `json:"estimated_cost"`
}

// ChainResponse represents a supported chain in API responses.
type ChainResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	NativeSymbol string `json:"native_symbol"`
	USDCAddress  string `json:"usdc_address,omitempty"`
}

// CreateStreamRequest represents the request body for opening a payment stream.
type CreateStreamRequest struct {
	SubscriptionID string  `json:"subscription_id" binding:"required,uuid"`
	Protocol       string  `json:"protocol" binding:"required,oneof=superfluid sablier"`
	Token          string  `json:"token" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	Recipient      string  `json:"recipient" binding:"required"`
	ChainID        int64   `json:"chain_id" binding:"required"`
	EndDate        *string `json:"end_date,omitempty"`
}

// PaymentStreamResponse represents a payment stream in API responses.
type PaymentStreamResponse struct {
	ID             string     `json:"id"`
	SubscriptionID string     `json:"subscription_id"`
	Protocol       string     `json:"protocol"`
	Token          string     `json:"token"`
	Amount         string     `json:"amount"`
	FlowRate       string     `json:"flow_rate"`
	Recipient      string     `json:"recipient"`
	ChainID        int64      `json:"chain_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsActive       bool       `json:"is_active"`
	ExternalID     string     `json:"external_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// StreamListResponse represents the response for listing payment streams.
type StreamListResponse struct {
	Streams []PaymentStreamResponse `json:"streams"`
}

// ToTokenBalanceResponses converts token balances to their response DTOs.
func ToTokenBalanceResponses(balances []entity.TokenBalance) []TokenBalanceResponse {
	responses := make([]TokenBalanceResponse, len(balances))
	for i, balance := range balances {
		responses[i] = TokenBalanceResponse{
			Symbol:   balance.Symbol,
			Name:     balance.Name,
			Address:  balance.Address,
			Balance:  balance.Balance,
			Decimals: balance.Decimals,
		}
	}
	return responses
}

// ToPaymentStreamResponse converts a PaymentStream entity to its response DTO.
func ToPaymentStreamResponse(stream *entity.PaymentStream) PaymentStreamResponse {
	return PaymentStreamResponse{
		ID:             stream.ID.String(),
		SubscriptionID: stream.SubscriptionID.String(),
		Protocol:       string(stream.Protocol),
		Token:          stream.Token,
		Amount:         stream.Amount.String(),
		FlowRate:       stream.FlowRate,
		Recipient:      stream.Recipient,
		ChainID:        stream.ChainID,
		StartDate:      stream.StartDate,
		EndDate:        stream.EndDate,
		IsActive:       stream.IsActive,
		ExternalID:     stream.ExternalID,
		CreatedAt:      stream.CreatedAt,
	}
}
