package dto

import (
	"time"

	"github.com/subtrack/backend/internal/application/usecase/subscription"
	"github.com/subtrack/backend/internal/domain/entity"
)

// CreateSubscriptionRequest represents the request body for subscription creation.
type CreateSubscriptionRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=100"`
	Description     string   `json:"description,omitempty" binding:"omitempty,max=500"`
	Category        string   `json:"category" binding:"required"`
	Price           float64  `json:"price" binding:"required"`
	Currency        string   `json:"currency" binding:"required,min=3,max=8"`
	BillingCycle    string   `json:"billing_cycle" binding:"required,oneof=monthly yearly weekly custom"`
	NextBillingDate string   `json:"next_billing_date" binding:"required"`
	IsCryptoEnabled bool     `json:"is_crypto_enabled,omitempty"`
	CryptoToken     string   `json:"crypto_token,omitempty"`
	CryptoAmount    *float64 `json:"crypto_amount,omitempty"`
}

// UpdateSubscriptionRequest represents the request body for subscription update.
type UpdateSubscriptionRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description     *string  `json:"description,omitempty" binding:"omitempty,max=500"`
	Category        *string  `json:"category,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Currency        *string  `json:"currency,omitempty" binding:"omitempty,min=3,max=8"`
	BillingCycle    *string  `json:"billing_cycle,omitempty" binding:"omitempty,oneof=monthly yearly weekly custom"`
	NextBillingDate *string  `json:"next_billing_date,omitempty"`
	IsCryptoEnabled *bool    `json:"is_crypto_enabled,omitempty"`
	CryptoToken     *string  `json:"crypto_token,omitempty"`
	CryptoAmount    *float64 `json:"crypto_amount,omitempty"`
}

// SubscriptionResponse represents a single subscription in API responses.
type SubscriptionResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	Price           string    `json:"price"`
	Currency        string    `json:"currency"`
	BillingCycle    string    `json:"billing_cycle"`
	NextBillingDate string    `json:"next_billing_date"`
	IsActive        bool      `json:"is_active"`
	IsCryptoEnabled bool      `json:"is_crypto_enabled"`
	CryptoToken     string    `json:"crypto_token,omitempty"`
	CryptoAmount    *string   `json:"crypto_amount,omitempty"`
	CryptoStreamID  *string   `json:"crypto_stream_id,omitempty"`
	MonthlyAmount   string    `json:"monthly_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SubscriptionListResponse represents the response for listing subscriptions.
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Total         int                    `json:"total"`
}

// SubscriptionStatsResponse represents aggregate statistics in API responses.
type SubscriptionStatsResponse struct {
	TotalActive       int            `json:"total_active"`
	TotalMonthlySpend string         `json:"total_monthly_spend"`
	TotalYearlySpend  string         `json:"total_yearly_spend"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

// SyncResponse represents the response for a provider sync run.
type SyncResponse struct {
	Count int `json:"count"`
}

// ToSubscriptionResponse converts a SubscriptionOutput to a SubscriptionResponse DTO.
func ToSubscriptionResponse(sub *subscription.SubscriptionOutput) SubscriptionResponse {
	response := SubscriptionResponse{
		ID:              sub.ID.String(),
		Name:            sub.Name,
		Description:     sub.Description,
		Category:        string(sub.Category),
		Price:           sub.Price.String(),
		Currency:        sub.Currency,
		BillingCycle:    string(sub.BillingCycle),
		NextBillingDate: sub.NextBillingDate.Format("2006-01-02"),
		IsActive:        sub.IsActive,
		IsCryptoEnabled: sub.IsCryptoEnabled,
		CryptoToken:     sub.CryptoToken,
		MonthlyAmount:   sub.MonthlyAmount.StringFixed(2),
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}
	if sub.CryptoAmount != nil {
		amount := sub.CryptoAmount.String()
		response.CryptoAmount = &amount
	}
	if sub.CryptoStreamID != nil {
		streamID := sub.CryptoStreamID.String()
		response.CryptoStreamID = &streamID
	}
	return response
}

// ToSubscriptionListResponse converts a ListSubscriptionsOutput to its response DTO.
func ToSubscriptionListResponse(output *subscription.ListSubscriptionsOutput) SubscriptionListResponse {
	subscriptions := make([]SubscriptionResponse, len(output.Subscriptions))
	for i, sub := range output.Subscriptions {
		subscriptions[i] = ToSubscriptionResponse(sub)
	}
	return SubscriptionListResponse{
		Subscriptions: subscriptions,
		Total:         output.Total,
	}
}

// ToSubscriptionStatsResponse converts SubscriptionStats to its response DTO.
func ToSubscriptionStatsResponse(stats *entity.SubscriptionStats) SubscriptionStatsResponse {
	breakdown := make(map[string]int, len(stats.CategoryBreakdown))
	for category, count := range stats.CategoryBreakdown {
		breakdown[string(category)] = count
	}
	return SubscriptionStatsResponse{
		TotalActive:       stats.TotalActive,
		TotalMonthlySpend: stats.TotalMonthlySpend.StringFixed(2),
		TotalYearlySpend:  stats.TotalYearlySpend.StringFixed(2),
		CategoryBreakdown: breakdown,
	}
}
