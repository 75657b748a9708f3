// Package provider fetches subscription collections from external sources.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// subscriptionPayload mirrors the JSON shape served by the sync endpoint.
type subscriptionPayload struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	BillingCycle    string          `json:"billingCycle"`
	NextBillingDate time.Time       `json:"nextBillingDate"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// HTTPProvider implements the adapter.SubscriptionProvider interface over a
// JSON endpoint.
type HTTPProvider struct {
	client *http.Client
	url    string
}

// NewHTTPProvider creates a provider fetching from the given URL.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// FetchAll retrieves the full subscription collection from the endpoint.
func (p *HTTPProvider) FetchAll(ctx context.Context) ([]*entity.Subscription, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sync endpoint returned status %d", resp.StatusCode)
	}

	var payloads []subscriptionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("failed to decode sync payload: %w", err)
	}

	subscriptions := make([]*entity.Subscription, len(payloads))
	for i, payload := range payloads {
		subscriptions[i] = payload.toEntity()
	}
	return subscriptions, nil
}

func (p *subscriptionPayload) toEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        entity.Category(p.Category),
		Price:           p.Price,
		Currency:        p.Currency,
		BillingCycle:    entity.BillingCycle(p.BillingCycle),
		NextBillingDate: p.NextBillingDate,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Ensure HTTPProvider implements the adapter interface.
var _ adapter.SubscriptionProvider = (*HTTPProvider)(nil)
