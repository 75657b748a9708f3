// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// SortField identifies the field a listing is ordered by.
type SortField string

const (
	SortByName        SortField = "name"
	SortByPrice       SortField = "price"
	SortByNextBilling SortField = "next_billing"
	SortByCategory    SortField = "category"
)

// IsValid reports whether the sort field is one of the known values.
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByPrice, SortByNextBilling, SortByCategory:
		return true
	}
	return false
}

// SortOrder identifies the direction of a sorted listing.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// FilterCriteria holds the caller-supplied filter and sort options. All
// predicates are conjoined with AND; empty selections match everything.
type FilterCriteria struct {
	Search        string
	Categories    []entity.Category
	BillingCycles []entity.BillingCycle
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	ActiveOnly    bool
	CryptoOnly    bool
	SortBy        SortField
	SortOrder     SortOrder
}

// ListSubscriptionsInput represents the input for listing subscriptions.
type ListSubscriptionsInput struct {
	Criteria FilterCriteria
}

// SubscriptionOutput represents a single subscription in the output.
type SubscriptionOutput struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Category        entity.Category
	Price           decimal.Decimal
	Currency        string
	BillingCycle    entity.BillingCycle
	NextBillingDate time.Time
	IsActive        bool
	IsCryptoEnabled bool
	CryptoToken     string
	CryptoAmount    *decimal.Decimal
	CryptoStreamID  *uuid.UUID
	MonthlyAmount   decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListSubscriptionsOutput represents the output of listing subscriptions.
type ListSubscriptionsOutput struct {
	Subscriptions []*SubscriptionOutput
	Total         int
}

// ListSubscriptionsUseCase handles listing subscriptions with filtering and sorting.
type ListSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewListSubscriptionsUseCase creates a new ListSubscriptionsUseCase instance.
func NewListSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription listing. Filtering and sorting run over a
// snapshot of the collection and never mutate stored records.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, input ListSubscriptionsInput) (*ListSubscriptionsOutput, error) {
	if err := validateCriteria(input.Criteria); err != nil {
		return nil, err
	}

	subscriptions, err := uc.subscriptionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterSubscriptions(subscriptions, input.Criteria)
	SortSubscriptions(filtered, input.Criteria.SortBy, input.Criteria.SortOrder)

	output := &ListSubscriptionsOutput{
		Subscriptions: make([]*SubscriptionOutput, len(filtered)),
		Total:         len(filtered),
	}
	for i, sub := range filtered {
		output.Subscriptions[i] = toSubscriptionOutput(sub)
	}

	return output, nil
}

// validateCriteria rejects malformed filter options before any work is done.
func validateCriteria(criteria FilterCriteria) error {
	if criteria.MinPrice != nil && criteria.MaxPrice != nil && criteria.MinPrice.GreaterThan(*criteria.MaxPrice) {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidPriceRange,
			"minimum price must not exceed maximum price",
			domainerror.ErrInvalidPriceRange,
		)
	}
	if criteria.SortBy != "" && !criteria.SortBy.IsValid() {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidSortField,
			"sort field must be one of name, price, next_billing, category",
			domainerror.ErrInvalidSortField,
		)
	}
	return nil
}

// FilterSubscriptions returns the subset of subscriptions satisfying every
// active predicate in the criteria. The input slice is not modified.
func FilterSubscriptions(subscriptions []*entity.Subscription, criteria FilterCriteria) []*entity.Subscription {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	result := make([]*entity.Subscription, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if search != "" && !matchesSearch(sub, search) {
			continue
		}
		if len(criteria.Categories) > 0 && !containsCategory(criteria.Categories, sub.Category) {
			continue
		}
		if len(criteria.BillingCycles) > 0 && !containsCycle(criteria.BillingCycles, sub.BillingCycle) {
			continue
		}
		if criteria.MinPrice != nil && sub.Price.LessThan(*criteria.MinPrice) {
			continue
		}
		if criteria.MaxPrice != nil && sub.Price.GreaterThan(*criteria.MaxPrice) {
			continue
		}
		if criteria.ActiveOnly && !sub.IsActive {
			continue
		}
		if criteria.CryptoOnly && !sub.IsCryptoEnabled {
			continue
		}
		result = append(result, sub)
	}
	return result
}

// SortSubscriptions orders the slice by the given field and direction. The sort
// is stable in both directions: records with equal keys keep their relative
// input order. An empty sort field leaves the input order untouched.
func SortSubscriptions(subscriptions []*entity.Subscription, field SortField, order SortOrder) {
	if field == "" {
		return
	}

	less := func(a, b *entity.Subscription) bool {
		switch field {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByPrice:
			return a.Price.LessThan(b.Price)
		case SortByNextBilling:
			return a.NextBillingDate.Before(b.NextBillingDate)
		case SortByCategory:
			return a.Category < b.Category
		}
		return false
	}

	sort.SliceStable(subscriptions, func(i, j int) bool {
		if order == SortDescending {
			// Flip the key comparison only; ties still keep input order.
			return less(subscriptions[j], subscriptions[i])
		}
		return less(subscriptions[i], subscriptions[j])
	})
}

// matchesSearch reports whether the lowercased search term occurs in the
// subscription's name or description.
func matchesSearch(sub *entity.Subscription, search string) bool {
	if strings.Contains(strings.ToLower(sub.Name), search) {
		return true
	}
	return sub.Description != "" && strings.Contains(strings.ToLower(sub.Description), search)
}

func containsCategory(categories []entity.Category, category entity.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

func containsCycle(cycles []entity.BillingCycle, cycle entity.BillingCycle) bool {
	for _, c := range cycles {
		if c == cycle {
			return true
		}
	}
	return false
}

// toSubscriptionOutput converts a subscription entity to its output form.
func toSubscriptionOutput(sub *entity.Subscription) *SubscriptionOutput {
	return &SubscriptionOutput{
		ID:              sub.ID,
		Name:            sub.Name,
		Description:     sub.Description,
		Category:        sub.Category,
		Price:           sub.Price,
		Currency:        sub.Currency,
		BillingCycle:    sub.BillingCycle,
		NextBillingDate: sub.NextBillingDate,
		IsActive:        sub.IsActive,
		IsCryptoEnabled: sub.IsCryptoEnabled,
		CryptoToken:     sub.CryptoToken,
		CryptoAmount:    sub.CryptoAmount,
		CryptoStreamID:  sub.CryptoStreamID,
		MonthlyAmount:   sub.MonthlyAmount(),
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}
}
