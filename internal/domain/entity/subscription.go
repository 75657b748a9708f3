// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents the spending category of a subscription.
type Category string

const (
	CategoryStreaming    Category = "streaming"
	CategorySoftware     Category = "software"
	CategoryGaming       Category = "gaming"
	CategoryProductivity Category = "productivity"
	CategoryFitness      Category = "fitness"
	CategoryEducation    Category = "education"
	CategoryFinance      Category = "finance"
	CategoryOther        Category = "other"
)

// Categories lists all valid subscription categories.
var Categories = []Category{
	CategoryStreaming,
	CategorySoftware,
	CategoryGaming,
	CategoryProductivity,
	CategoryFitness,
	CategoryEducation,
	CategoryFinance,
	CategoryOther,
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// BillingCycle represents the recurrence period of a subscription charge.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
	BillingCycleWeekly  BillingCycle = "weekly"
	BillingCycleCustom  BillingCycle = "custom"
)

// BillingCycles lists all valid billing cycles.
var BillingCycles = []BillingCycle{
	BillingCycleMonthly,
	BillingCycleYearly,
	BillingCycleWeekly,
	BillingCycleCustom,
}

// IsValid reports whether the billing cycle is one of the known values.
func (b BillingCycle) IsValid() bool {
	for _, known := range BillingCycles {
		if b == known {
			return true
		}
	}
	return false
}

// weeksPerMonth is the weekly-to-monthly conversion factor. The factor 4 is used
// uniformly for every projection; weekly-to-yearly uses 52.
var (
	weeksPerMonth = decimal.NewFromInt(4)
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// Subscription represents one recurring charge tracked by the ledger.
type Subscription struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Category        Category
	Price           decimal.Decimal
	Currency        string
	BillingCycle    BillingCycle
	NextBillingDate time.Time
	IsActive        bool
	IsCryptoEnabled bool
	CryptoToken     string
	CryptoAmount    *decimal.Decimal
	CryptoStreamID  *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSubscription creates a new Subscription entity. New subscriptions start active.
func NewSubscription(
	name string,
	description string,
	category Category,
	price decimal.Decimal,
	currency string,
	billingCycle BillingCycle,
	nextBillingDate time.Time,
	isCryptoEnabled bool,
	cryptoToken string,
	cryptoAmount *decimal.Decimal,
) *Subscription {
	now := time.Now().UTC()

	return &Subscription{
		ID:              uuid.New(),
		Name:            name,
		Description:     description,
		Category:        category,
		Price:           price,
		Currency:        currency,
		BillingCycle:    billingCycle,
		NextBillingDate: nextBillingDate,
		IsActive:        true,
		IsCryptoEnabled: isCryptoEnabled,
		CryptoToken:     cryptoToken,
		CryptoAmount:    cryptoAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// MonthlyAmount projects the subscription price onto a monthly period.
// Custom cycles are treated as already monthly.
func (s *Subscription) MonthlyAmount() decimal.Decimal {
	switch s.BillingCycle {
	case BillingCycleYearly:
		return s.Price.Div(monthsPerYear)
	case BillingCycleWeekly:
		return s.Price.Mul(weeksPerMonth)
	default:
		return s.Price
	}
}

// YearlyAmount projects the subscription price onto a yearly period.
func (s *Subscription) YearlyAmount() decimal.Decimal {
	switch s.BillingCycle {
	case BillingCycleYearly:
		return s.Price
	case BillingCycleWeekly:
		return s.Price.Mul(weeksPerYear)
	default:
		return s.Price.Mul(monthsPerYear)
	}
}

// Clone returns a deep copy of the subscription. Read paths hand out clones so
// callers can never mutate the ledger's records in place.
func (s *Subscription) Clone() *Subscription {
	copied := *s
	if s.CryptoAmount != nil {
		amount := *s.CryptoAmount
		copied.CryptoAmount = &amount
	}
	if s.CryptoStreamID != nil {
		id := *s.CryptoStreamID
		copied.CryptoStreamID = &id
	}
	return &copied
}
