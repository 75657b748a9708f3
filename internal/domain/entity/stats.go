// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// SubscriptionStats holds aggregate figures derived from the current collection.
// Stats are always recomputed on demand and never stored.
type SubscriptionStats struct {
	TotalActive       int
	TotalMonthlySpend decimal.Decimal
	TotalYearlySpend  decimal.Decimal
	CategoryBreakdown map[Category]int
}

// EmptySubscriptionStats returns zeroed stats for an empty collection.
func EmptySubscriptionStats() *SubscriptionStats {
	return &SubscriptionStats{
		TotalMonthlySpend: decimal.Zero,
		TotalYearlySpend:  decimal.Zero,
		CategoryBreakdown: make(map[Category]int),
	}
}

// ComputeSubscriptionStats derives stats from the given collection. Inactive
// subscriptions are excluded from totals and from the category breakdown;
// categories with no active subscriptions are absent from the map.
func ComputeSubscriptionStats(subscriptions []*Subscription) *SubscriptionStats {
	stats := EmptySubscriptionStats()

	for _, sub := range subscriptions {
		if !sub.IsActive {
			continue
		}
		stats.TotalActive++
		stats.TotalMonthlySpend = stats.TotalMonthlySpend.Add(sub.MonthlyAmount())
		stats.TotalYearlySpend = stats.TotalYearlySpend.Add(sub.YearlyAmount())
		stats.CategoryBreakdown[sub.Category]++
	}

	return stats
}
