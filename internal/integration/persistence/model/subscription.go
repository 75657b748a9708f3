// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
)

// SubscriptionModel represents the subscriptions table in the database.
type SubscriptionModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name            string           `gorm:"type:varchar(100);not null"`
	Description     string           `gorm:"type:varchar(500)"`
	Category        string           `gorm:"type:varchar(20);not null;index"`
	Price           decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Currency        string           `gorm:"type:varchar(8);not null"`
	BillingCycle    string           `gorm:"type:varchar(10);not null;index"`
	NextBillingDate time.Time        `gorm:"type:timestamp;not null;index"`
	// No column default: GORM skips zero-value fields that carry one on
	// insert, which would silently activate paused subscriptions.
	IsActive        bool             `gorm:"index"`
	IsCryptoEnabled bool             `gorm:"default:false"`
	CryptoToken     string           `gorm:"type:varchar(16)"`
	CryptoAmount    *decimal.Decimal `gorm:"type:decimal(24,6)"`
	CryptoStreamID  *uuid.UUID       `gorm:"type:uuid;index"`
	Position        int64            `gorm:"autoIncrement;not null;index"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`
}

// TableName returns the table name for the SubscriptionModel.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts a SubscriptionModel to a domain Subscription entity.
func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Category:        entity.Category(m.Category),
		Price:           m.Price,
		Currency:        m.Currency,
		BillingCycle:    entity.BillingCycle(m.BillingCycle),
		NextBillingDate: m.NextBillingDate,
		IsActive:        m.IsActive,
		IsCryptoEnabled: m.IsCryptoEnabled,
		CryptoToken:     m.CryptoToken,
		CryptoAmount:    m.CryptoAmount,
		CryptoStreamID:  m.CryptoStreamID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// SubscriptionFromEntity creates a SubscriptionModel from a domain Subscription entity.
func SubscriptionFromEntity(subscription *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:              subscription.ID,
		Name:            subscription.Name,
		Description:     subscription.Description,
		Category:        string(subscription.Category),
		Price:           subscription.Price,
		Currency:        subscription.Currency,
		BillingCycle:    string(subscription.BillingCycle),
		NextBillingDate: subscription.NextBillingDate,
		IsActive:        subscription.IsActive,
		IsCryptoEnabled: subscription.IsCryptoEnabled,
		CryptoToken:     subscription.CryptoToken,
		CryptoAmount:    subscription.CryptoAmount,
		CryptoStreamID:  subscription.CryptoStreamID,
		CreatedAt:       subscription.CreatedAt,
		UpdatedAt:       subscription.UpdatedAt,
	}
}
