package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/internal/domain/entity"
)

// PaymentStreamModel represents the payment_streams table in the database.
type PaymentStreamModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SubscriptionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Protocol       string          `gorm:"type:varchar(16);not null"`
	Token          string          `gorm:"type:varchar(16);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(24,6);not null"`
	FlowRate       string          `gorm:"type:varchar(40);not null"`
	Recipient      string          `gorm:"type:varchar(64);not null"`
	ChainID        int64           `gorm:"not null"`
	StartDate      time.Time       `gorm:"type:timestamp;not null"`
	EndDate        *time.Time      `gorm:"type:timestamp"`
	IsActive       bool            `gorm:"default:true;index"`
	ExternalID     string          `gorm:"type:varchar(80);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PaymentStreamModel.
func (PaymentStreamModel) TableName() string {
	return "payment_streams"
}

// ToEntity converts a PaymentStreamModel to a domain PaymentStream entity.
func (m *PaymentStreamModel) ToEntity() *entity.PaymentStream {
	return &entity.PaymentStream{
		ID:             m.ID,
		SubscriptionID: m.SubscriptionID,
		Protocol:       entity.StreamProtocol(m.Protocol),
		Token:          m.Token,
		Amount:         m.Amount,
		FlowRate:       m.FlowRate,
		Recipient:      m.Recipient,
		ChainID:        m.ChainID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsActive:       m.IsActive,
		ExternalID:     m.ExternalID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// PaymentStreamFromEntity creates a PaymentStreamModel from a domain PaymentStream entity.
func PaymentStreamFromEntity(stream *entity.PaymentStream) *PaymentStreamModel {
	return &PaymentStreamModel{
		ID:             stream.ID,
		SubscriptionID: stream.SubscriptionID,
		Protocol:       string(stream.Protocol),
		Token:          stream.Token,
		Amount:         stream.Amount,
		FlowRate:       stream.FlowRate,
		Recipient:      stream.Recipient,
		ChainID:        stream.ChainID,
		StartDate:      stream.StartDate,
		EndDate:        stream.EndDate,
		IsActive:       stream.IsActive,
		ExternalID:     stream.ExternalID,
		CreatedAt:      stream.CreatedAt,
		UpdatedAt:      stream.UpdatedAt,
	}
}
