package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
)

// ReminderJobModel represents the reminder_queue table in the database.
type ReminderJobModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SubscriptionID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_reminder_sub_billing,unique"`
	SubscriptionName string     `gorm:"type:varchar(100);not null"`
	BillingDate      time.Time  `gorm:"type:timestamp;not null;index:idx_reminder_sub_billing,unique"`
	RecipientEmail   string     `gorm:"type:varchar(255);not null"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	Attempts         int        `gorm:"default:0"`
	MaxAttempts      int        `gorm:"default:3"`
	LastError        string     `gorm:"type:text"`
	ResendID         string     `gorm:"type:varchar(80)"`
	CreatedAt        time.Time  `gorm:"not null;index"`
	ProcessedAt      *time.Time `gorm:"type:timestamp"`
}

// TableName returns the table name for the ReminderJobModel.
func (ReminderJobModel) TableName() string {
	return "reminder_queue"
}

// ToEntity converts a ReminderJobModel to a domain ReminderJob entity.
func (m *ReminderJobModel) ToEntity() *entity.ReminderJob {
	return &entity.ReminderJob{
		ID:               m.ID,
		SubscriptionID:   m.SubscriptionID,
		SubscriptionName: m.SubscriptionName,
		BillingDate:      m.BillingDate,
		RecipientEmail:   m.RecipientEmail,
		Status:           entity.ReminderStatus(m.Status),
		Attempts:         m.Attempts,
		MaxAttempts:      m.MaxAttempts,
		LastError:        m.LastError,
		ResendID:         m.ResendID,
		CreatedAt:        m.CreatedAt,
		ProcessedAt:      m.ProcessedAt,
	}
}

// ReminderJobFromEntity creates a ReminderJobModel from a domain ReminderJob entity.
func ReminderJobFromEntity(job *entity.ReminderJob) *ReminderJobModel {
	return &ReminderJobModel{
		ID:               job.ID,
		SubscriptionID:   job.SubscriptionID,
		SubscriptionName: job.SubscriptionName,
		BillingDate:      job.BillingDate,
		RecipientEmail:   job.RecipientEmail,
		Status:           string(job.Status),
		Attempts:         job.Attempts,
		MaxAttempts:      job.MaxAttempts,
		LastError:        job.LastError,
		ResendID:         job.ResendID,
		CreatedAt:        job.CreatedAt,
		ProcessedAt:      job.ProcessedAt,
	}
}
