package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
)

// DeviceModel represents the devices table in the database.
type DeviceModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Platform   string    `gorm:"type:varchar(20)"`
	CreatedAt  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the DeviceModel.
func (DeviceModel) TableName() string {
	return "devices"
}

// ToEntity converts a DeviceModel to a domain Device entity.
func (m *DeviceModel) ToEntity() *entity.Device {
	return &entity.Device{
		ID:         m.ID,
		Name:       m.Name,
		Platform:   m.Platform,
		CreatedAt:  m.CreatedAt,
		LastSeenAt: m.LastSeenAt,
	}
}

// DeviceFromEntity creates a DeviceModel from a domain Device entity.
func DeviceFromEntity(device *entity.Device) *DeviceModel {
	return &DeviceModel{
		ID:         device.ID,
		Name:       device.Name,
		Platform:   device.Platform,
		CreatedAt:  device.CreatedAt,
		LastSeenAt: device.LastSeenAt,
	}
}
