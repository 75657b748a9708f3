// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Device represents a mobile client registered against this backend.
type Device struct {
	ID         uuid.UUID
	Name       string
	Platform   string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// NewDevice creates a new Device entity.
func NewDevice(name, platform string) *Device {
	now := time.Now().UTC()

	return &Device{
		ID:         uuid.New(),
		Name:       name,
		Platform:   platform,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}
