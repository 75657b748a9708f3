// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
)

// DeviceRepository defines the interface for registered-device persistence.
type DeviceRepository interface {
	// Create stores a newly registered device.
	Create(ctx context.Context, device *entity.Device) error

	// FindByID retrieves a device by its ID.
	// Returns domainerror.ErrDeviceNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Device, error)

	// TouchLastSeen updates the device's last-seen timestamp.
	TouchLastSeen(ctx context.Context, id uuid.UUID, seenAt time.Time) error
}

// TokenClaims holds the validated claims of a device token.
type TokenClaims struct {
	DeviceID  uuid.UUID
	ExpiresAt time.Time
}

// TokenService issues and validates device tokens.
type TokenService interface {
	// GenerateDeviceToken issues a signed token for the device.
	GenerateDeviceToken(ctx context.Context, deviceID uuid.UUID) (string, error)

	// ValidateDeviceToken validates a token and returns its claims.
	ValidateDeviceToken(ctx context.Context, token string) (*TokenClaims, error)
}
