// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/subtrack/backend/internal/domain/entity"
)

// RegisterDeviceRequest represents the request body for device registration.
type RegisterDeviceRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Platform string `json:"platform,omitempty" binding:"omitempty,oneof=ios android web"`
}

// DeviceResponse represents a registered device in API responses.
type DeviceResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Platform   string    `json:"platform,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// RegisterDeviceResponse represents the response for device registration.
type RegisterDeviceResponse struct {
	Device DeviceResponse `json:"device"`
	Token  string         `json:"token"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToDeviceResponse converts a Device entity to a DeviceResponse DTO.
func ToDeviceResponse(device *entity.Device) DeviceResponse {
	return DeviceResponse{
		ID:         device.ID.String(),
		Name:       device.Name,
		Platform:   device.Platform,
		CreatedAt:  device.CreatedAt,
		LastSeenAt: device.LastSeenAt,
	}
}
