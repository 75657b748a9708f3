// Package auth contains device registration and token use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// MaxDeviceNameLength caps the device name.
const MaxDeviceNameLength = 100

// RegisterDeviceInput represents the input for registering a device.
type RegisterDeviceInput struct {
	Name     string
	Platform string
}

// RegisterDeviceOutput represents the output of registering a device.
type RegisterDeviceOutput struct {
	Device *entity.Device
	Token  string
}

// RegisterDeviceUseCase registers a device and issues its access token.
type RegisterDeviceUseCase struct {
	deviceRepo   adapter.DeviceRepository
	tokenService adapter.TokenService
}

// NewRegisterDeviceUseCase creates a new RegisterDeviceUseCase instance.
func NewRegisterDeviceUseCase(deviceRepo adapter.DeviceRepository, tokenService adapter.TokenService) *RegisterDeviceUseCase {
	return &RegisterDeviceUseCase{
		deviceRepo:   deviceRepo,
		tokenService: tokenService,
	}
}

// Execute registers the device.
func (uc *RegisterDeviceUseCase) Execute(ctx context.Context, input RegisterDeviceInput) (*RegisterDeviceOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > MaxDeviceNameLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidDeviceName,
			fmt.Sprintf("Device name must be between 1 and %d characters", MaxDeviceNameLength),
			domainerror.ErrInvalidDeviceName,
		)
	}

	device := entity.NewDevice(name, strings.TrimSpace(input.Platform))

	if err := uc.deviceRepo.Create(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	token, err := uc.tokenService.GenerateDeviceToken(ctx, device.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate device token: %w", err)
	}

	slog.Info("Device registered", "deviceId", device.ID, "platform", device.Platform)

	return &RegisterDeviceOutput{Device: device, Token: token}, nil
}
