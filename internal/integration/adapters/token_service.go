// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// defaultDeviceTokenDuration keeps registered devices signed in for a month.
const defaultDeviceTokenDuration = 30 * 24 * time.Hour

// DeviceClaims represents the custom claims for device JWT tokens.
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a new token service instance. A non-positive duration
// falls back to the default.
func NewTokenService(secret string, duration time.Duration) adapter.TokenService {
	if duration <= 0 {
		duration = defaultDeviceTokenDuration
	}
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
	}
}

// GenerateDeviceToken issues a signed token for the device.
func (s *tokenService) GenerateDeviceToken(_ context.Context, deviceID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := DeviceClaims{
		DeviceID: deviceID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "subtrack",
			Subject:   deviceID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign device token: %w", err)
	}
	return signed, nil
}

// ValidateDeviceToken validates a token and returns its claims.
func (s *tokenService) ValidateDeviceToken(_ context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DeviceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeExpiredToken,
				"Device token has expired",
				domainerror.ErrExpiredToken,
			)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"Device token is invalid",
			err,
		)
	}

	claims, ok := token.Claims.(*DeviceClaims)
	if !ok || !token.Valid {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"Device token claims are invalid",
			domainerror.ErrInvalidToken,
		)
	}

	deviceID, err := uuid.Parse(claims.DeviceID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"Device token carries a malformed device id",
			err,
		)
	}

	return &adapter.TokenClaims{
		DeviceID:  deviceID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
