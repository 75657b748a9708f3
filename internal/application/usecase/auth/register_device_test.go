package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
)

type fakeTokenService struct {
	token       string
	generateErr error

	lastDeviceID uuid.UUID
}

func (s *fakeTokenService) GenerateDeviceToken(_ context.Context, deviceID uuid.UUID) (string, error) {
	s.lastDeviceID = deviceID
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return s.token, nil
}

func (s *fakeTokenService) ValidateDeviceToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func TestRegisterDevice(t *testing.T) {
	ctx := context.Background()

	t.Run("registers the device and issues a token", func(t *testing.T) {
		repo := memory.NewDeviceRepository()
		tokens := &fakeTokenService{token: "jwt-abc"}

		uc := NewRegisterDeviceUseCase(repo, tokens)
		output, err := uc.Execute(ctx, RegisterDeviceInput{Name: "  Pixel 9  ", Platform: "android"})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}

		if output.Device.Name != "Pixel 9" {
			t.Errorf("expected trimmed name, got %q", output.Device.Name)
		}
		if output.Token != "jwt-abc" {
			t.Errorf("unexpected token %q", output.Token)
		}
		if tokens.lastDeviceID != output.Device.ID {
			t.Error("token issued for a different device id")
		}

		stored, err := repo.FindByID(ctx, output.Device.ID)
		if err != nil {
			t.Fatalf("find device: %v", err)
		}
		if stored.Platform != "android" {
			t.Errorf("unexpected platform %q", stored.Platform)
		}
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
		}{
			{name: "empty", input: ""},
			{name: "whitespace only", input: "   "},
			{name: "too long", input: strings.Repeat("x", MaxDeviceNameLength+1)},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc := NewRegisterDeviceUseCase(memory.NewDeviceRepository(), &fakeTokenService{token: "jwt"})
				_, err := uc.Execute(ctx, RegisterDeviceInput{Name: tc.input, Platform: "ios"})

				var authErr *domainerror.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("expected AuthError, got %T: %v", err, err)
				}
				if authErr.Code != domainerror.ErrCodeInvalidDeviceName {
					t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidDeviceName, authErr.Code)
				}
			})
		}
	})

	t.Run("token failure surfaces as an error", func(t *testing.T) {
		uc := NewRegisterDeviceUseCase(memory.NewDeviceRepository(), &fakeTokenService{generateErr: errors.New("signing key missing")})
		if _, err := uc.Execute(ctx, RegisterDeviceInput{Name: "MacBook", Platform: "macos"}); err == nil {
			t.Fatal("expected error when token generation fails")
		}
	})
}
