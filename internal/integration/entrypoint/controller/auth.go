package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrack/backend/internal/application/usecase/auth"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/entrypoint/dto"
)

// AuthController handles device registration endpoints.
type AuthController struct {
	registerUseCase *auth.RegisterDeviceUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(registerUseCase *auth.RegisterDeviceUseCase) *AuthController {
	return &AuthController{
		registerUseCase: registerUseCase,
	}
}

// RegisterDevice handles POST /auth/devices requests.
func (c *AuthController) RegisterDevice(ctx *gin.Context) {
	var req dto.RegisterDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDeviceName),
		})
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterDeviceInput{
		Name:     req.Name,
		Platform: req.Platform,
	})
	if err != nil {
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterDeviceResponse{
		Device: dto.ToDeviceResponse(output.Device),
		Token:  output.Token,
	})
}
