package handlers

import (
	goerrors "errors"
	"net/http"

	"finance-ledger/internal/dto"
	"finance-ledger/internal/errors"
	"finance-ledger/internal/models"
	"finance-ledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and their ledger account
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	initialBalance := decimal.NewFromFloat(req.InitialBalance).Round(2)

	user, account, err := h.authService.Register(req.Email, req.Password, req.FirstName, req.LastName, initialBalance)
	if err != nil {
		switch {
		case goerrors.Is(err, services.ErrEmailAlreadyExists):
			return SendError(c, errors.AccountAlreadyExists)
		case goerrors.Is(err, services.ErrPasswordTooShort),
			goerrors.Is(err, services.ErrPasswordNoUppercase),
			goerrors.Is(err, services.ErrPasswordNoLowercase),
			goerrors.Is(err, services.ErrPasswordNoNumber):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data: dto.RegisterResponse{
			User:      toUserProfile(user),
			AccountID: account.ID.String(),
			Balance:   account.Balance.StringFixed(2),
		},
		Message: "Registration successful",
	})
}

// Login verifies credentials and returns an access token
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	token, expiresAt, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if goerrors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		},
	})
}

func toUserProfile(user *models.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}
