package dto

import "time"

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	FirstName      string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName       string  `json:"lastName" validate:"required,min=1,max=100"`
	InitialBalance float64 `json:"initialBalance" validate:"omitempty,min=0"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Auth Response DTOs

// TokenResponse contains the issued access token
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterResponse is returned after successful registration
type RegisterResponse struct {
	User      UserProfileResponse `json:"user"`
	AccountID string              `json:"accountId"`
	Balance   string              `json:"balance"`
}
