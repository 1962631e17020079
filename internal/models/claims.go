package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims extends JWT registered claims with ledger-specific fields
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
}
