package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email is already registered")
)

type authService struct {
	userRepo        repositories.UserRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         *PrometheusMetrics
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics *PrometheusMetrics,
) AuthServiceInterface {
	return &authService{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
	}
}

// Register creates a user and their ledger account in one step. Every user
// owns exactly one account; the initial balance seeds it.
func (s *authService) Register(email, password, firstName, lastName string, initialBalance decimal.Decimal) (*models.User, *models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, nil, ErrEmailAlreadyExists
	}

	passwordHash, err := s.passwordService.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	account := &models.Account{
		UserID:  user.ID,
		Balance: initialBalance,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, nil, fmt.Errorf("failed to create account: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordAuthEvent("register", "success")
	}

	slog.Info("user registered", "user_id", user.ID, "account_id", account.ID)

	return user, account, nil
}

// Login verifies credentials and issues an access token
func (s *authService) Login(email, password string) (string, time.Time, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordLoginFailure(email)
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordService.ComparePassword(password, user.PasswordHash) {
		s.recordLoginFailure(email)
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	if s.metrics != nil {
		s.metrics.RecordAuthEvent("login", "success")
	}

	return token, expiresAt, user, nil
}

func (s *authService) recordLoginFailure(email string) {
	if s.metrics != nil {
		s.metrics.RecordAuthEvent("login", "failure")
	}
	slog.Warn("login failed", "email", email)
}
