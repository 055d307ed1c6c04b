package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/spec-kit/au-connect/internal/auth"
	"github.com/spec-kit/au-connect/internal/config"
	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterUser creates a new account with a hashed password.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	details := map[string]any{}
	if len([]rune(name)) < minNameLength {
		details["name"] = "must be at least 2 characters"
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		details["email"] = "must be a valid email address"
	}
	if len(input.Password) < minPasswordLength {
		details["password"] = "must be at least 6 characters"
	}
	if !input.Role.Valid() {
		details["role"] = "must be admin or student"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Invalid registration", details)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Interests:    []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("Email already exists", map[string]any{"email": email})
		}
		return nil, storeError("user", err)
	}
	return user, nil
}

// LoginUser authenticates a user and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, domain.Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.Token{}, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Token{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, domain.Token{}, storeError("user", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.Token{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
