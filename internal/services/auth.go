package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
)

const (
	minPasswordLength = 8
	maxPasswordLength = auth.MaxPasswordBytes
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, principal *auth.Principal) error
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users   repository.UserRepository
	tokens  *auth.TokenService
	revoker auth.Revoker
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, revoker auth.Revoker) AuthService {
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}

	return &authService{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	if email == "" {
		return nil, validationError("email is required")
	}

	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, validationError("email is not a valid address")
	}

	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		return nil, validationError("password must be between %d and %d bytes", minPasswordLength, maxPasswordLength)
	}

	role := req.Role

	if role == "" {
		role = models.RoleUser
	}

	if !models.ValidRole(role) {
		return nil, validationError("role must be %q or %q", models.RoleUser, models.RoleAdmin)
	}

	_, err := s.users.FindByEmail(ctx, email)

	if err == nil {
		return nil, repository.ErrDuplicateEmail
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)

	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	// The unique index still decides if two registrations race.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateJWT(user.ID, user.Email, user.Role)

	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.Expiry().Seconds()),
	}, nil
}

// Logout revokes the presented token until it would have expired.
func (s *authService) Logout(ctx context.Context, principal *auth.Principal) error {
	return s.revoker.Revoke(ctx, principal.TokenID, principal.ExpiresAt)
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}
