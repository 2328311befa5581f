package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bookstack/bookstack-api/internal/crypto"
	"github.com/bookstack/bookstack-api/internal/model"
	"github.com/bookstack/bookstack-api/internal/repository"
	"github.com/bookstack/bookstack-api/internal/validate"
)

// AuthService handles registration, login and refresh-token exchange.
type AuthService struct {
	users         UserStore
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, accessExpiry, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     secret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates a new user account. The email is lowercased before the
// uniqueness check so a re-registration differing only in case conflicts.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	if fields := validate.UserCreate(req); len(fields) > 0 {
		return model.UserResponse{}, invalid(fields)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         model.ParseRole(strings.ToLower(req.Role)),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Books:     []int64{},
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login authenticates a user and returns an access/refresh token pair.
// Both tokens carry the user's id as subject and their stored role.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenPairResponse, error) {
	if fields := validate.Credentials(req); len(fields) > 0 {
		return model.TokenPairResponse{}, invalid(fields)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenPairResponse{}, ErrInvalidCredentials
		}
		return model.TokenPairResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.TokenPairResponse{}, ErrInvalidCredentials
	}

	access, err := crypto.GenerateToken(user.ID, user.Role, crypto.TokenAccess, s.jwtSecret, s.accessExpiry)
	if err != nil {
		return model.TokenPairResponse{}, err
	}

	refresh, err := crypto.GenerateToken(user.ID, user.Role, crypto.TokenRefresh, s.jwtSecret, s.refreshExpiry)
	if err != nil {
		return model.TokenPairResponse{}, err
	}

	return model.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user is re-resolved so a deleted account cannot keep minting tokens,
// and the new token carries the user's current role.
func (s *AuthService) Refresh(ctx context.Context, req model.RefreshRequest) (model.AccessTokenResponse, error) {
	claims, err := crypto.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return model.AccessTokenResponse{}, ErrInvalidRefresh
	}
	if claims.Kind != crypto.TokenRefresh {
		return model.AccessTokenResponse{}, ErrInvalidRefresh
	}

	userID, err := claims.UserID()
	if err != nil {
		return model.AccessTokenResponse{}, ErrInvalidRefresh
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AccessTokenResponse{}, ErrInvalidRefresh
		}
		return model.AccessTokenResponse{}, err
	}

	access, err := crypto.GenerateToken(user.ID, user.Role, crypto.TokenAccess, s.jwtSecret, s.accessExpiry)
	if err != nil {
		return model.AccessTokenResponse{}, err
	}

	return model.AccessTokenResponse{AccessToken: access}, nil
}
