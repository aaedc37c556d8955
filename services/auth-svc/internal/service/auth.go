// Package service implements auth-svc: it authenticates gateway callers and
// issues the JWTs that gate the MAPF solve endpoints.
package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/passhash"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/auth-svc/internal/repository"
	"mapfnet/services/auth-svc/internal/token"
)

// AuthService authenticates users and manages their token lifecycle.
type AuthService struct {
	repo      repository.UserRepository
	blacklist repository.TokenBlacklist
	tokens    *token.Manager
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	repo repository.UserRepository,
	blacklist repository.TokenBlacklist,
	tokens *token.Manager,
) *AuthService {
	return &AuthService{
		repo:      repo,
		blacklist: blacklist,
		tokens:    tokens,
	}
}

// UserInfo is a user's wire-facing profile.
type UserInfo struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName,omitempty"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
}

func toUserInfo(user *repository.User) *UserInfo {
	return &UserInfo{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Unix(),
	}
}

// LoginRequest authenticates a user by username/password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries a fresh token pair on success.
type LoginResponse struct {
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int64     `json:"expiresIn,omitempty"`
	User         *UserInfo `json:"user,omitempty"`
}

// Login authenticates a user and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	span.SetAttributes(attribute.String("username", req.Username))

	if req.Username == "" || req.Password == "" {
		return &LoginResponse{Success: false, ErrorMessage: "username and password are required"}, nil
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			telemetry.AddEvent(ctx, "user_not_found")
			return &LoginResponse{Success: false, ErrorMessage: "invalid username or password"}, nil
		}
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get user")
	}

	valid, err := passhash.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to verify password")
	}

	if !valid {
		telemetry.AddEvent(ctx, "invalid_password")
		return &LoginResponse{Success: false, ErrorMessage: "invalid username or password"}, nil
	}

	accessToken, refreshToken, expiresIn, err := s.tokens.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to generate tokens")
	}

	telemetry.AddEvent(ctx, "login_success", attribute.String("user_id", user.ID))

	return &LoginResponse{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         toUserInfo(user),
	}, nil
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// RegisterResponse reports the new user's ID on success.
type RegisterResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	UserID       string `json:"userId,omitempty"`
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	span.SetAttributes(
		attribute.String("username", req.Username),
		attribute.String("email", req.Email),
	)

	if err := validateRegisterRequest(req); err != nil {
		return &RegisterResponse{Success: false, ErrorMessage: err.Error()}, nil
	}

	exists, err := s.repo.Exists(ctx, req.Username, req.Email)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to check user existence")
	}
	if exists {
		return &RegisterResponse{Success: false, ErrorMessage: "user with this username or email already exists"}, nil
	}

	passwordHash, err := passhash.HashPassword(req.Password)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to hash password")
	}

	user := &repository.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         "user",
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return &RegisterResponse{Success: false, ErrorMessage: "user already exists"}, nil
		}
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to create user")
	}

	telemetry.AddEvent(ctx, "user_registered", attribute.String("user_id", user.ID))

	return &RegisterResponse{Success: true, UserID: user.ID}, nil
}

// ValidateTokenRequest checks whether a token is still live.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports a token's validity and owning user.
type ValidateTokenResponse struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"userId,omitempty"`
	User      *UserInfo `json:"user,omitempty"`
	ExpiresAt int64     `json:"expiresAt,omitempty"`
}

// ValidateToken checks a token's validity and returns its owning user.
func (s *AuthService) ValidateToken(ctx context.Context, req *ValidateTokenRequest) (*ValidateTokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.ValidateToken")
	defer span.End()

	if req.Token == "" {
		return &ValidateTokenResponse{Valid: false}, nil
	}

	blacklisted, err := s.blacklist.Contains(ctx, req.Token)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to check blacklist")
	}
	if blacklisted {
		return &ValidateTokenResponse{Valid: false}, nil
	}

	claims, err := s.tokens.ValidateToken(req.Token)
	if err != nil {
		return &ValidateTokenResponse{Valid: false}, nil
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return &ValidateTokenResponse{Valid: false}, nil
		}
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get user")
	}

	return &ValidateTokenResponse{
		Valid:     true,
		UserID:    user.ID,
		User:      toUserInfo(user),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

// RefreshTokenRequest exchanges a refresh token for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenResponse carries the freshly issued token pair.
type RefreshTokenResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// RefreshToken exchanges a refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, req *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.RefreshToken")
	defer span.End()

	if req.RefreshToken == "" {
		return &RefreshTokenResponse{Success: false, ErrorMessage: "refresh token is required"}, nil
	}

	blacklisted, err := s.blacklist.Contains(ctx, req.RefreshToken)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to check blacklist")
	}
	if blacklisted {
		return &RefreshTokenResponse{Success: false, ErrorMessage: "token has been revoked"}, nil
	}

	accessToken, refreshToken, expiresIn, err := s.tokens.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return &RefreshTokenResponse{Success: false, ErrorMessage: "invalid refresh token"}, nil
	}

	if err := s.blacklist.Add(ctx, req.RefreshToken, 7*24*time.Hour); err != nil {
		logger.Log.Warn("failed to blacklist old refresh token", "error", err)
	}

	telemetry.AddEvent(ctx, "token_refreshed")

	return &RefreshTokenResponse{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// LogoutRequest revokes a token.
type LogoutRequest struct {
	Token string `json:"token"`
}

// LogoutResponse reports whether the logout succeeded.
type LogoutResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Logout revokes a token by adding it to the blacklist.
func (s *AuthService) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuthService.Logout")
	defer span.End()

	if req.Token == "" {
		return &LogoutResponse{Success: true}, nil
	}

	if err := s.blacklist.Add(ctx, req.Token, 24*time.Hour); err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to revoke token")
	}

	telemetry.AddEvent(ctx, "user_logged_out")

	return &LogoutResponse{Success: true}, nil
}

func validateRegisterRequest(req *RegisterRequest) error {
	if req.Username == "" {
		return errors.New("username is required")
	}
	if len(req.Username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if req.Email == "" {
		return errors.New("email is required")
	}
	if len(req.Email) < 3 || !contains(req.Email, "@") {
		return errors.New("invalid email format")
	}
	return nil
}

func contains(s string, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
