package clients

import (
	"context"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// AuthClient calls auth-svc's JSON routes.
type AuthClient struct {
	hc *client.Client
}

// NewAuthClient builds a client bound to endpoint.
func NewAuthClient(endpoint config.ServiceEndpoint) *AuthClient {
	return &AuthClient{hc: client.New(clientConfig(endpoint))}
}

// UserInfo mirrors auth-svc's wire-facing user profile.
type UserInfo struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName,omitempty"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int64     `json:"expiresIn,omitempty"`
	User         *UserInfo `json:"user,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

type RegisterResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	UserID       string `json:"userId,omitempty"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ValidateTokenResponse struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"userId,omitempty"`
	User      *UserInfo `json:"user,omitempty"`
	ExpiresAt int64     `json:"expiresAt,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

type LogoutRequest struct {
	Token string `json:"token"`
}

type LogoutResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.hc.PostJSON(ctx, "/v1/auth/login", &LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.hc.PostJSON(ctx, "/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error) {
	var resp ValidateTokenResponse
	if err := c.hc.PostJSON(ctx, "/v1/auth/validate", &ValidateTokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) RefreshToken(ctx context.Context, refreshToken string) (*RefreshTokenResponse, error) {
	var resp RefreshTokenResponse
	if err := c.hc.PostJSON(ctx, "/v1/auth/refresh", &RefreshTokenRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *AuthClient) Logout(ctx context.Context, token string) (*LogoutResponse, error) {
	var resp LogoutResponse
	if err := c.hc.PostJSON(ctx, "/v1/auth/logout", &LogoutRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
