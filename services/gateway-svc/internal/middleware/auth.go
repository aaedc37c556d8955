package middleware

import (
	"context"
	"net/http"
	"strings"

	"mapfnet/services/gateway-svc/internal/clients"
	gatewaymetrics "mapfnet/services/gateway-svc/internal/metrics"
)

// AuthClient is the subset of clients.AuthClient the middleware needs,
// kept as an interface so tests can fake it.
type AuthClient interface {
	ValidateToken(ctx context.Context, token string) (*clients.ValidateTokenResponse, error)
}

// AuthConfig configures the Auth middleware.
type AuthConfig struct {
	Client      AuthClient
	PublicPaths map[string]bool
}

// Auth validates the caller's bearer token against auth-svc, rejecting the
// request if it is missing, invalid, or expired. Public paths bypass the
// check entirely (health probes, login, register, refresh).
func Auth(cfg *AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.PublicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, err := extractToken(r)
			if err != nil {
				gatewaymetrics.Get().AuthFailed.Inc()
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			resp, err := cfg.Client.ValidateToken(r.Context(), token)
			if err != nil {
				gatewaymetrics.Get().AuthFailed.Inc()
				http.Error(w, "failed to validate token", http.StatusUnauthorized)
				return
			}

			if !resp.Valid {
				gatewaymetrics.Get().AuthFailed.Inc()
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			gatewaymetrics.Get().AuthSuccessful.Inc()

			ctx := WithUserID(r.Context(), resp.UserID)
			ctx = WithUserInfo(ctx, resp.User)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", errEmptyToken
	}

	return token, nil
}

var (
	errMissingAuthHeader = httpError("no authorization header")
	errEmptyToken        = httpError("empty token")
)

type httpError string

func (e httpError) Error() string { return string(e) }

// PublicPaths returns the gateway routes reachable without a token.
func PublicPaths() map[string]bool {
	return map[string]bool{
		"/healthz":           true,
		"/v1/info":           true,
		"/v1/algorithms":     true,
		"/v1/auth/login":     true,
		"/v1/auth/register":  true,
		"/v1/auth/refresh":   true,
	}
}
