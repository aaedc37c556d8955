package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"mapfnet/pkg/apperror"
	"mapfnet/services/gateway-svc/internal/clients"
	"mapfnet/services/gateway-svc/internal/middleware"
)

func (h *Handler) registerAuthRoutes() {
	h.mux.HandleFunc("/v1/auth/login", h.handleLogin)
	h.mux.HandleFunc("/v1/auth/register", h.handleRegister)
	h.mux.HandleFunc("/v1/auth/validate", h.handleValidateToken)
	h.mux.HandleFunc("/v1/auth/refresh", h.handleRefreshToken)
	h.mux.HandleFunc("/v1/auth/logout", h.handleLogout)
	h.mux.HandleFunc("/v1/auth/profile", h.handleProfile)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req clients.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.clients.Auth().Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if !resp.Success {
		writeJSON(w, http.StatusUnauthorized, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req clients.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.clients.Auth().Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	if !resp.Success {
		writeJSON(w, http.StatusConflict, resp)
		return
	}

	// Registration leaves the caller logged out; log them in immediately
	// the way the teacher's aggregate register-then-login flow did.
	loginResp, err := h.clients.Auth().Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusCreated, resp)
		return
	}
	writeJSON(w, http.StatusCreated, loginResp)
}

// bearerToken prefers an explicit token field on the body and falls back
// to the Authorization header, the same precedence middleware.Auth uses.
func bearerToken(r *http.Request, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (h *Handler) handleValidateToken(w http.ResponseWriter, r *http.Request) {
	var req clients.ValidateTokenRequest
	if !decode(w, r, &req) {
		return
	}
	token := bearerToken(r, req.Token)
	resp, err := h.clients.Auth().ValidateToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req clients.RefreshTokenRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.clients.Auth().RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	if !resp.Success {
		writeJSON(w, http.StatusUnauthorized, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// An empty/absent body is fine here (logout can rely on the
	// Authorization header alone), so parse leniently instead of using
	// decode, which treats any decode failure as a client error.
	var req clients.LogoutRequest
	body, ok := readRaw(w, r)
	if !ok {
		return
	}
	_ = json.Unmarshal(body, &req)

	token := bearerToken(r, req.Token)
	if token == "" {
		writeJSON(w, http.StatusOK, &clients.LogoutResponse{Success: true})
		return
	}

	resp, err := h.clients.Auth().Logout(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProfile returns the profile of the already-authenticated caller,
// read from context rather than round-tripping to auth-svc again.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userInfo := middleware.GetUserInfo(r.Context())
	if userInfo == nil {
		writeError(w, apperror.New(apperror.CodeUnauthenticated, "not authenticated"))
		return
	}
	writeJSON(w, http.StatusOK, userInfo)
}
