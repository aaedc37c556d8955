// Package httpapi fronts auth-svc over plain JSON-over-HTTP, replacing the
// teacher's generated connect-RPC handler now that there is no
// authv1.AuthServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/auth-svc/internal/service"
)

// Handler serves auth-svc's routes.
type Handler struct {
	svc *service.AuthService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.AuthService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/auth/login", h.handleLogin)
	h.mux.HandleFunc("/v1/auth/register", h.handleRegister)
	h.mux.HandleFunc("/v1/auth/validate", h.handleValidateToken)
	h.mux.HandleFunc("/v1/auth/refresh", h.handleRefreshToken)
	h.mux.HandleFunc("/v1/auth/logout", h.handleLogout)
	h.mux.HandleFunc("/healthz", h.handleHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "SERVING"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.Login(r.Context(), &req)
	respond(w, resp, err, "login")
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.Register(r.Context(), &req)
	respond(w, resp, err, "register")
}

func (h *Handler) handleValidateToken(w http.ResponseWriter, r *http.Request) {
	var req service.ValidateTokenRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ValidateToken(r.Context(), &req)
	respond(w, resp, err, "validate token")
}

func (h *Handler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshTokenRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.RefreshToken(r.Context(), &req)
	respond(w, resp, err, "refresh token")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req service.LogoutRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.Logout(r.Context(), &req)
	respond(w, resp, err, "logout")
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, apperror.New(apperror.CodeInvalidArgument, "malformed request body"))
		return false
	}
	return true
}

func respond(w http.ResponseWriter, resp any, err error, op string) {
	if err != nil {
		logger.Log.Error(op+" failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperror.HTTPStatus(err), map[string]string{
		"error": err.Error(),
		"code":  string(apperror.Code(err)),
	})
}
