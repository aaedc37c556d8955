// Package httpapi fronts the solver service over plain JSON-over-HTTP,
// replacing the teacher's generated connect-RPC handler now that there
// is no optimizationv1.SolverServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/solver-svc/internal/service"
)

// Handler serves /v1/solve.
type Handler struct {
	svc *service.SolverService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.SolverService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/solve", h.handleSolve)
	h.mux.HandleFunc("/healthz", h.handleHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req service.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.New(apperror.CodeInvalidArgument, "malformed request body"))
		return
	}

	resp, err := h.svc.Solve(r.Context(), &req)
	if err != nil {
		logger.Log.Error("solve failed", "mode", req.Mode, "error", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Log.Error("failed to encode solve response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  string(apperror.Code(err)),
	})
}
