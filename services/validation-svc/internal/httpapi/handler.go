// Package httpapi fronts validation-svc over plain JSON-over-HTTP,
// replacing the teacher's generated connect-RPC handler now that there
// is no validationv1.ValidationServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/validation-svc/internal/service"
)

// Handler serves validation-svc's routes.
type Handler struct {
	svc *service.ValidationService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.ValidationService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/validate/graph", h.handleValidateGraph)
	h.mux.HandleFunc("/v1/validate/solution", h.handleValidateSolution)
	h.mux.HandleFunc("/v1/validate/mode", h.handleValidateMode)
	h.mux.HandleFunc("/v1/validate/all", h.handleValidateAll)
	h.mux.HandleFunc("/healthz", h.handleHealth)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health(r.Context()))
}

func (h *Handler) handleValidateGraph(w http.ResponseWriter, r *http.Request) {
	var req service.ValidateGraphRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ValidateGraph(r.Context(), &req)
	respond(w, resp, err, "validate graph")
}

func (h *Handler) handleValidateSolution(w http.ResponseWriter, r *http.Request) {
	var req service.ValidateSolutionRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ValidateSolution(r.Context(), &req)
	respond(w, resp, err, "validate solution")
}

func (h *Handler) handleValidateMode(w http.ResponseWriter, r *http.Request) {
	var req service.ValidateForModeRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ValidateForMode(r.Context(), &req)
	respond(w, resp, err, "validate mode")
}

func (h *Handler) handleValidateAll(w http.ResponseWriter, r *http.Request) {
	var req service.ValidateAllRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ValidateAll(r.Context(), &req)
	respond(w, resp, err, "validate all")
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
