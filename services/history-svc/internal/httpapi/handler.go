// Package httpapi fronts history-svc over plain JSON-over-HTTP, replacing
// the teacher's generated connect-RPC handler now that there is no
// historyv1.HistoryServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/history-svc/internal/service"
)

// Handler serves history-svc's routes.
type Handler struct {
	svc *service.HistoryService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.HistoryService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/calculations", h.handleCalculations)
	h.mux.HandleFunc("/v1/calculations/get", h.handleGetCalculation)
	h.mux.HandleFunc("/v1/calculations/delete", h.handleDeleteCalculation)
	h.mux.HandleFunc("/v1/calculations/list", h.handleListCalculations)
	h.mux.HandleFunc("/v1/calculations/search", h.handleSearchCalculations)
	h.mux.HandleFunc("/v1/statistics", h.handleGetStatistics)
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

func (h *Handler) handleCalculations(w http.ResponseWriter, r *http.Request) {
	var req service.SaveCalculationRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.SaveCalculation(r.Context(), &req)
	respond(w, resp, err, "save calculation")
}

func (h *Handler) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	var req service.GetCalculationRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetCalculation(r.Context(), &req)
	respond(w, resp, err, "get calculation")
}

func (h *Handler) handleDeleteCalculation(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteCalculationRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.DeleteCalculation(r.Context(), &req)
	respond(w, resp, err, "delete calculation")
}

func (h *Handler) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	var req service.ListCalculationsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ListCalculations(r.Context(), &req)
	respond(w, resp, err, "list calculations")
}

func (h *Handler) handleSearchCalculations(w http.ResponseWriter, r *http.Request) {
	var req service.SearchCalculationsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.SearchCalculations(r.Context(), &req)
	respond(w, resp, err, "search calculations")
}

func (h *Handler) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	var req service.GetStatisticsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetStatistics(r.Context(), &req)
	respond(w, resp, err, "get statistics")
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
