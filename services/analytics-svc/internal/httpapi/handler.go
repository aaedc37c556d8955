// Package httpapi fronts analytics-svc over plain JSON-over-HTTP, replacing
// the teacher's generated connect-RPC handler now that there is no
// analyticsv1.AnalyticsServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/analytics-svc/internal/service"
)

// Handler serves analytics-svc's routes.
type Handler struct {
	svc *service.AnalyticsService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.AnalyticsService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/analytics/cost", h.handleCalculateCost)
	h.mux.HandleFunc("/v1/analytics/bottlenecks", h.handleFindBottlenecks)
	h.mux.HandleFunc("/v1/analytics/flow", h.handleAnalyzeFlow)
	h.mux.HandleFunc("/v1/analytics/compare", h.handleCompareScenarios)
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

func (h *Handler) handleCalculateCost(w http.ResponseWriter, r *http.Request) {
	var req service.CalculateCostRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.CalculateCost(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFindBottlenecks(w http.ResponseWriter, r *http.Request) {
	var req service.FindBottlenecksRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.FindBottlenecks(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAnalyzeFlow(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeFlowRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.AnalyzeFlow(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCompareScenarios(w http.ResponseWriter, r *http.Request) {
	var req service.CompareScenariosRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.CompareScenarios(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	logger.Log.Error("request failed", "error", err)
	writeJSON(w, apperror.HTTPStatus(err), map[string]string{"error": err.Error()})
}
