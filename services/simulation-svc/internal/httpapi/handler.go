// Package httpapi fronts simulation-svc over plain JSON-over-HTTP, replacing
// the teacher's generated connect-RPC handler now that there is no
// simulationv1.SimulationServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/simulation-svc/internal/repository"
	"mapfnet/services/simulation-svc/internal/service"
)

// Handler serves simulation-svc's routes.
type Handler struct {
	svc *service.SimulationService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.SimulationService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/simulation/whatif", h.handleWhatIf)
	h.mux.HandleFunc("/v1/simulation/montecarlo", h.handleMonteCarlo)
	h.mux.HandleFunc("/v1/simulation/sensitivity", h.handleSensitivity)
	h.mux.HandleFunc("/v1/simulation/resilience", h.handleResilience)
	h.mux.HandleFunc("/v1/simulation/playback", h.handlePlayback)
	h.mux.HandleFunc("/v1/simulations/get", h.handleGet)
	h.mux.HandleFunc("/v1/simulations/delete", h.handleDelete)
	h.mux.HandleFunc("/v1/simulations/list", h.handleList)
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

func (h *Handler) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req service.RunWhatIfRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.RunWhatIf(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req service.RunMonteCarloRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.RunMonteCarlo(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeSensitivityRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.AnalyzeSensitivity(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleResilience(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeResilienceRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.AnalyzeResilience(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePlayback(w http.ResponseWriter, r *http.Request) {
	var req service.RunPlaybackRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.RunPlayback(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type getRequest struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	var req getRequest
	if !decode(w, r, &req) {
		return
	}
	sim, err := h.svc.GetSimulation(r.Context(), req.UserID, req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req getRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.DeleteSimulation(r.Context(), req.UserID, req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type listRequest struct {
	UserID string `json:"userId"`
	Type   string `json:"type,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type listResponse struct {
	Simulations []*repository.SimulationSummary `json:"simulations"`
	Total       int64                           `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !decode(w, r, &req) {
		return
	}
	sims, total, err := h.svc.ListSimulations(r.Context(), req.UserID, req.Type, &repository.ListOptions{Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Simulations: sims, Total: total})
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
