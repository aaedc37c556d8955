package handlers

import (
	"encoding/json"
	"net/http"
)

// Streaming Monte Carlo progress (RunMonteCarloStream), cascading-failure
// sweeps (SimulateFailures), and critical-element ranking
// (FindCriticalElements) had no equivalent route on simulation-svc's JSON
// API and are dropped rather than faked; RunMonteCarlo and
// AnalyzeResilience already cover the batch and weak-point analyses they
// overlapped with.
func (h *Handler) registerSimulationRoutes() {
	h.mux.HandleFunc("/v1/simulation/whatif", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().RunWhatIf(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulation/montecarlo", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().RunMonteCarlo(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulation/sensitivity", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().AnalyzeSensitivity(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulation/resilience", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().AnalyzeResilience(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulation/playback", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().RunPlayback(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulations/get", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().GetSimulation(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulations/delete", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().DeleteSimulation(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/simulations/list", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Simulation().ListSimulations(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
}
