package handlers

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) registerAnalyticsRoutes() {
	h.mux.HandleFunc("/v1/analytics/cost", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Analytics().CalculateCost(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/analytics/bottlenecks", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Analytics().FindBottlenecks(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/analytics/flow", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Analytics().AnalyzeFlow(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/analytics/compare", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Analytics().CompareScenarios(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
}
