package handlers

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) registerValidationRoutes() {
	h.mux.HandleFunc("/v1/validate/graph", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Validation().ValidateGraph(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/validate/solution", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Validation().ValidateSolution(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/validate/mode", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Validation().ValidateMode(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/validate/all", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Validation().ValidateAll(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
}
