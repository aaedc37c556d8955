package handlers

import (
	"encoding/json"
	"net/http"

	"mapfnet/services/gateway-svc/internal/middleware"
)

const anonymousUserID = "anonymous"

func userIDOrAnonymous(r *http.Request) string {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		return anonymousUserID
	}
	return userID
}

// withUserID re-encodes body with a "userId" field set from the
// authenticated context, overriding anything the caller supplied.
func withUserID(body json.RawMessage, userID string) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		fields = map[string]json.RawMessage{}
	}
	encodedID, _ := json.Marshal(userID)
	fields["userId"] = encodedID
	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}

func (h *Handler) registerHistoryRoutes() {
	h.mux.HandleFunc("/v1/calculations", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.History().SaveCalculation(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/calculations/get", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.History().GetCalculation(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/calculations/delete", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.History().DeleteCalculation(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/calculations/list", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.History().ListCalculations(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/calculations/search", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.History().SearchCalculations(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/statistics", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.History().GetStatistics(r.Context(), withUserID(body, userIDOrAnonymous(r)))
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
}
