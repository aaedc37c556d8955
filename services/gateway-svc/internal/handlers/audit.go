package handlers

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/services/gateway-svc/internal/middleware"
)

func (h *Handler) registerAuditRoutes() {
	h.mux.HandleFunc("/v1/audit/logs", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		if !h.requireAdmin(w, r) {
			return
		}
		resp, err := h.clients.Audit().GetAuditLogs(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/audit/activity", proxy(h.handleUserActivity))
	h.mux.HandleFunc("/v1/audit/stats", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		if !h.requireAdmin(w, r) {
			return
		}
		resp, err := h.clients.Audit().GetAuditStats(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/audit/events", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Audit().LogEvent(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/audit/events/batch", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Audit().LogEventBatch(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/audit/resources/history", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		if !h.requireAdmin(w, r) {
			return
		}
		resp, err := h.clients.Audit().GetResourceHistory(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
}

// handleUserActivity lets a caller fetch their own activity; fetching
// someone else's requires admin.
func (h *Handler) handleUserActivity(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	ctx := r.Context()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		fields = map[string]json.RawMessage{}
	}

	currentUserID := middleware.GetUserID(ctx)
	var targetUserID string
	if raw, ok := fields["userId"]; ok {
		json.Unmarshal(raw, &targetUserID)
	}
	if targetUserID == "" {
		targetUserID = currentUserID
	}
	if targetUserID != currentUserID && !h.requireAdmin(w, r) {
		return
	}

	encodedID, _ := json.Marshal(targetUserID)
	fields["userId"] = encodedID
	forward, err := json.Marshal(fields)
	if err != nil {
		forward = body
	}

	resp, err := h.clients.Audit().GetUserActivity(ctx, forward)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, resp)
}

// requireAdmin reports whether the caller has the admin role, writing a
// permission-denied response and returning false otherwise.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	info := middleware.GetUserInfo(r.Context())
	if info == nil {
		writeError(w, apperror.New(apperror.CodeUnauthenticated, "authentication required"))
		return false
	}
	if info.Role != "admin" {
		writeError(w, apperror.New(apperror.CodePermissionDenied, "admin access required"))
		return false
	}
	return true
}
