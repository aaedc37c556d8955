// Package httpapi fronts audit-svc over plain JSON-over-HTTP, replacing
// the teacher's generated connect-RPC handler now that there is no
// auditv1.AuditServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/audit-svc/internal/service"
)

// Handler serves audit-svc's routes.
type Handler struct {
	svc *service.AuditService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.AuditService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/events", h.handleLogEvent)
	h.mux.HandleFunc("/v1/events/batch", h.handleLogEventBatch)
	h.mux.HandleFunc("/v1/logs", h.handleGetAuditLogs)
	h.mux.HandleFunc("/v1/resources/history", h.handleGetResourceHistory)
	h.mux.HandleFunc("/v1/users/activity", h.handleGetUserActivity)
	h.mux.HandleFunc("/v1/stats", h.handleGetAuditStats)
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

func (h *Handler) handleLogEvent(w http.ResponseWriter, r *http.Request) {
	var req service.LogEventRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.LogEvent(r.Context(), &req)
	respond(w, resp, err, "log event")
}

func (h *Handler) handleLogEventBatch(w http.ResponseWriter, r *http.Request) {
	var req service.LogEventBatchRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.LogEventBatch(r.Context(), &req)
	respond(w, resp, err, "log event batch")
}

func (h *Handler) handleGetAuditLogs(w http.ResponseWriter, r *http.Request) {
	var req service.GetAuditLogsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetAuditLogs(r.Context(), &req)
	respond(w, resp, err, "get audit logs")
}

func (h *Handler) handleGetResourceHistory(w http.ResponseWriter, r *http.Request) {
	var req service.GetResourceHistoryRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetResourceHistory(r.Context(), &req)
	respond(w, resp, err, "get resource history")
}

func (h *Handler) handleGetUserActivity(w http.ResponseWriter, r *http.Request) {
	var req service.GetUserActivityRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetUserActivity(r.Context(), &req)
	respond(w, resp, err, "get user activity")
}

func (h *Handler) handleGetAuditStats(w http.ResponseWriter, r *http.Request) {
	var req service.GetAuditStatsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetAuditStats(r.Context(), &req)
	respond(w, resp, err, "get audit stats")
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
