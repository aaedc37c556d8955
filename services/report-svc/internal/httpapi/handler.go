// Package httpapi fronts report-svc over plain JSON-over-HTTP, replacing
// the teacher's generated connect-RPC handler now that there is no
// reportv1.ReportServiceHandler to implement.
package httpapi

import (
	"encoding/json"
	"net/http"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/logger"
	"mapfnet/services/report-svc/internal/service"
)

// Handler serves report-svc's routes.
type Handler struct {
	svc *service.ReportService
	mux *http.ServeMux
}

// New builds a Handler wired to svc.
func New(svc *service.ReportService) *Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}
	h.mux.HandleFunc("/v1/reports/solve", h.handleGenerateSolveReport)
	h.mux.HandleFunc("/v1/reports/analytics", h.handleGenerateAnalyticsReport)
	h.mux.HandleFunc("/v1/reports/simulation", h.handleGenerateSimulationReport)
	h.mux.HandleFunc("/v1/reports/summary", h.handleGenerateSummaryReport)
	h.mux.HandleFunc("/v1/reports/comparison", h.handleGenerateComparisonReport)
	h.mux.HandleFunc("/v1/reports/history", h.handleGenerateHistoryReport)
	h.mux.HandleFunc("/v1/reports/get", h.handleGetReport)
	h.mux.HandleFunc("/v1/reports/info", h.handleGetReportInfo)
	h.mux.HandleFunc("/v1/reports/list", h.handleListReports)
	h.mux.HandleFunc("/v1/reports/delete", h.handleDeleteReport)
	h.mux.HandleFunc("/v1/reports/tags", h.handleUpdateReportTags)
	h.mux.HandleFunc("/v1/reports/stats", h.handleGetRepositoryStats)
	h.mux.HandleFunc("/v1/reports/formats", h.handleGetSupportedFormats)
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

func (h *Handler) handleGenerateSolveReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateSolveReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GenerateSolveReport(r.Context(), &req)
	respond(w, resp, err, "generate solve report")
}

func (h *Handler) handleGenerateAnalyticsReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateAnalyticsReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GenerateAnalyticsReport(r.Context(), &req)
	respond(w, resp, err, "generate analytics report")
}

func (h *Handler) handleGenerateSimulationReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateSimulationReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GenerateSimulationReport(r.Context(), &req)
	respond(w, resp, err, "generate simulation report")
}

func (h *Handler) handleGenerateSummaryReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateSummaryReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GenerateSummaryReport(r.Context(), &req)
	respond(w, resp, err, "generate summary report")
}

func (h *Handler) handleGenerateComparisonReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateComparisonReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GenerateComparisonReport(r.Context(), &req)
	respond(w, resp, err, "generate comparison report")
}

func (h *Handler) handleGenerateHistoryReport(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateHistoryReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GenerateHistoryReport(r.Context(), &req)
	respond(w, resp, err, "generate history report")
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	var req service.GetReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetReport(r.Context(), &req)
	respond(w, resp, err, "get report")
}

func (h *Handler) handleGetReportInfo(w http.ResponseWriter, r *http.Request) {
	var req service.GetReportInfoRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetReportInfo(r.Context(), &req)
	respond(w, resp, err, "get report info")
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	var req service.ListReportsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.ListReports(r.Context(), &req)
	respond(w, resp, err, "list reports")
}

func (h *Handler) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteReportRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.DeleteReport(r.Context(), &req)
	respond(w, resp, err, "delete report")
}

func (h *Handler) handleUpdateReportTags(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReportTagsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.UpdateReportTags(r.Context(), &req)
	respond(w, resp, err, "update report tags")
}

func (h *Handler) handleGetRepositoryStats(w http.ResponseWriter, r *http.Request) {
	var req service.GetRepositoryStatsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.GetRepositoryStats(r.Context(), &req)
	respond(w, resp, err, "get repository stats")
}

func (h *Handler) handleGetSupportedFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetSupportedFormats(r.Context()))
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
