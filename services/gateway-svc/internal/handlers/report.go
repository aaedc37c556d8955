package handlers

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) registerReportRoutes() {
	h.mux.HandleFunc("/v1/reports/solve", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GenerateSolveReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/analytics", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GenerateAnalyticsReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/simulation", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GenerateSimulationReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/summary", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GenerateSummaryReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/comparison", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GenerateComparisonReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/history", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GenerateHistoryReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	// /v1/reports/download reuses GetReport rather than proxying a chunked
	// stream: report-svc exposes no chunked-transfer route, so the gateway
	// returns the stored report whole, same as /v1/reports/get.
	h.mux.HandleFunc("/v1/reports/get", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GetReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/download", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GetReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/info", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GetReportInfo(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/list", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().ListReports(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/delete", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().DeleteReport(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/tags", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().UpdateReportTags(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/stats", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GetRepositoryStats(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
	h.mux.HandleFunc("/v1/reports/formats", proxy(func(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
		resp, err := h.clients.Report().GetSupportedFormats(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeRaw(w, resp)
	}))
}
