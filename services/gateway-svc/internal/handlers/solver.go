package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"mapfnet/pkg/logger"
	"mapfnet/services/gateway-svc/internal/middleware"
)

func (h *Handler) registerSolverRoutes() {
	h.mux.HandleFunc("/v1/solve", proxy(h.handleSolve))
	h.mux.HandleFunc("/v1/solve/batch", h.handleBatchSolve)
	h.mux.HandleFunc("/v1/calculate", h.handleCalculateLogistics)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	resp, err := h.clients.Solver().Solve(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, resp)
}

// algorithmInfo describes a solving mode the gateway advertises to callers;
// solver-svc itself exposes a single /v1/solve route keyed on req.Mode, so
// this catalog lives at the edge rather than round-tripping to fetch it.
type algorithmInfo struct {
	Mode        string `json:"mode"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var supportedModes = []algorithmInfo{
	{Mode: "continuous", Name: "Continuous relaxation", Description: "LP relaxation of the MAPF-MILP model, fastest, fractional flows allowed"},
	{Mode: "continuous_dynamic", Name: "Continuous with conflict cuts", Description: "Continuous relaxation refined by a dynamic conflict-cut loop"},
	{Mode: "discrete", Name: "Discrete branch-and-bound", Description: "Integral solution via branch-and-bound, exact but slower"},
}

func (h *Handler) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"modes": supportedModes})
}

// batchSolveRequest groups several independent solve requests, dispatching
// each to solver-svc sequentially and collecting pass/fail per item.
type batchSolveRequest struct {
	Items []json.RawMessage `json:"items"`
}

type batchSolveResult struct {
	Index             int             `json:"index"`
	Success           bool            `json:"success"`
	ErrorMessage      string          `json:"errorMessage,omitempty"`
	Result            json.RawMessage `json:"result,omitempty"`
	ComputationTimeMs int64           `json:"computationTimeMs"`
}

type batchSolveResponse struct {
	Results     []batchSolveResult `json:"results"`
	TotalTimeMs int64              `json:"totalTimeMs"`
	Successful  int                `json:"successful"`
	Failed      int                `json:"failed"`
}

func (h *Handler) handleBatchSolve(w http.ResponseWriter, r *http.Request) {
	var req batchSolveRequest
	if !decode(w, r, &req) {
		return
	}

	start := time.Now()
	resp := batchSolveResponse{Results: make([]batchSolveResult, len(req.Items))}

	for i, item := range req.Items {
		itemStart := time.Now()
		result, err := h.clients.Solver().Solve(r.Context(), item)
		entry := batchSolveResult{Index: i, ComputationTimeMs: time.Since(itemStart).Milliseconds()}
		if err != nil {
			entry.Success = false
			entry.ErrorMessage = err.Error()
			resp.Failed++
		} else {
			entry.Success = true
			entry.Result = result
			resp.Successful++
		}
		resp.Results[i] = entry
	}

	resp.TotalTimeMs = time.Since(start).Milliseconds()
	writeJSON(w, http.StatusOK, &resp)
}

// calculateLogisticsRequest drives the composite validate -> solve ->
// analyze -> save pipeline in one gateway-level call, the JSON-passthrough
// equivalent of the teacher's CalculateLogistics aggregate RPC.
type calculateLogisticsRequest struct {
	Graph                json.RawMessage `json:"graph"`
	Mode                 string          `json:"mode"`
	SkipValidation       bool            `json:"skipValidation"`
	CalculateCost        bool            `json:"calculateCost"`
	FindBottlenecks      bool            `json:"findBottlenecks"`
	SaveToHistory        bool            `json:"saveToHistory"`
	CalculationName      string          `json:"calculationName"`
	Tags                 []string        `json:"tags"`
}

type calculateLogisticsResponse struct {
	Success      bool            `json:"success"`
	Validation   json.RawMessage `json:"validation,omitempty"`
	Solve        json.RawMessage `json:"solve,omitempty"`
	Analytics    json.RawMessage `json:"analytics,omitempty"`
	CalculationID string         `json:"calculationId,omitempty"`
	Errors       []string        `json:"errors,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`
	TotalTimeMs  int64           `json:"totalTimeMs"`
}

func (h *Handler) handleCalculateLogistics(w http.ResponseWriter, r *http.Request) {
	var req calculateLogisticsRequest
	if !decode(w, r, &req) {
		return
	}

	start := time.Now()
	resp := calculateLogisticsResponse{}
	ctx := r.Context()

	if !req.SkipValidation {
		valReq, _ := json.Marshal(map[string]any{"graph": req.Graph})
		valResp, err := h.clients.Validation().ValidateGraph(ctx, valReq)
		if err != nil {
			resp.Errors = append(resp.Errors, "validation: "+err.Error())
			resp.TotalTimeMs = time.Since(start).Milliseconds()
			writeJSON(w, http.StatusOK, &resp)
			return
		}
		resp.Validation = valResp
	}

	solveReq, _ := json.Marshal(map[string]any{"mode": req.Mode, "graph": json.RawMessage(req.Graph)})
	// The caller's graph already carries agents/edgeCost under the "graph"
	// key in most clients; forward the whole payload through unmodified
	// when it already looks like a full solve request.
	if looksLikeSolveRequest(req.Graph) {
		solveReq = req.Graph
	}

	solveResp, err := h.clients.Solver().Solve(ctx, solveReq)
	if err != nil {
		resp.Errors = append(resp.Errors, "solve: "+err.Error())
		resp.TotalTimeMs = time.Since(start).Milliseconds()
		writeJSON(w, http.StatusOK, &resp)
		return
	}
	resp.Solve = solveResp

	if req.CalculateCost || req.FindBottlenecks {
		analyticsReq, _ := json.Marshal(map[string]any{
			"solution":        solveResp,
			"calculateCost":   req.CalculateCost,
			"findBottlenecks": req.FindBottlenecks,
		})
		analyticsResp, err := h.clients.Analytics().AnalyzeFlow(ctx, analyticsReq)
		if err != nil {
			resp.Warnings = append(resp.Warnings, "analytics: "+err.Error())
		} else {
			resp.Analytics = analyticsResp
		}
	}

	if req.SaveToHistory {
		userID := middleware.GetUserID(ctx)
		if userID == "" {
			userID = "anonymous"
		}
		saveReq, _ := json.Marshal(map[string]any{
			"userId":  userID,
			"name":    req.CalculationName,
			"request": solveReq,
			"result":  solveResp,
			"tags":    req.Tags,
		})
		saveResp, err := h.clients.History().SaveCalculation(ctx, saveReq)
		if err != nil {
			resp.Warnings = append(resp.Warnings, "history: "+err.Error())
		} else {
			var saved struct {
				CalculationID string `json:"calculationId"`
			}
			if err := json.Unmarshal(saveResp, &saved); err == nil {
				resp.CalculationID = saved.CalculationID
			}
		}
	}

	resp.Success = true
	resp.TotalTimeMs = time.Since(start).Milliseconds()

	logger.Log.Info("CalculateLogistics completed",
		"mode", req.Mode,
		"total_time_ms", resp.TotalTimeMs,
	)

	writeJSON(w, http.StatusOK, &resp)
}

func looksLikeSolveRequest(raw json.RawMessage) bool {
	var probe struct {
		Mode  json.RawMessage `json:"mode"`
		Graph json.RawMessage `json:"graph"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Graph != nil
}
