// Package service implements simulation-svc: what-if, Monte Carlo,
// sensitivity, and resilience scenario analysis over a MAPF instance, plus
// discrete time-step playback of an already-solved solution — each
// persisted through repository.SimulationRepository for later retrieval.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/simulation-svc/internal/engine"
	"mapfnet/services/simulation-svc/internal/repository"
	"mapfnet/services/simulation-svc/internal/solverclient"
)

// SimulationService dispatches what-if, Monte Carlo, sensitivity, resilience,
// and playback requests to the engine package, persisting each run.
type SimulationService struct {
	repo    repository.SimulationRepository
	whatIf  *engine.WhatIfEngine
	monte   *engine.MonteCarloEngine
	sens    *engine.SensitivityEngine
	resil   *engine.ResilienceEngine
	version string
}

// NewSimulationService builds a SimulationService wired to solver for
// re-solves and repo for persistence.
func NewSimulationService(repo repository.SimulationRepository, solver engine.Solver, version string) *SimulationService {
	return &SimulationService{
		repo:    repo,
		whatIf:  engine.NewWhatIfEngine(solver),
		monte:   engine.NewMonteCarloEngine(solver),
		sens:    engine.NewSensitivityEngine(solver),
		resil:   engine.NewResilienceEngine(solver),
		version: version,
	}
}

// ---- what-if ----

// RunWhatIfRequest asks for a baseline solve plus a set of named scenarios
// compared against it.
type RunWhatIfRequest struct {
	UserID    string                   `json:"userId,omitempty"`
	Name      string                   `json:"name,omitempty"`
	Baseline  solverclient.SolveRequest `json:"baseline"`
	Scenarios []engine.Scenario        `json:"scenarios"`
}

// RunWhatIfResponse reports the baseline and every scenario's outcome.
type RunWhatIfResponse struct {
	SimulationID string                   `json:"simulationId,omitempty"`
	Baseline     engine.ScenarioResult    `json:"baseline"`
	Scenarios    []engine.ScenarioResult  `json:"scenarios"`
	Comparisons  []engine.Comparison      `json:"comparisons"`
}

// RunWhatIf solves the baseline and every scenario, persisting the run.
func (s *SimulationService) RunWhatIf(ctx context.Context, req *RunWhatIfRequest) (*RunWhatIfResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulationService.RunWhatIf",
		telemetry.WithAttributes(attribute.Int("scenario_count", len(req.Scenarios))),
	)
	defer span.End()
	start := time.Now()

	if len(req.Baseline.Graph.Edges) == 0 && req.Baseline.Graph.VertexCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "baseline graph is required")
	}

	baseline, results, comparisons, err := s.whatIf.Run(ctx, &req.Baseline, req.Scenarios)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "what-if run failed")
	}

	resp := &RunWhatIfResponse{Baseline: baseline, Scenarios: results, Comparisons: comparisons}

	id, err := s.persist(ctx, req.UserID, req.Name, "what_if", &req.Baseline, req, resp, time.Since(start))
	if err != nil {
		logger.Log.Warn("failed to persist what-if run", "error", err)
	} else {
		resp.SimulationID = id
	}
	return resp, nil
}

// ---- monte carlo ----

// RunMonteCarloRequest asks for a Monte Carlo sweep of a baseline request
// under the given uncertainties.
type RunMonteCarloRequest struct {
	UserID        string                    `json:"userId,omitempty"`
	Name          string                    `json:"name,omitempty"`
	Baseline      solverclient.SolveRequest `json:"baseline"`
	Uncertainties []engine.Uncertainty      `json:"uncertainties"`
	Config        engine.MonteCarloConfig   `json:"config,omitempty"`
}

// OutcomeDTO is one Monte Carlo trial's wire-level outcome.
type OutcomeDTO struct {
	Iteration int     `json:"iteration"`
	Objective float64 `json:"objective"`
	Error     string  `json:"error,omitempty"`
}

// RunMonteCarloResponse reports every trial's outcome plus the aggregate
// summary.
type RunMonteCarloResponse struct {
	SimulationID string                   `json:"simulationId,omitempty"`
	Outcomes     []OutcomeDTO             `json:"outcomes"`
	Summary      engine.MonteCarloSummary `json:"summary"`
}

// RunMonteCarlo runs the configured number of perturbed re-solves.
func (s *SimulationService) RunMonteCarlo(ctx context.Context, req *RunMonteCarloRequest) (*RunMonteCarloResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulationService.RunMonteCarlo",
		telemetry.WithAttributes(attribute.Int("iterations", req.Config.Iterations)),
	)
	defer span.End()
	start := time.Now()

	outcomes, summary, err := s.monte.Run(ctx, &req.Baseline, req.Uncertainties, req.Config)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "monte carlo run failed")
	}

	dtos := make([]OutcomeDTO, len(outcomes))
	for i, o := range outcomes {
		dto := OutcomeDTO{Iteration: o.Iteration, Objective: o.Objective}
		if o.Err != nil {
			dto.Error = o.Err.Error()
		}
		dtos[i] = dto
	}

	resp := &RunMonteCarloResponse{Outcomes: dtos, Summary: summary}

	id, err := s.persist(ctx, req.UserID, req.Name, "monte_carlo", &req.Baseline, req, resp, time.Since(start))
	if err != nil {
		logger.Log.Warn("failed to persist monte carlo run", "error", err)
	} else {
		resp.SimulationID = id
	}
	return resp, nil
}

// ---- sensitivity ----

// AnalyzeSensitivityRequest asks for a parameter sweep of a baseline request.
type AnalyzeSensitivityRequest struct {
	UserID     string                       `json:"userId,omitempty"`
	Name       string                       `json:"name,omitempty"`
	Baseline   solverclient.SolveRequest    `json:"baseline"`
	Parameters []engine.SensitivityParameter `json:"parameters"`
}

// AnalyzeSensitivityResponse reports each swept parameter's response curve,
// ranked most sensitive first.
type AnalyzeSensitivityResponse struct {
	SimulationID string                     `json:"simulationId,omitempty"`
	Results      []engine.SensitivityResult `json:"results"`
}

// AnalyzeSensitivity sweeps every requested parameter.
func (s *SimulationService) AnalyzeSensitivity(ctx context.Context, req *AnalyzeSensitivityRequest) (*AnalyzeSensitivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulationService.AnalyzeSensitivity")
	defer span.End()
	start := time.Now()

	if len(req.Parameters) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "at least one parameter is required")
	}

	results, err := s.sens.Analyze(ctx, &req.Baseline, req.Parameters)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "sensitivity analysis failed")
	}
	rankBySensitivity(results)

	resp := &AnalyzeSensitivityResponse{Results: results}

	id, err := s.persist(ctx, req.UserID, req.Name, "sensitivity", &req.Baseline, req, resp, time.Since(start))
	if err != nil {
		logger.Log.Warn("failed to persist sensitivity run", "error", err)
	} else {
		resp.SimulationID = id
	}
	return resp, nil
}

func rankBySensitivity(results []engine.SensitivityResult) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].SensitivityIndex > results[j-1].SensitivityIndex; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

// ---- resilience ----

// AnalyzeResilienceRequest asks for an N-1 resilience sweep of a baseline
// request.
type AnalyzeResilienceRequest struct {
	UserID   string                    `json:"userId,omitempty"`
	Name     string                    `json:"name,omitempty"`
	Baseline solverclient.SolveRequest `json:"baseline"`
}

// AnalyzeResilienceResponse reports the N-1 sweep's outcome.
type AnalyzeResilienceResponse struct {
	SimulationID string                  `json:"simulationId,omitempty"`
	Result       engine.ResilienceResult `json:"result"`
}

// AnalyzeResilience runs the N-1 edge-removal sweep.
func (s *SimulationService) AnalyzeResilience(ctx context.Context, req *AnalyzeResilienceRequest) (*AnalyzeResilienceResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "SimulationService.AnalyzeResilience")
	defer span.End()
	start := time.Now()

	result, err := s.resil.Analyze(ctx, &req.Baseline)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "resilience analysis failed")
	}

	resp := &AnalyzeResilienceResponse{Result: result}

	id, err := s.persist(ctx, req.UserID, req.Name, "resilience", &req.Baseline, req, resp, time.Since(start))
	if err != nil {
		logger.Log.Warn("failed to persist resilience run", "error", err)
	} else {
		resp.SimulationID = id
	}
	return resp, nil
}

// ---- playback ----

// RunPlaybackRequest replays an already-solved set of agent paths as a
// discrete time-step sequence.
type RunPlaybackRequest struct {
	Paths  map[int]*domain.AgentPath `json:"paths"`
	Config engine.PlaybackConfig    `json:"config,omitempty"`
}

// RunPlaybackResponse is the resulting step-by-step playback.
type RunPlaybackResponse struct {
	Steps []engine.TimeStep `json:"steps"`
}

// RunPlayback replays req.Paths one time step at a time. Unlike the other
// analyses it does not call solver-svc or persist anything — it is a pure
// function of an already-computed solution.
func (s *SimulationService) RunPlayback(ctx context.Context, req *RunPlaybackRequest) (*RunPlaybackResponse, error) {
	_, span := telemetry.StartSpan(ctx, "SimulationService.RunPlayback",
		telemetry.WithAttributes(attribute.Int("agent_count", len(req.Paths))),
	)
	defer span.End()

	if len(req.Paths) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "paths is required")
	}
	return &RunPlaybackResponse{Steps: engine.RunPlayback(req.Paths, req.Config)}, nil
}

// ---- persisted-run retrieval ----

// GetSimulation returns one persisted run by ID, scoped to userID.
func (s *SimulationService) GetSimulation(ctx context.Context, userID, id string) (*repository.Simulation, error) {
	sim, err := s.repo.GetByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return sim, nil
}

// DeleteSimulation removes one persisted run.
func (s *SimulationService) DeleteSimulation(ctx context.Context, userID, id string) error {
	sim, err := s.repo.GetByUserAndID(ctx, userID, id)
	if err != nil {
		return translateRepoErr(err)
	}
	if err := s.repo.Delete(ctx, sim.ID); err != nil {
		return translateRepoErr(err)
	}
	return nil
}

// ListSimulations lists a user's persisted runs, optionally filtered by
// simulation type.
func (s *SimulationService) ListSimulations(ctx context.Context, userID, simType string, opts *repository.ListOptions) ([]*repository.SimulationSummary, int64, error) {
	return s.repo.List(ctx, userID, simType, opts)
}

func translateRepoErr(err error) error {
	switch err {
	case repository.ErrSimulationNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "simulation not found")
	case repository.ErrAccessDenied:
		return pkgerrors.New(pkgerrors.CodePermissionDenied, "access denied")
	default:
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "repository error")
	}
}

// ---- health ----

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health reports service liveness.
func (s *SimulationService) Health(_ context.Context) *HealthResponse {
	return &HealthResponse{Status: "SERVING", Version: s.version}
}

// persist stores one completed analysis run for later retrieval.
func (s *SimulationService) persist(ctx context.Context, userID, name, simType string, baseline *solverclient.SolveRequest, req, resp any, duration time.Duration) (string, error) {
	if s.repo == nil {
		return "", nil
	}

	graphData, err := json.Marshal(baseline.Graph)
	if err != nil {
		return "", fmt.Errorf("marshal graph: %w", err)
	}
	requestData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	responseData, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("marshal response: %w", err)
	}

	sim := &repository.Simulation{
		UserID:            userID,
		Name:              name,
		SimulationType:    simType,
		VertexCount:       baseline.Graph.VertexCount,
		EdgeCount:         len(baseline.Graph.Edges),
		ComputationTimeMs: float64(duration.Microseconds()) / 1000,
		GraphData:         graphData,
		RequestData:       requestData,
		ResponseData:      responseData,
	}
	if err := s.repo.Create(ctx, sim); err != nil {
		return "", err
	}
	return sim.ID, nil
}
