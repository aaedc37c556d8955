// Package service provides the HTTP service implementation for the solver
// microservice: it turns a wire-level MAPF configuration into a
// mapf.Config, dispatches it to one of the three internal/mapf/api solve
// flavors, and returns the resulting per-agent paths.
//
// # Thread Safety
//
// The service is designed for concurrent use. Each request builds its own
// milp.Model from scratch; the shared BranchAndBound solver carries no
// per-solve state.
//
// # Graceful Shutdown
//
// The service supports graceful shutdown via the Shutdown() method, which
// waits for all in-flight requests to complete before returning.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"mapfnet/internal/mapf"
	"mapfnet/internal/mapf/api"
	"mapfnet/internal/milp"
	"mapfnet/pkg/apperror"
	"mapfnet/pkg/cache"
	"mapfnet/pkg/domain"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/telemetry"
)

// Solve mode names accepted on the wire.
const (
	ModeContinuous        = "continuous"
	ModeContinuousDynamic = "continuous_dynamic"
	ModeDiscrete          = "discrete"
)

// MaxGraphVertices bounds the vertex count of an incoming graph — past
// this, the MILP's variable count grows too fast for a synchronous
// request to be a sane API shape.
const MaxGraphVertices = 50_000

// GraphDTO is the wire representation of a MAPF graph: vertices are
// positional (1..VertexCount), so only the edge list needs spelling out.
type GraphDTO struct {
	VertexCount int       `json:"vertex_count"`
	Edges       []EdgeDTO `json:"edges"`
}

// EdgeDTO is one directed arc of a GraphDTO.
type EdgeDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AgentDTO is one wire-level path-finding request.
type AgentDTO struct {
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	Departure float64 `json:"departure"`
}

// SolveRequest is the full wire request for one solve call.
type SolveRequest struct {
	Mode   string     `json:"mode"`
	Graph  GraphDTO   `json:"graph"`
	Agents []AgentDTO `json:"agents"`

	VertexCost     map[int]float64    `json:"vertex_cost,omitempty"`
	EdgeCost       map[string]float64 `json:"edge_cost,omitempty"`
	VertexWaitTime map[int]float64    `json:"vertex_wait_time,omitempty"`
	EdgeWaitTime   map[string]float64 `json:"edge_wait_time,omitempty"`

	Integer              bool    `json:"integer,omitempty"`
	SwapConstraint       bool    `json:"swap_constraint,omitempty"`
	BigM                 float64 `json:"big_m,omitempty"`
	TimeoutSeconds       float64 `json:"timeout_seconds,omitempty"`
	Epsilon              float64 `json:"epsilon,omitempty"`
	MaxDynamicIterations int     `json:"max_dynamic_iterations,omitempty"`
	TimeDuration         int     `json:"time_duration,omitempty"`
}

// SolveResponse is the full wire response for one solve call.
type SolveResponse struct {
	Paths     map[int]*domain.AgentPath `json:"paths"`
	Objective float64                   `json:"objective"`
	Stats     domain.SolveStatistics    `json:"stats"`
}

// ServiceConfig tunes the service's concurrency and shutdown behavior.
type ServiceConfig struct {
	MaxConcurrentSolves int
	SolverTimeout       time.Duration
}

// DefaultServiceConfig returns sane defaults.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxConcurrentSolves: 32,
		SolverTimeout:       30 * time.Second,
	}
}

type requestStats struct {
	total   atomic.Int64
	active  atomic.Int64
	failed  atomic.Int64
	cacheOK atomic.Int64
	cacheNo atomic.Int64
}

// SolverService dispatches wire-level solve requests to
// internal/mapf/api, optionally serving from SolverCache first.
type SolverService struct {
	version     string
	config      *ServiceConfig
	solver      milp.Solver
	solverCache *cache.SolverCache

	stats      requestStats
	sem        chan struct{}
	wg         sync.WaitGroup
	shutdownCh chan struct{}
	closeOnce  sync.Once
}

// NewSolverService builds a SolverService with default configuration.
func NewSolverService(version string, solverCache *cache.SolverCache) *SolverService {
	return NewSolverServiceWithConfig(version, solverCache, DefaultServiceConfig())
}

// NewSolverServiceWithConfig builds a SolverService with custom configuration.
func NewSolverServiceWithConfig(version string, solverCache *cache.SolverCache, cfg *ServiceConfig) *SolverService {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &SolverService{
		version:     version,
		config:      cfg,
		solver:      milp.NewBranchAndBound(),
		solverCache: solverCache,
		sem:         make(chan struct{}, cfg.MaxConcurrentSolves),
		shutdownCh:  make(chan struct{}),
	}
}

// Solve builds a mapf.Config from req, dispatches it to the solve mode
// req.Mode names, and returns the resulting paths — consulting the
// solver cache first and populating it after an uncached solve.
func (s *SolverService) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	if err := s.trackRequest(ctx); err != nil {
		return nil, err
	}
	defer s.untrackRequest()

	ctx, span := telemetry.StartSpan(ctx, "SolverService.Solve",
		telemetry.WithAttributes(attribute.String("mode", req.Mode)),
	)
	defer span.End()

	cfg, err := buildConfig(req)
	if err != nil {
		s.stats.failed.Add(1)
		telemetry.SetError(ctx, err)
		return nil, err
	}

	span.SetAttributes(telemetry.GraphAttributes(cfg.Graph.VertexCount(), cfg.Graph.EdgeCount(), 0, 0)...)

	if cached, found := s.checkCache(ctx, cfg, req.Mode); found {
		return cached, nil
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, apperror.Wrap(ctx.Err(), apperror.CodeTimeout, "solve queue wait cancelled")
	}

	solveCtx := ctx
	var cancel context.CancelFunc
	if s.config.SolverTimeout > 0 {
		solveCtx, cancel = context.WithTimeout(ctx, s.config.SolverTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.dispatch(solveCtx, req.Mode, cfg)
	duration := time.Since(start)
	if err != nil {
		s.stats.failed.Add(1)
		telemetry.SetError(ctx, err)
		return nil, err
	}

	m := metrics.Get()
	m.RecordSolveOperation(req.Mode, true, duration, result.Objective)
	m.RecordDynamicLoop(req.Mode, result.Stats.DynamicIterations, result.Stats.ConflictCutsAdded)
	m.RecordGraphSize(req.Mode, cfg.Graph.VertexCount(), cfg.Graph.EdgeCount())
	span.SetAttributes(telemetry.AlgorithmAttributes(req.Mode, result.Stats.DynamicIterations, 0, result.Objective)...)

	resp := &SolveResponse{Paths: result.Paths, Objective: result.Objective, Stats: result.Stats}

	if s.solverCache != nil {
		if err := s.solverCache.SetFromPathResult(context.Background(), cfg, req.Mode, result.Objective, result.Stats, result.Paths, 0); err != nil {
			logger.Log.Warn("failed to populate solver cache", "error", err)
		}
	}

	return resp, nil
}

func (s *SolverService) dispatch(ctx context.Context, mode string, cfg *mapf.Config) (*api.Result, error) {
	switch mode {
	case ModeContinuous, "":
		return api.ContinuousTime(ctx, cfg, s.solver)
	case ModeContinuousDynamic:
		return api.ContinuousTimeDynamicConflict(ctx, cfg, s.solver)
	case ModeDiscrete:
		return api.DiscreteTime(ctx, cfg, s.solver)
	default:
		return nil, apperror.New(apperror.CodeInvalidArgument, fmt.Sprintf("unknown solve mode %q", mode))
	}
}

func (s *SolverService) checkCache(ctx context.Context, cfg *mapf.Config, mode string) (*SolveResponse, bool) {
	if s.solverCache == nil {
		return nil, false
	}
	cached, found, err := s.solverCache.Get(ctx, cfg, mode)
	if err != nil || !found {
		s.stats.cacheNo.Add(1)
		metrics.Get().RecordCacheLookup(false)
		return nil, false
	}
	s.stats.cacheOK.Add(1)
	metrics.Get().RecordCacheLookup(true)
	return &SolveResponse{Paths: cached.Paths, Objective: cached.Objective, Stats: cached.Stats}, true
}

func (s *SolverService) trackRequest(ctx context.Context) error {
	select {
	case <-s.shutdownCh:
		return apperror.New(apperror.CodeInternal, "service is shutting down")
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.wg.Add(1)
	s.stats.total.Add(1)
	s.stats.active.Add(1)
	return nil
}

func (s *SolverService) untrackRequest() {
	s.stats.active.Add(-1)
	s.wg.Done()
}

// Shutdown waits for in-flight solves to complete before returning.
func (s *SolverService) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.shutdownCh) })
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildConfig converts a wire SolveRequest into a mapf.Config, validating
// the graph and agent set up front.
func buildConfig(req *SolveRequest) (*mapf.Config, error) {
	if req.Graph.VertexCount <= 0 {
		return nil, apperror.New(apperror.CodeEmptyGraph, "graph has no vertices")
	}
	if req.Graph.VertexCount > MaxGraphVertices {
		return nil, apperror.New(apperror.CodeInvalidGraph, fmt.Sprintf("graph has too many vertices: %d > %d", req.Graph.VertexCount, MaxGraphVertices))
	}

	g := domain.NewGraph(req.Graph.VertexCount)
	for _, e := range req.Graph.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidGraph, "invalid edge")
		}
	}

	agents := make([]domain.Agent, 0, len(req.Agents))
	for _, a := range req.Agents {
		agents = append(agents, domain.Agent{Source: a.Source, Target: a.Target, Departure: a.Departure})
	}
	agentSet, err := domain.NewAgentSet(agents)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid agent set")
	}
	if err := agentSet.ValidateAgainst(g); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidVertex, "agent references vertex outside graph")
	}

	edgeCost, err := parseEdgeTensor(req.EdgeCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid edge_cost key")
	}
	edgeWait, err := parseEdgeTensor(req.EdgeWaitTime)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid edge_wait_time key")
	}

	cfg := &mapf.Config{
		Graph:                g,
		Agents:               agentSet,
		VertexCost:           domain.NewSharedVertexTensor(req.VertexCost),
		EdgeCost:             domain.NewSharedEdgeTensor(edgeCost),
		VertexWaitTime:       domain.NewSharedVertexTensor(req.VertexWaitTime),
		EdgeWaitTime:         domain.NewSharedEdgeTensor(edgeWait),
		Integer:              req.Integer,
		SwapConstraint:       req.SwapConstraint,
		BigM:                 req.BigM,
		TimeoutSeconds:       req.TimeoutSeconds,
		Epsilon:              req.Epsilon,
		MaxDynamicIterations: req.MaxDynamicIterations,
		TimeDuration:         req.TimeDuration,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseEdgeTensor converts "from:to" -> value wire keys into EdgeKey map.
func parseEdgeTensor(in map[string]float64) (map[domain.EdgeKey]float64, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[domain.EdgeKey]float64, len(in))
	for k, v := range in {
		parts := strings.SplitN(k, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("edge key %q must be \"from:to\"", k)
		}
		var from, to int
		if _, err := fmt.Sscanf(parts[0], "%d", &from); err != nil {
			return nil, fmt.Errorf("edge key %q has non-integer from", k)
		}
		if _, err := fmt.Sscanf(parts[1], "%d", &to); err != nil {
			return nil, fmt.Errorf("edge key %q has non-integer to", k)
		}
		out[domain.EdgeKey{From: from, To: to}] = v
	}
	return out, nil
}
