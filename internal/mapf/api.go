package mapf

import (
	"context"

	"mapfnet/internal/mapf/build"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// PathResult is the external callable surface's return shape: for
// every agent, an ordered sequence of (time, vertex) pairs and an
// ordered sequence of (time, edge) pairs.
type PathResult struct {
	Paths     map[int]*domain.AgentPath
	Objective float64
	Stats     domain.SolveStatistics
}

// ContinuousTime installs connectivity, timing, and the full static
// pairwise conflict disjunction for every agent pair up front, then
// solves once. This is the "all constraints up front" flavor — see
// ContinuousTimeDynamicConflict for the lazy cutting-plane flavor.
func ContinuousTime(ctx context.Context, cfg *Config, solver milp.Solver) (*PathResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := milp.NewModel()
	vars := NewVarRegistry(model)
	bigM := cfg.ResolveBigM()

	if err := build.Connectivity(model, vars, cfg); err != nil {
		return nil, err
	}
	if err := build.Timing(model, vars, cfg, bigM); err != nil {
		return nil, err
	}
	if err := build.ConflictContinuousStatic(model, vars, cfg, bigM); err != nil {
		return nil, err
	}
	if err := build.Objective(model, vars, cfg, true, bigM); err != nil {
		return nil, err
	}

	sol, err := solver.Solve(ctx, model, nil)
	if err != nil {
		return nil, err
	}
	if sol.Status != milp.StatusOptimal {
		return nil, SolveError(sol.Status)
	}

	paths := parseContinuousResult(sol, vars, cfg, bigM)
	return &PathResult{
		Paths:     paths,
		Objective: sol.Objective,
		Stats: domain.SolveStatistics{
			VertexCount:     cfg.Graph.VertexCount(),
			EdgeCount:       cfg.Graph.EdgeCount(),
			AgentCount:      cfg.Agents.Len(),
			VariableCount:   len(model.Vars),
			ConstraintCount: len(model.Constraints),
			ObjectiveValue:  sol.Objective,
		},
	}, nil
}

// DiscreteTime installs the step-indexed builder and solves once.
func DiscreteTime(ctx context.Context, cfg *Config, solver milp.Solver) (*PathResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := milp.NewModel()
	vars := NewVarRegistry(model)

	if err := build.Discrete(model, vars, cfg); err != nil {
		return nil, err
	}
	if err := build.ObjectiveDiscrete(model, vars, cfg); err != nil {
		return nil, err
	}

	sol, err := solver.Solve(ctx, model, nil)
	if err != nil {
		return nil, err
	}
	if sol.Status != milp.StatusOptimal {
		return nil, SolveError(sol.Status)
	}

	paths := parseDiscreteResult(sol, vars, cfg)
	return &PathResult{
		Paths:     paths,
		Objective: sol.Objective,
		Stats: domain.SolveStatistics{
			VertexCount:     cfg.Graph.VertexCount(),
			EdgeCount:       cfg.Graph.EdgeCount(),
			AgentCount:      cfg.Agents.Len(),
			VariableCount:   len(model.Vars),
			ConstraintCount: len(model.Constraints),
			ObjectiveValue:  sol.Objective,
		},
	}, nil
}
