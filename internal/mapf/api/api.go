// Package api is the external callable surface: the three top-level
// entry points spec.md §6 names (continuous-time, continuous-time
// with the dynamic-conflict loop, discrete-time), each taking either
// positional parameters bundled into a *mapf.Config or the config
// directly. It exists as its own package — rather than living inside
// internal/mapf itself — because the dynamic-conflict flavor pulls in
// internal/mapf/dynamic, which already depends on internal/mapf;
// having internal/mapf depend back on it would cycle.
package api

import (
	"context"

	"mapfnet/internal/mapf"
	"mapfnet/internal/mapf/dynamic"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// Result is the unified return shape across all three flavors.
type Result struct {
	Paths     map[int]*domain.AgentPath
	Objective float64
	Stats     domain.SolveStatistics
}

// ContinuousTime installs connectivity, timing, and the full static
// pairwise conflict disjunction for every agent pair, then solves once.
func ContinuousTime(ctx context.Context, cfg *mapf.Config, solver milp.Solver) (*Result, error) {
	r, err := mapf.ContinuousTime(ctx, cfg, solver)
	if err != nil {
		return nil, err
	}
	return &Result{Paths: r.Paths, Objective: r.Objective, Stats: r.Stats}, nil
}

// ContinuousTimeDynamicConflict runs the signature lazy cutting-plane
// loop (Component I): cost-only solve, early-exit when agents are
// already disjoint, else timing-aware solve/detect/mutate until no
// conflict remains.
func ContinuousTimeDynamicConflict(ctx context.Context, cfg *mapf.Config, solver milp.Solver) (*Result, error) {
	r, err := dynamic.Run(ctx, cfg, solver)
	if err != nil {
		return nil, err
	}
	return &Result{Paths: r.Paths, Objective: r.Objective, Stats: r.Stats}, nil
}

// DiscreteTime installs the step-indexed builder and solves once.
func DiscreteTime(ctx context.Context, cfg *mapf.Config, solver milp.Solver) (*Result, error) {
	r, err := mapf.DiscreteTime(ctx, cfg, solver)
	if err != nil {
		return nil, err
	}
	return &Result{Paths: r.Paths, Objective: r.Objective, Stats: r.Stats}, nil
}
