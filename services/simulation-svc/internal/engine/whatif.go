package engine

import (
	"context"
	"fmt"

	"mapfnet/services/simulation-svc/internal/solverclient"
)

// Scenario is one named what-if: a baseline request perturbed by a set of
// modifications, to be re-solved and compared against the baseline.
type Scenario struct {
	Name          string         `json:"name"`
	Modifications []Modification `json:"modifications"`
}

// ScenarioResult is one scenario's solved outcome.
type ScenarioResult struct {
	Name      string  `json:"name"`
	Objective float64 `json:"objective"`
	Makespan  float64 `json:"makespan"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
}

// ImpactLevel classifies how much a scenario's objective moved relative to
// the baseline.
type ImpactLevel string

const (
	ImpactNone     ImpactLevel = "none"
	ImpactLow      ImpactLevel = "low"
	ImpactMedium   ImpactLevel = "medium"
	ImpactHigh     ImpactLevel = "high"
	ImpactCritical ImpactLevel = "critical"
)

// Comparison measures how a scenario's result differs from the baseline.
type Comparison struct {
	ObjectiveChange        float64     `json:"objectiveChange"`
	ObjectiveChangePercent float64     `json:"objectiveChangePercent"`
	MakespanChange         float64     `json:"makespanChange"`
	ImpactLevel            ImpactLevel `json:"impactLevel"`
	Summary                string      `json:"summary"`
}

// WhatIfEngine re-solves a baseline SolveRequest under a set of named
// scenarios and reports how each compares.
type WhatIfEngine struct {
	solver Solver
}

// NewWhatIfEngine builds a WhatIfEngine bound to solver.
func NewWhatIfEngine(solver Solver) *WhatIfEngine {
	return &WhatIfEngine{solver: solver}
}

// Run solves baseline and every scenario, returning the baseline result, one
// result per scenario, and a comparison of each scenario against baseline.
func (e *WhatIfEngine) Run(ctx context.Context, baseline *solverclient.SolveRequest, scenarios []Scenario) (ScenarioResult, []ScenarioResult, []Comparison, error) {
	baseResp, err := e.solver.Solve(ctx, baseline)
	if err != nil {
		return ScenarioResult{}, nil, nil, fmt.Errorf("solve baseline: %w", err)
	}
	baseResult := toScenarioResult(baseResp, "baseline")

	results := make([]ScenarioResult, 0, len(scenarios))
	comparisons := make([]Comparison, 0, len(scenarios))
	for _, sc := range scenarios {
		modified := ApplyModifications(baseline, sc.Modifications)
		resp, err := e.solver.Solve(ctx, modified)
		if err != nil {
			results = append(results, ScenarioResult{Name: sc.Name, Error: err.Error()})
			comparisons = append(comparisons, Compare(baseResult, ScenarioResult{Name: sc.Name, Error: err.Error()}))
			continue
		}
		result := toScenarioResult(resp, sc.Name)
		results = append(results, result)
		comparisons = append(comparisons, Compare(baseResult, result))
	}

	return baseResult, results, comparisons, nil
}

func toScenarioResult(resp *solverclient.SolveResponse, name string) ScenarioResult {
	if resp == nil {
		return ScenarioResult{Name: name, Status: "failed"}
	}
	return ScenarioResult{
		Name:      name,
		Objective: resp.Objective,
		Makespan:  makespan(resp),
		Status:    "solved",
	}
}

func makespan(resp *solverclient.SolveResponse) float64 {
	var max float64
	for _, p := range resp.Paths {
		if p == nil {
			continue
		}
		if a := p.ArrivalAt(); a > max {
			max = a
		}
	}
	return max
}

// Compare measures result against baseline and classifies the impact.
func Compare(baseline, result ScenarioResult) Comparison {
	if result.Error != "" {
		return Comparison{ImpactLevel: ImpactCritical, Summary: fmt.Sprintf("scenario %q failed to solve: %s", result.Name, result.Error)}
	}

	objChange := result.Objective - baseline.Objective
	objChangePercent := 0.0
	if baseline.Objective != 0 {
		objChangePercent = (objChange / baseline.Objective) * 100
	}
	makespanChange := result.Makespan - baseline.Makespan

	level := classifyImpact(objChangePercent)
	return Comparison{
		ObjectiveChange:        objChange,
		ObjectiveChangePercent: objChangePercent,
		MakespanChange:         makespanChange,
		ImpactLevel:            level,
		Summary:                summarizeImpact(result.Name, objChangePercent, level),
	}
}

func classifyImpact(changePercent float64) ImpactLevel {
	abs := changePercent
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 1:
		return ImpactNone
	case abs < 5:
		return ImpactLow
	case abs < 15:
		return ImpactMedium
	case abs < 30:
		return ImpactHigh
	default:
		return ImpactCritical
	}
}

func summarizeImpact(name string, changePercent float64, level ImpactLevel) string {
	dir := "increased"
	if changePercent < 0 {
		dir = "decreased"
	}
	abs := changePercent
	if abs < 0 {
		abs = -abs
	}
	switch level {
	case ImpactNone:
		return fmt.Sprintf("scenario %q leaves the objective effectively unchanged", name)
	default:
		return fmt.Sprintf("scenario %q: objective %s by %.1f%% (%s impact)", name, dir, abs, level)
	}
}
