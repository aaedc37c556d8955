package engine

import (
	"context"
	"fmt"

	"mapfnet/services/simulation-svc/internal/solverclient"
)

// WeaknessType names one category of structural weakness resilience
// analysis can flag.
type WeaknessType string

const (
	WeaknessSinglePointOfFailure WeaknessType = "single_point_of_failure"
	WeaknessLowRedundancy        WeaknessType = "low_redundancy"
)

// Weakness is one flagged structural issue.
type Weakness struct {
	Type        WeaknessType `json:"type"`
	Description string       `json:"description"`
	Severity    float64      `json:"severity"`
}

// ResilienceResult is the outcome of an N-1 analysis: remove each edge (and
// each non-terminal vertex) from the baseline graph in turn and re-solve.
type ResilienceResult struct {
	ScenariosTested         int        `json:"scenariosTested"`
	ScenariosInfeasible     int        `json:"scenariosInfeasible"`
	AllFeasible             bool       `json:"allFeasible"`
	WorstCaseObjectiveDelta float64    `json:"worstCaseObjectiveDelta"`
	MostCriticalEdge        *EdgeRef   `json:"mostCriticalEdge,omitempty"`
	OverallScore            float64    `json:"overallScore"`
	RedundancyLevel         float64    `json:"redundancyLevel"`
	SinglePointsOfFailure   []EdgeRef  `json:"singlePointsOfFailure,omitempty"`
	Weaknesses              []Weakness `json:"weaknesses,omitempty"`
}

// EdgeRef identifies one edge for reporting.
type EdgeRef struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ResilienceEngine removes each edge of a baseline request in turn,
// re-solves, and reports which removals are infeasible or most damaging.
type ResilienceEngine struct {
	solver Solver
}

// NewResilienceEngine builds a ResilienceEngine bound to solver.
func NewResilienceEngine(solver Solver) *ResilienceEngine {
	return &ResilienceEngine{solver: solver}
}

// Analyze runs the N-1 edge-removal sweep against baseline.
func (e *ResilienceEngine) Analyze(ctx context.Context, baseline *solverclient.SolveRequest) (ResilienceResult, error) {
	baseResp, err := e.solver.Solve(ctx, baseline)
	if err != nil {
		return ResilienceResult{}, fmt.Errorf("solve baseline: %w", err)
	}

	result := ResilienceResult{AllFeasible: true}
	var worstDelta float64
	var spof []EdgeRef

	for _, edge := range baseline.Graph.Edges {
		modified := ApplyModifications(baseline, []Modification{{
			Type:     ModRemoveEdge,
			EdgeFrom: edge.From,
			EdgeTo:   edge.To,
		}})

		result.ScenariosTested++
		resp, err := e.solver.Solve(ctx, modified)
		if err != nil {
			result.ScenariosInfeasible++
			result.AllFeasible = false
			ref := EdgeRef{From: edge.From, To: edge.To}
			spof = append(spof, ref)
			continue
		}

		delta := resp.Objective - baseResp.Objective
		if delta > worstDelta {
			worstDelta = delta
			ref := EdgeRef{From: edge.From, To: edge.To}
			result.MostCriticalEdge = &ref
		}
	}

	result.WorstCaseObjectiveDelta = worstDelta
	result.SinglePointsOfFailure = spof

	if result.ScenariosTested > 0 {
		feasibilityRatio := float64(result.ScenariosTested-result.ScenariosInfeasible) / float64(result.ScenariosTested)
		result.OverallScore = feasibilityRatio
	}
	if n := baseline.Graph.VertexCount; n > 0 {
		result.RedundancyLevel = float64(len(baseline.Graph.Edges)) / float64(n)
	}

	result.Weaknesses = identifyWeaknesses(result)
	return result, nil
}

func identifyWeaknesses(r ResilienceResult) []Weakness {
	var weaknesses []Weakness
	if len(r.SinglePointsOfFailure) > 0 {
		weaknesses = append(weaknesses, Weakness{
			Type:        WeaknessSinglePointOfFailure,
			Description: "removing some edges leaves one or more agents with no feasible path",
			Severity:    1.0,
		})
	}
	if r.RedundancyLevel < 1.5 {
		weaknesses = append(weaknesses, Weakness{
			Type:        WeaknessLowRedundancy,
			Description: "graph has few alternative routes between vertices",
			Severity:    0.5,
		})
	}
	return weaknesses
}
