package engine

import (
	"context"
	"errors"
	"testing"

	"mapfnet/services/simulation-svc/internal/solverclient"
)

func TestResilienceEngine_Analyze_AllFeasible(t *testing.T) {
	solver := objectiveFromEdgeCost()
	e := NewResilienceEngine(solver)

	result, err := e.Analyze(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.ScenariosTested != 2 {
		t.Errorf("ScenariosTested = %d, want 2 (one per edge)", result.ScenariosTested)
	}
	if !result.AllFeasible || result.ScenariosInfeasible != 0 {
		t.Errorf("expected all removal scenarios feasible, got %+v", result)
	}
}

func TestResilienceEngine_Analyze_DetectsSinglePointOfFailure(t *testing.T) {
	baseline := sampleRequest()
	solver := &fakeSolver{solve: func(req *solverclient.SolveRequest) (*solverclient.SolveResponse, error) {
		for _, e := range req.Graph.Edges {
			if e.From == 0 && e.To == 1 {
				// baseline retained: feasible
				return &solverclient.SolveResponse{Objective: 1}, nil
			}
		}
		// edge 0->1 removed: no path from source to target
		return nil, errors.New("infeasible")
	}}
	e := NewResilienceEngine(solver)

	result, err := e.Analyze(context.Background(), baseline)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.AllFeasible {
		t.Error("expected AllFeasible = false")
	}
	if len(result.SinglePointsOfFailure) != 1 || result.SinglePointsOfFailure[0] != (EdgeRef{From: 0, To: 1}) {
		t.Errorf("SinglePointsOfFailure = %+v, want [{0 1}]", result.SinglePointsOfFailure)
	}
	found := false
	for _, w := range result.Weaknesses {
		if w.Type == WeaknessSinglePointOfFailure {
			found = true
		}
	}
	if !found {
		t.Error("expected a single-point-of-failure weakness to be reported")
	}
}
