package engine

import (
	"context"
	"testing"
)

func TestMonteCarloEngine_Run(t *testing.T) {
	solver := objectiveFromEdgeCost()
	e := NewMonteCarloEngine(solver)

	outcomes, summary, err := e.Run(context.Background(), sampleRequest(), []Uncertainty{
		{Target: TargetEdgeCost, EdgeFrom: 0, EdgeTo: 1, StdDevFraction: 0.1},
	}, MonteCarloConfig{Iterations: 32, Parallel: true, Seed: 7})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 32 {
		t.Fatalf("len(outcomes) = %d, want 32", len(outcomes))
	}
	if summary.Iterations != 32 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 32 iterations, 0 failed", summary)
	}
	if summary.Mean <= 0 {
		t.Errorf("Mean = %v, want > 0", summary.Mean)
	}
	if summary.CILow > summary.Mean || summary.CIHigh < summary.Mean {
		t.Errorf("confidence interval [%v, %v] does not bracket mean %v", summary.CILow, summary.CIHigh, summary.Mean)
	}
}

func TestMonteCarloEngine_Run_Serial(t *testing.T) {
	solver := objectiveFromEdgeCost()
	e := NewMonteCarloEngine(solver)

	_, summary, err := e.Run(context.Background(), sampleRequest(), nil, MonteCarloConfig{Iterations: 10, Parallel: false, Seed: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Mean != 3 {
		t.Errorf("Mean = %v, want 3 (no uncertainties perturb the baseline cost)", summary.Mean)
	}
}
