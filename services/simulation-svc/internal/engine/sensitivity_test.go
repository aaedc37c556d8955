package engine

import (
	"context"
	"testing"
)

func TestSensitivityEngine_Analyze(t *testing.T) {
	solver := objectiveFromEdgeCost()
	e := NewSensitivityEngine(solver)

	results, err := e.Analyze(context.Background(), sampleRequest(), []SensitivityParameter{
		{Target: TargetEdgeCost, EdgeFrom: 0, EdgeTo: 1, MinMultiplier: 0.5, MaxMultiplier: 1.5, Steps: 5},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	r := results[0]
	if len(r.Curve) != 5 {
		t.Errorf("len(Curve) = %d, want 5", len(r.Curve))
	}
	if r.SensitivityIndex <= 0 {
		t.Errorf("SensitivityIndex = %v, want > 0 since the edge cost sweep changes the objective", r.SensitivityIndex)
	}
}

func TestClassifySensitivity(t *testing.T) {
	cases := map[float64]SensitivityLevel{
		0.005: SensitivityNegligible,
		0.03:  SensitivityLow,
		0.1:   SensitivityMedium,
		0.2:   SensitivityHigh,
		0.5:   SensitivityCritical,
	}
	for index, want := range cases {
		if got := classifySensitivity(index); got != want {
			t.Errorf("classifySensitivity(%v) = %v, want %v", index, got, want)
		}
	}
}
