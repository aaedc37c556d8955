package engine

import (
	"context"
	"fmt"

	"mapfnet/pkg/logger"
	"mapfnet/services/simulation-svc/internal/solverclient"
)

// SensitivityParameter names one parameter to sweep during sensitivity
// analysis.
type SensitivityParameter struct {
	Target        Target  `json:"target"`
	VertexID      int     `json:"vertexId,omitempty"`
	EdgeFrom      int     `json:"edgeFrom,omitempty"`
	EdgeTo        int     `json:"edgeTo,omitempty"`
	MinMultiplier float64 `json:"minMultiplier,omitempty"`
	MaxMultiplier float64 `json:"maxMultiplier,omitempty"`
	Steps         int     `json:"steps,omitempty"`
}

// SensitivityPoint is one sample on a parameter's response curve.
type SensitivityPoint struct {
	Multiplier float64 `json:"multiplier"`
	Objective  float64 `json:"objective"`
}

// SensitivityLevel classifies how strongly the objective responds to a
// parameter.
type SensitivityLevel string

const (
	SensitivityNegligible SensitivityLevel = "negligible"
	SensitivityLow        SensitivityLevel = "low"
	SensitivityMedium     SensitivityLevel = "medium"
	SensitivityHigh       SensitivityLevel = "high"
	SensitivityCritical   SensitivityLevel = "critical"
)

// SensitivityResult is one parameter's full sweep outcome.
type SensitivityResult struct {
	ParameterID      string             `json:"parameterId"`
	Curve            []SensitivityPoint `json:"curve"`
	Elasticity       float64            `json:"elasticity"`
	SensitivityIndex float64            `json:"sensitivityIndex"`
	Level            SensitivityLevel   `json:"level"`
}

// SensitivityEngine sweeps one or more parameters of a baseline request and
// measures how the objective responds to each.
type SensitivityEngine struct {
	solver Solver
}

// NewSensitivityEngine builds a SensitivityEngine bound to solver.
func NewSensitivityEngine(solver Solver) *SensitivityEngine {
	return &SensitivityEngine{solver: solver}
}

// Analyze sweeps every parameter in params and ranks them by sensitivity
// index, most sensitive first.
func (e *SensitivityEngine) Analyze(ctx context.Context, baseline *solverclient.SolveRequest, params []SensitivityParameter) ([]SensitivityResult, error) {
	baseResp, err := e.solver.Solve(ctx, baseline)
	if err != nil {
		return nil, fmt.Errorf("solve baseline: %w", err)
	}

	results := make([]SensitivityResult, 0, len(params))
	for _, p := range params {
		results = append(results, e.analyzeParameter(ctx, baseline, p, baseResp.Objective))
	}
	return results, nil
}

func (e *SensitivityEngine) analyzeParameter(ctx context.Context, baseline *solverclient.SolveRequest, p SensitivityParameter, baseObjective float64) SensitivityResult {
	steps := p.Steps
	if steps <= 1 {
		steps = 10
	}
	minMult, maxMult := p.MinMultiplier, p.MaxMultiplier
	if minMult == 0 && maxMult == 0 {
		minMult, maxMult = 0.5, 1.5
	}
	step := (maxMult - minMult) / float64(steps-1)

	curve := make([]SensitivityPoint, 0, steps)
	var minObj, maxObj float64
	minObj = baseObjective

	for i := 0; i < steps; i++ {
		multiplier := minMult + float64(i)*step
		mod := Modification{
			Type:     ModUpdate,
			Target:   p.Target,
			Kind:     ChangeRelative,
			Value:    multiplier,
			VertexID: p.VertexID,
			EdgeFrom: p.EdgeFrom,
			EdgeTo:   p.EdgeTo,
		}
		modified := ApplyModifications(baseline, []Modification{mod})

		resp, err := e.solver.Solve(ctx, modified)
		objective := 0.0
		if err != nil {
			logger.Log.Warn("sensitivity step failed to solve", "parameter", p.Target, "multiplier", multiplier, "error", err)
		} else {
			objective = resp.Objective
		}
		curve = append(curve, SensitivityPoint{Multiplier: multiplier, Objective: objective})

		if i == 0 || objective < minObj {
			minObj = objective
		}
		if objective > maxObj {
			maxObj = objective
		}
	}

	elasticity := 0.0
	if mid := len(curve) / 2; mid > 0 && mid < len(curve)-1 && baseObjective != 0 {
		dObj := (curve[mid+1].Objective - curve[mid-1].Objective) / baseObjective
		dParam := curve[mid+1].Multiplier - curve[mid-1].Multiplier
		if dParam != 0 {
			elasticity = dObj / dParam
		}
	}

	impactRange := maxObj - minObj
	sensitivityIndex := 0.0
	if baseObjective != 0 {
		sensitivityIndex = impactRange / baseObjective
	}

	return SensitivityResult{
		ParameterID:      parameterID(p),
		Curve:            curve,
		Elasticity:       elasticity,
		SensitivityIndex: sensitivityIndex,
		Level:            classifySensitivity(sensitivityIndex),
	}
}

func parameterID(p SensitivityParameter) string {
	switch p.Target {
	case TargetEdgeCost, TargetEdgeWaitTime:
		return fmt.Sprintf("edge_%d_%d_%s", p.EdgeFrom, p.EdgeTo, p.Target)
	default:
		return fmt.Sprintf("vertex_%d_%s", p.VertexID, p.Target)
	}
}

func classifySensitivity(index float64) SensitivityLevel {
	switch {
	case index < 0.01:
		return SensitivityNegligible
	case index < 0.05:
		return SensitivityLow
	case index < 0.15:
		return SensitivityMedium
	case index < 0.30:
		return SensitivityHigh
	default:
		return SensitivityCritical
	}
}
