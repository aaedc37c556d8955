package validators

import "fmt"

// Known solve modes, mirrored from solver-svc without importing it (the
// two services are independent deployables).
const (
	ModeContinuous        = "continuous"
	ModeContinuousDynamic = "continuous_dynamic"
	ModeDiscrete          = "discrete"
)

// ValidateForMode estimates a solve mode's variable count and warns
// about combinations known to blow up the MILP before a caller spends a
// solver timeout discovering it the hard way.
func ValidateForMode(vertexCount, edgeCount, agentCount int, mode string, timeDuration int) *ModeValidationResult {
	result := &ModeValidationResult{IsCompatible: true, Issues: []string{}, Recommendations: []string{}}

	a, v, e := int64(agentCount), int64(vertexCount), int64(edgeCount)

	switch mode {
	case ModeContinuous, "":
		result.Complexity = &ModeComplexity{
			TimeComplexity:     fmt.Sprintf("O(A·E) binary pairs ≈ O(%d)", a*e),
			SpaceComplexity:    fmt.Sprintf("O(A·E) ≈ O(%d)", a*e),
			EstimatedVariables: a * e,
			Recommendation:     "one-shot MILP, no replan loop — default choice for small conflict counts",
		}
		if a*e > 200_000 {
			result.Recommendations = append(result.Recommendations,
				"large variable count: consider continuous_dynamic to build conflict constraints lazily")
		}

	case ModeContinuousDynamic:
		result.Complexity = &ModeComplexity{
			TimeComplexity:     fmt.Sprintf("O(A·E) per iteration, iterations bounded by cut budget ≈ O(%d)", a*e),
			SpaceComplexity:    fmt.Sprintf("O(A·E) ≈ O(%d)", a*e),
			EstimatedVariables: a * e,
			Recommendation:     "warm-started cutting-plane loop — best when most agent pairs never conflict",
		}
		if a < 3 {
			result.Recommendations = append(result.Recommendations,
				"few agents: the one-shot continuous mode likely converges just as fast with no replan overhead")
		}

	case ModeDiscrete:
		horizon := int64(timeDuration)
		if horizon <= 0 {
			horizon = e
		}
		result.Complexity = &ModeComplexity{
			TimeComplexity:     fmt.Sprintf("O(A·V·T) ≈ O(%d)", a*v*horizon),
			SpaceComplexity:    fmt.Sprintf("O(A·V·T) ≈ O(%d)", a*v*horizon),
			EstimatedVariables: a * v * horizon,
			Recommendation:     "time-expanded network — precise but grows with the horizon",
		}
		if a*v*horizon > 1_000_000 {
			result.Issues = append(result.Issues,
				fmt.Sprintf("estimated %d discrete-time variables exceeds a practical single-solve budget", a*v*horizon))
			result.Recommendations = append(result.Recommendations, "reduce time_duration, or switch to a continuous mode")
			result.IsCompatible = false
		}

	default:
		result.Issues = append(result.Issues, fmt.Sprintf("unknown solve mode %q", mode))
		result.IsCompatible = false
	}

	return result
}
