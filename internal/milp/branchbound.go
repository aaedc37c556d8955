package milp

import (
	"context"
	"math"
)

// BranchAndBound is the default Solver: it repeatedly relaxes the
// integer/binary variables into continuous ones, solves the LP
// relaxation with gonum's simplex, and branches on the most fractional
// variable until every Binary/Integer variable lands on an integer
// value or the node is pruned.
type BranchAndBound struct {
	// Tolerance below which a value is considered integral.
	IntTol float64
	// MaxNodes bounds the search; 0 means unlimited (bounded only by
	// ctx's deadline).
	MaxNodes int
}

// NewBranchAndBound returns a BranchAndBound with sane defaults.
func NewBranchAndBound() *BranchAndBound {
	return &BranchAndBound{IntTol: 1e-6}
}

type bound struct{ lb, ub float64 }

// Solve runs branch-and-bound to optimality, or until ctx is done or
// MaxNodes nodes have been explored, in which case the best incumbent
// found so far is returned with StatusTimeLimit (a bare StatusTimeLimit
// solution if none was found). The warm argument is not used.
func (bb *BranchAndBound) Solve(ctx context.Context, m *Model, warm *WarmStart) (*Solution, error) {
	intTol := bb.IntTol
	if intTol <= 0 {
		intTol = 1e-6
	}

	hasIntegerVars := false
	for _, v := range m.Vars {
		if v.Kind != Continuous {
			hasIntegerVars = true
			break
		}
	}

	type stackNode struct {
		overrides map[*Var]bound
	}

	var best *Solution
	bestObj := math.Inf(1)
	if !m.Minimize {
		bestObj = math.Inf(-1)
	}
	better := func(obj float64) bool {
		if m.Minimize {
			return obj < bestObj-1e-9
		}
		return obj > bestObj+1e-9
	}

	stack := []stackNode{{overrides: map[*Var]bound{}}}
	nodes := 0

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			if best != nil {
				best.Status = StatusTimeLimit
				best.Nodes = nodes
				return best, nil
			}
			return &Solution{Status: StatusTimeLimit, Nodes: nodes}, nil
		default:
		}

		if bb.MaxNodes > 0 && nodes >= bb.MaxNodes {
			// Search cut short: the incumbent is not proven optimal.
			if best != nil {
				best.Status = StatusTimeLimit
				best.Nodes = nodes
				return best, nil
			}
			return &Solution{Status: StatusTimeLimit, Nodes: nodes}, nil
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		original := applyOverrides(m, top.overrides)
		sol, err := solveRelaxation(m)
		restoreOverrides(m, original)
		if err != nil {
			return nil, err
		}
		if sol.Status != StatusOptimal {
			continue // infeasible subproblem, prune
		}
		if best != nil && !better(sol.Objective) {
			continue // bound prune
		}

		fracVar, fracVal := mostFractional(m, sol, intTol)
		if fracVar == nil {
			// Integral (or no integer vars to begin with): candidate
			// incumbent.
			if best == nil || better(sol.Objective) {
				best = sol
				bestObj = sol.Objective
			}
			continue
		}
		if !hasIntegerVars {
			// Shouldn't happen, but guards against infinite branching.
			if best == nil || better(sol.Objective) {
				best = sol
				bestObj = sol.Objective
			}
			continue
		}

		floorOverrides := cloneOverrides(top.overrides)
		floorOverrides[fracVar] = bound{lb: fracVar.LB, ub: math.Floor(fracVal)}
		ceilOverrides := cloneOverrides(top.overrides)
		ceilOverrides[fracVar] = bound{lb: math.Ceil(fracVal), ub: fracVar.UB}

		stack = append(stack, stackNode{overrides: floorOverrides}, stackNode{overrides: ceilOverrides})
	}

	if best == nil {
		return &Solution{Status: StatusInfeasible, Nodes: nodes}, nil
	}
	best.Status = StatusOptimal
	best.Nodes = nodes
	return best, nil
}

func mostFractional(m *Model, sol *Solution, tol float64) (*Var, float64) {
	var target *Var
	bestDist := tol
	for _, v := range m.Vars {
		if v.Kind == Continuous {
			continue
		}
		val := sol.Values[v]
		dist := math.Abs(val - math.Round(val))
		if dist > bestDist {
			bestDist = dist
			target = v
		}
	}
	if target == nil {
		return nil, 0
	}
	return target, sol.Values[target]
}

func applyOverrides(m *Model, overrides map[*Var]bound) map[*Var]bound {
	original := make(map[*Var]bound, len(overrides))
	for v, b := range overrides {
		original[v] = bound{lb: v.LB, ub: v.UB}
		v.LB = b.lb
		v.UB = b.ub
	}
	return original
}

func restoreOverrides(m *Model, original map[*Var]bound) {
	for v, b := range original {
		v.LB = b.lb
		v.UB = b.ub
	}
}

func cloneOverrides(src map[*Var]bound) map[*Var]bound {
	dst := make(map[*Var]bound, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
