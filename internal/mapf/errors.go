package mapf

import (
	"fmt"

	"mapfnet/internal/milp"
	"mapfnet/pkg/apperror"
)

// SolveError wraps a non-optimal milp.Status into the platform's typed
// error taxonomy — spec.md §7 requires the solver's own status code to
// propagate unchanged as a fatal error.
func SolveError(status milp.Status) error {
	switch status {
	case milp.StatusTimeLimit:
		return apperror.New(apperror.CodeTimeout, "mapf: solver hit its time limit before reaching optimality")
	case milp.StatusInfeasible:
		return apperror.New(apperror.CodeSolveNonOptimal, "mapf: model is infeasible")
	case milp.StatusUnbounded:
		return apperror.New(apperror.CodeSolveNonOptimal, "mapf: model is unbounded")
	default:
		return apperror.New(apperror.CodeSolveNonOptimal, fmt.Sprintf("mapf: solver returned non-optimal status %s", status))
	}
}

// IterationBudgetExceeded is returned by the dynamic-conflict loop when
// MaxDynamicIterations is reached without converging to a conflict-free
// solution.
func IterationBudgetExceeded(iterations int) error {
	return apperror.New(apperror.CodeIterationBudgetExceeded, fmt.Sprintf("mapf: dynamic-conflict loop did not converge within %d iterations", iterations))
}
