package validators

import (
	"fmt"

	"mapfnet/internal/mapf/conflict"
	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
)

// ValidateSolution checks a proposed set of per-agent paths against the
// data model's solution invariants: each path must start at its agent's
// source and end at its target, and no two agents may occupy the same
// vertex or cross the same edge at overlapping times. It reuses the
// solver's own conflict detector so "valid" here means exactly what the
// MILP builder's constraints mean.
func ValidateSolution(agents []AgentDTO, paths map[int]*domain.AgentPath, swapConstraint bool, eps float64) []*ValidationError {
	var errs []*ValidationError

	for i, a := range agents {
		path, ok := paths[i]
		if !ok {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("paths[%d]", i),
				Code:    string(pkgerrors.CodeNoPath),
				Message: fmt.Sprintf("agent %d has no path in the solution", i),
			})
			continue
		}
		seq := path.VertexSequence()
		if len(seq) == 0 || seq[0] != a.Source {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("paths[%d]", i),
				Code:    string(pkgerrors.CodeInvalidVertex),
				Message: fmt.Sprintf("agent %d path does not start at its source %d", i, a.Source),
			})
		}
		if len(seq) == 0 || seq[len(seq)-1] != a.Target {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("paths[%d]", i),
				Code:    string(pkgerrors.CodeInvalidVertex),
				Message: fmt.Sprintf("agent %d path does not end at its target %d", i, a.Target),
			})
		}
	}

	if eps <= 0 {
		eps = 1e-6
	}

	if c, found := conflict.DetectVertexConflict(paths, eps); found {
		errs = append(errs, &ValidationError{
			Code:    string(pkgerrors.CodeFlowViolation),
			Message: fmt.Sprintf("agents %d and %d both occupy vertex %d at overlapping times", c.Agent1, c.Agent2, c.Vertex),
		})
	}
	if c, found := conflict.DetectEdgeConflict(paths, eps, swapConstraint); found {
		kind := "cross"
		if c.Swap {
			kind = "swap"
		}
		errs = append(errs, &ValidationError{
			Code:    string(pkgerrors.CodeFlowViolation),
			Message: fmt.Sprintf("agents %d and %d %s-conflict on edge %s", c.Agent1, c.Agent2, kind, c.Edge),
		})
	}

	return errs
}
