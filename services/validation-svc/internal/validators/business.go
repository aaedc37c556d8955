package validators

import (
	"fmt"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
)

// ValidateBusinessRules checks MAPF-specific domain constraints beyond
// bare structural validity: a BigM override too small to bound the
// model's feasible arrival times, and a discrete-mode horizon too short
// for every agent to plausibly arrive within it.
func ValidateBusinessRules(req *ConfigRequest, g *domain.Graph) []*ValidationError {
	var errs []*ValidationError

	if req.BigM > 0 {
		minimumBigM := estimateMinimumBigM(req, g)
		if req.BigM < minimumBigM {
			errs = append(errs, &ValidationError{
				Field:   "big_m",
				Code:    string(pkgerrors.CodeBigMTooSmall),
				Message: fmt.Sprintf("big_m %.2f is below the conservative estimate %.2f and may prune feasible solutions", req.BigM, minimumBigM),
			})
		}
	}

	if req.TimeDuration > 0 {
		maxDeparture := 0.0
		for _, a := range req.Agents {
			if a.Departure > maxDeparture {
				maxDeparture = a.Departure
			}
		}
		if float64(req.TimeDuration) <= maxDeparture {
			errs = append(errs, &ValidationError{
				Field:   "time_duration",
				Code:    string(pkgerrors.CodeInvalidArgument),
				Message: fmt.Sprintf("time_duration %d does not exceed the latest agent departure %.0f", req.TimeDuration, maxDeparture),
			})
		}
	}

	return errs
}

// estimateMinimumBigM mirrors mapf.Config.ResolveBigM's default formula
// (A * |E| * max(edge_wait) + max(departure)) over the raw wire tensors,
// so a caller can be warned about an undersized override before the
// solver sees it.
func estimateMinimumBigM(req *ConfigRequest, g *domain.Graph) float64 {
	maxWait := 0.0
	for _, w := range req.EdgeWaitTime {
		if w > maxWait {
			maxWait = w
		}
	}

	maxDeparture := 0.0
	for _, a := range req.Agents {
		if a.Departure > maxDeparture {
			maxDeparture = a.Departure
		}
	}

	agents := float64(len(req.Agents))
	edges := float64(g.EdgeCount())
	return agents*edges*maxWait + maxDeparture
}
