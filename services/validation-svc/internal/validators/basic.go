package validators

import (
	"fmt"

	pkgerrors "mapfnet/pkg/apperror"
)

// MaxValidatedVertices bounds how large a graph this service will walk;
// above this, ValidateStructure reports CodeInvalidGraph instead of
// spending the call budget on an oversized payload.
const MaxValidatedVertices = 50_000

// ValidateStructure checks the raw shape of req: vertex count, dangling
// edge endpoints, duplicated agent sources/targets, and negative
// departures. Unlike domain.NewAgentSet (which returns on the first
// violation), this collects every offending agent/edge so a caller sees
// the whole picture in one round trip.
func ValidateStructure(req *ConfigRequest) []*ValidationError {
	var errs []*ValidationError

	n := req.Graph.VertexCount
	if n <= 0 {
		return append(errs, &ValidationError{
			Field:   "graph.vertex_count",
			Code:    string(pkgerrors.CodeEmptyGraph),
			Message: "graph has no vertices",
		})
	}
	if n > MaxValidatedVertices {
		return append(errs, &ValidationError{
			Field:   "graph.vertex_count",
			Code:    string(pkgerrors.CodeInvalidGraph),
			Message: fmt.Sprintf("graph has too many vertices: %d > %d", n, MaxValidatedVertices),
		})
	}

	inRange := func(v int) bool { return v >= 1 && v <= n }

	for i, e := range req.Graph.Edges {
		if !inRange(e.From) {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("graph.edges[%d].from", i),
				Code:    string(pkgerrors.CodeDanglingEdge),
				Message: fmt.Sprintf("edge references vertex %d outside 1..%d", e.From, n),
			})
		}
		if !inRange(e.To) {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("graph.edges[%d].to", i),
				Code:    string(pkgerrors.CodeDanglingEdge),
				Message: fmt.Sprintf("edge references vertex %d outside 1..%d", e.To, n),
			})
		}
	}

	sources := make(map[int]int, len(req.Agents))
	targets := make(map[int]int, len(req.Agents))
	for i, a := range req.Agents {
		if a.Departure < 0 {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("agents[%d].departure", i),
				Code:    string(pkgerrors.CodeNegativeDeparture),
				Message: fmt.Sprintf("agent %d has negative departure %v", i, a.Departure),
			})
		}
		if !inRange(a.Source) {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("agents[%d].source", i),
				Code:    string(pkgerrors.CodeInvalidVertex),
				Message: fmt.Sprintf("agent %d source %d not in graph", i, a.Source),
			})
		}
		if !inRange(a.Target) {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("agents[%d].target", i),
				Code:    string(pkgerrors.CodeInvalidVertex),
				Message: fmt.Sprintf("agent %d target %d not in graph", i, a.Target),
			})
		}

		if prev, dup := sources[a.Source]; dup {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("agents[%d].source", i),
				Code:    string(pkgerrors.CodeDuplicateAgentSource),
				Message: fmt.Sprintf("agents %d and %d share source vertex %d", prev, i, a.Source),
			})
		}
		sources[a.Source] = i

		if prev, dup := targets[a.Target]; dup {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("agents[%d].target", i),
				Code:    string(pkgerrors.CodeDuplicateAgentTarget),
				Message: fmt.Sprintf("agents %d and %d share target vertex %d", prev, i, a.Target),
			})
		}
		targets[a.Target] = i
	}

	for field, tensor := range map[string]map[int]float64{"vertex_cost": req.VertexCost, "vertex_wait_time": req.VertexWaitTime} {
		for v, val := range tensor {
			if val < 0 {
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, v),
					Code:    string(pkgerrors.CodeTensorRankMismatch),
					Message: fmt.Sprintf("%s must be >= 0 at vertex %d, got %v", field, v, val),
				})
			}
		}
	}
	for field, tensor := range map[string]map[string]float64{"edge_cost": req.EdgeCost, "edge_wait_time": req.EdgeWaitTime} {
		for k, val := range tensor {
			if val < 0 {
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("%s[%s]", field, k),
					Code:    string(pkgerrors.CodeTensorRankMismatch),
					Message: fmt.Sprintf("%s must be >= 0 at edge %s, got %v", field, k, val),
				})
			}
		}
	}

	return errs
}
