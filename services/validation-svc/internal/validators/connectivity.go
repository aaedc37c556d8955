package validators

import (
	"fmt"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
)

// ValidateConnectivity checks that every agent's target is reachable
// from its source over g's directed edges — the check the connectivity
// builder would otherwise discover only after spending a MILP variable
// budget on an infeasible agent.
func ValidateConnectivity(g *domain.Graph, agents []AgentDTO) []*ValidationError {
	var errs []*ValidationError

	for i, a := range agents {
		if !g.HasVertex(a.Source) || !g.HasVertex(a.Target) {
			continue // already reported by ValidateStructure
		}
		if !domain.BFSReachable(g, a.Source, a.Target) {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("agents[%d]", i),
				Code:    string(pkgerrors.CodeNoPath),
				Message: fmt.Sprintf("agent %d target %d is unreachable from source %d", i, a.Target, a.Source),
			})
		}
	}

	return errs
}

// BuildGraph constructs a domain.Graph from a GraphDTO, collecting every
// out-of-range edge instead of failing on the first one — ValidateStructure
// already reported those, so the graph returned here simply omits them.
func BuildGraph(dto GraphDTO) *domain.Graph {
	g := domain.NewGraph(dto.VertexCount)
	for _, e := range dto.Edges {
		_ = g.AddEdge(e.From, e.To) // out-of-range edges are reported by ValidateStructure
	}
	return g
}
