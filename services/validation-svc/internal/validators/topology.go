package validators

import (
	"fmt"

	"mapfnet/pkg/domain"
)

// ValidateTopology reports warnings about a graph's shape that don't
// make it infeasible, plus the one fatal check connectivity alone
// doesn't catch: a vertex no edge ever touches.
func ValidateTopology(g *domain.Graph) *TopologyResult {
	result := &TopologyResult{
		Errors:   []*ValidationError{},
		Warnings: []string{},
	}

	touched := make(map[int]bool, g.VertexCount())
	for _, e := range g.Edges() {
		touched[e.From] = true
		touched[e.To] = true
	}
	for v := 1; v <= g.VertexCount(); v++ {
		if !touched[v] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("vertex %d has no incident edges", v))
		}
	}

	components := domain.FindConnectedComponents(g)
	if len(components) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("graph has %d weakly-connected components", len(components)))
	}

	return result
}
