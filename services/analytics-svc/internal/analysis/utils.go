package analysis

import (
	"fmt"

	"mapfnet/pkg/domain"
)

// Epsilon re-exports the domain package's tolerance so analysis code never
// drifts from the solver's own float comparisons.
const Epsilon = domain.Epsilon

// EdgeKeyString renders an edge as the "from:to" string solver-svc and
// gateway-svc use as a map key for per-edge cost/wait-time tensors.
func EdgeKeyString(from, to int) string {
	return fmt.Sprintf("%d:%d", from, to)
}

// CalculateUtilization expresses occupancy as a fraction of capacity,
// where capacity is the number of agents in the instance — a vertex or
// edge used by every agent is fully utilized.
func CalculateUtilization(occupancy, capacity int) float64 {
	if capacity <= 0 {
		return 0.0
	}
	return float64(occupancy) / float64(capacity)
}

// VisitCounts tallies how many times the agent paths pass through each
// vertex and traverse each edge; a path that revisits a vertex counts once
// per visit.
type VisitCounts struct {
	Vertex map[int]int
	Edge   map[string]int
}

// CountVisits walks every agent's path once, incrementing the occupancy
// counters used by both the cost and bottleneck analyses.
func CountVisits(paths map[int]*domain.AgentPath) *VisitCounts {
	vc := &VisitCounts{Vertex: make(map[int]int), Edge: make(map[string]int)}
	for _, p := range paths {
		if p == nil {
			continue
		}
		for _, tv := range p.Vertices {
			vc.Vertex[tv.Vertex]++
		}
		for _, te := range p.Edges {
			vc.Edge[EdgeKeyString(te.From, te.To)]++
		}
	}
	return vc
}
