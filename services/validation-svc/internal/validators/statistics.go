package validators

import "mapfnet/pkg/domain"

// CalculateGraphStatistics summarizes g's shape, independent of any
// agent set or solve.
func CalculateGraphStatistics(g *domain.Graph, agentCount int) *GraphStatistics {
	n := g.VertexCount()
	e := g.EdgeCount()

	density := 0.0
	if n > 1 {
		density = float64(e) / float64(n*(n-1))
	}

	return &GraphStatistics{
		VertexCount: n,
		EdgeCount:   e,
		AgentCount:  agentCount,
		Density:     density,
		IsConnected: domain.IsConnected(g),
	}
}

// CalculateSolutionSummary summarizes a solved set of per-agent paths:
// total cost, makespan (the latest arrival across all agents), and
// whether ValidateSolution found the set conflict-free.
func CalculateSolutionSummary(paths map[int]*domain.AgentPath, conflictFree bool) *SolutionSummary {
	summary := &SolutionSummary{ConflictFree: conflictFree}

	for _, p := range paths {
		summary.AgentsWithPaths++
		summary.TotalCost += p.Cost
		if arrival := p.ArrivalAt(); arrival > summary.Makespan {
			summary.Makespan = arrival
		}
	}

	return summary
}
