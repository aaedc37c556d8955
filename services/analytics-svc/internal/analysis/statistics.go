package analysis

import "mapfnet/pkg/domain"

// GraphSummary reports a solved instance's size, mirroring the summary
// report-svc embeds alongside every analytics report.
type GraphSummary struct {
	VertexCount int
	EdgeCount   int
	AgentCount  int
}

// CalculateGraphStatistics summarizes graph and the agents solved over it.
func CalculateGraphStatistics(graph *domain.Graph, paths map[int]*domain.AgentPath) *GraphSummary {
	return &GraphSummary{
		VertexCount: graph.VertexCount(),
		EdgeCount:   graph.EdgeCount(),
		AgentCount:  len(paths),
	}
}

// EfficiencyReport compares solved paths against each agent's unconstrained
// shortest path, reporting how much the MAPF conflict constraints cost in
// extra hops.
type EfficiencyReport struct {
	OverallEfficiency   float64
	PathOptimalityRatio float64
	UnusedEdges         int
	SaturatedEdges      int
	Grade               string
}

// AnalyzeEfficiency walks every agent's path, compares its hop count to the
// BFS shortest path between its source and target, and reports both the
// aggregate ratio and how much of the graph went unused or saturated.
func AnalyzeEfficiency(graph *domain.Graph, paths map[int]*domain.AgentPath, agents *domain.AgentSet, saturationThreshold float64) *EfficiencyReport {
	var totalOptimal, totalActual float64
	vc := CountVisits(paths)

	for a, p := range paths {
		if p == nil || agents == nil || a >= agents.Len() {
			continue
		}
		agent := agents.Get(a)
		bfs := domain.BFS(graph, agent.Source)
		optimalHops := float64(bfs.Level[agent.Target])
		actualHops := float64(len(p.Edges))
		if actualHops == 0 {
			continue
		}
		totalOptimal += optimalHops
		totalActual += actualHops
	}

	ratio := 1.0
	if totalActual > 0 {
		ratio = totalOptimal / totalActual
	}

	unused := 0
	saturated := 0
	agentCount := len(paths)
	for _, e := range graph.Edges() {
		occ := vc.Edge[EdgeKeyString(e.From, e.To)]
		if occ == 0 {
			unused++
		} else if CalculateUtilization(occ, agentCount) >= saturationThreshold {
			saturated++
		}
	}

	return &EfficiencyReport{
		OverallEfficiency:   ratio,
		PathOptimalityRatio: ratio,
		UnusedEdges:         unused,
		SaturatedEdges:      saturated,
		Grade:               gradeFor(ratio),
	}
}

func gradeFor(ratio float64) string {
	switch {
	case ratio >= 0.95:
		return "A"
	case ratio >= 0.85:
		return "B"
	case ratio >= 0.7:
		return "C"
	case ratio >= 0.5:
		return "D"
	default:
		return "F"
	}
}
