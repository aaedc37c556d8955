package validators

import (
	"testing"

	"mapfnet/pkg/domain"
)

func TestCalculateGraphStatistics(t *testing.T) {
	g := BuildGraph(GraphDTO{VertexCount: 4, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 4}}})

	stats := CalculateGraphStatistics(g, 2)
	if stats.VertexCount != 4 || stats.EdgeCount != 3 || stats.AgentCount != 2 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
	if !stats.IsConnected {
		t.Error("expected graph to be connected")
	}
}

func TestCalculateGraphStatistics_Disconnected(t *testing.T) {
	g := BuildGraph(GraphDTO{VertexCount: 4, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 3, To: 4}}})

	stats := CalculateGraphStatistics(g, 0)
	if stats.IsConnected {
		t.Error("expected graph to be disconnected")
	}
}

func TestCalculateSolutionSummary(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {Agent: 0, Vertices: []domain.TimedVertex{{Vertex: 1, Time: 0}, {Vertex: 2, Time: 5}}, Cost: 5},
		1: {Agent: 1, Vertices: []domain.TimedVertex{{Vertex: 3, Time: 0}, {Vertex: 4, Time: 8}}, Cost: 8},
	}

	summary := CalculateSolutionSummary(paths, true)
	if summary.AgentsWithPaths != 2 {
		t.Errorf("got %d agents with paths, want 2", summary.AgentsWithPaths)
	}
	if summary.TotalCost != 13 {
		t.Errorf("got total cost %v, want 13", summary.TotalCost)
	}
	if summary.Makespan != 8 {
		t.Errorf("got makespan %v, want 8", summary.Makespan)
	}
	if !summary.ConflictFree {
		t.Error("expected conflict-free summary")
	}
}
