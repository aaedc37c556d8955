package analysis

import (
	"testing"

	"mapfnet/pkg/domain"
)

func buildTestGraph(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph(4)
	edges := [][2]int{{1, 2}, {2, 3}, {3, 4}}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestCalculateGraphStatistics(t *testing.T) {
	g := buildTestGraph(t)
	paths := map[int]*domain.AgentPath{0: {}}

	stats := CalculateGraphStatistics(g, paths)
	if stats.VertexCount != 4 {
		t.Errorf("VertexCount = %d, want 4", stats.VertexCount)
	}
	if stats.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", stats.EdgeCount)
	}
	if stats.AgentCount != 1 {
		t.Errorf("AgentCount = %d, want 1", stats.AgentCount)
	}
}

func TestAnalyzeEfficiencyOptimalPath(t *testing.T) {
	g := buildTestGraph(t)
	agents, err := domain.NewAgentSet([]domain.Agent{{Source: 1, Target: 4}})
	if err != nil {
		t.Fatalf("NewAgentSet: %v", err)
	}
	paths := map[int]*domain.AgentPath{
		0: {
			Vertices: []domain.TimedVertex{{Vertex: 1}, {Vertex: 2}, {Vertex: 3}, {Vertex: 4}},
			Edges:    []domain.TimedEdge{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 4}},
		},
	}

	report := AnalyzeEfficiency(g, paths, agents, 0.5)
	if report.OverallEfficiency != 1.0 {
		t.Errorf("OverallEfficiency = %v, want 1.0 for the shortest path", report.OverallEfficiency)
	}
	if report.Grade != "A" {
		t.Errorf("Grade = %q, want A", report.Grade)
	}
}

func TestGradeFor(t *testing.T) {
	cases := map[float64]string{1.0: "A", 0.9: "B", 0.75: "C", 0.55: "D", 0.1: "F"}
	for ratio, want := range cases {
		if got := gradeFor(ratio); got != want {
			t.Errorf("gradeFor(%v) = %q, want %q", ratio, got, want)
		}
	}
}
