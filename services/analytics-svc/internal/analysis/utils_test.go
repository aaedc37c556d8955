package analysis

import (
	"testing"

	"mapfnet/pkg/domain"
)

func TestEdgeKeyString(t *testing.T) {
	if got := EdgeKeyString(1, 2); got != "1:2" {
		t.Errorf("EdgeKeyString(1,2) = %q, want %q", got, "1:2")
	}
}

func TestCalculateUtilization(t *testing.T) {
	if got := CalculateUtilization(3, 4); got != 0.75 {
		t.Errorf("CalculateUtilization(3,4) = %v, want 0.75", got)
	}
	if got := CalculateUtilization(3, 0); got != 0.0 {
		t.Errorf("CalculateUtilization(3,0) = %v, want 0", got)
	}
}

func TestCountVisits(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {
			Vertices: []domain.TimedVertex{{Vertex: 1, Time: 0}, {Vertex: 2, Time: 1}},
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 0}},
		},
		1: {
			Vertices: []domain.TimedVertex{{Vertex: 2, Time: 0}, {Vertex: 3, Time: 1}},
			Edges:    []domain.TimedEdge{{From: 2, To: 3, Time: 0}},
		},
	}

	vc := CountVisits(paths)
	if vc.Vertex[2] != 2 {
		t.Errorf("vertex 2 occupancy = %d, want 2", vc.Vertex[2])
	}
	if vc.Edge[EdgeKeyString(1, 2)] != 1 {
		t.Errorf("edge 1:2 occupancy = %d, want 1", vc.Edge[EdgeKeyString(1, 2)])
	}
}
