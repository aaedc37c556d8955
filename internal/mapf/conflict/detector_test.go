package conflict

import (
	"testing"

	"mapfnet/pkg/domain"
)

func TestDetectVertexConflictFindsOverlappingDwell(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {Agent: 0, Vertices: []domain.TimedVertex{{Vertex: 5, Time: 0}, {Vertex: 5, Time: 3}}},
		1: {Agent: 1, Vertices: []domain.TimedVertex{{Vertex: 5, Time: 1}, {Vertex: 5, Time: 4}}},
	}

	c, ok := DetectVertexConflict(paths, 1e-9)
	if !ok {
		t.Fatal("expected a vertex conflict")
	}
	if c.Kind != KindVertex || c.Vertex != 5 {
		t.Fatalf("unexpected conflict record: %+v", c)
	}
}

func TestDetectVertexConflictNoneWhenSequential(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {Agent: 0, Vertices: []domain.TimedVertex{{Vertex: 5, Time: 0}, {Vertex: 5, Time: 2}}},
		1: {Agent: 1, Vertices: []domain.TimedVertex{{Vertex: 5, Time: 2}, {Vertex: 5, Time: 4}}},
	}

	if _, ok := DetectVertexConflict(paths, 1e-9); ok {
		t.Fatal("expected no conflict for sequential occupancy")
	}
}

func TestDetectEdgeConflictFindsOverlap(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {
			Agent:    0,
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 0}},
			Vertices: []domain.TimedVertex{{Vertex: 2, Time: 3}},
		},
		1: {
			Agent:    1,
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 1}},
			Vertices: []domain.TimedVertex{{Vertex: 2, Time: 4}},
		},
	}

	c, ok := DetectEdgeConflict(paths, 1e-9, false)
	if !ok {
		t.Fatal("expected an edge conflict")
	}
	if c.Kind != KindEdge || c.Edge != (domain.EdgeKey{From: 1, To: 2}) {
		t.Fatalf("unexpected conflict record: %+v", c)
	}
}

func TestDetectEdgeConflictFlagsSwapWhenEnabled(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {
			Agent:    0,
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 0}},
			Vertices: []domain.TimedVertex{{Vertex: 2, Time: 3}},
		},
		1: {
			Agent:    1,
			Edges:    []domain.TimedEdge{{From: 2, To: 1, Time: 1}},
			Vertices: []domain.TimedVertex{{Vertex: 1, Time: 4}},
		},
	}

	c, ok := DetectEdgeConflict(paths, 1e-9, true)
	if !ok {
		t.Fatal("expected a swap conflict")
	}
	if !c.Swap {
		t.Fatal("expected the conflict to be flagged as a swap")
	}
}

func TestDetectEdgeConflictIgnoresAntiParallelWhenSwapDisabled(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {
			Agent:    0,
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 0}},
			Vertices: []domain.TimedVertex{{Vertex: 2, Time: 3}},
		},
		1: {
			Agent:    1,
			Edges:    []domain.TimedEdge{{From: 2, To: 1, Time: 1}},
			Vertices: []domain.TimedVertex{{Vertex: 1, Time: 4}},
		},
	}

	if _, ok := DetectEdgeConflict(paths, 1e-9, false); ok {
		t.Fatal("expected no conflict when swap-detection is disabled and edges are distinct keys")
	}
}
