package engine

import (
	"testing"

	"mapfnet/pkg/domain"
)

func TestRunPlayback(t *testing.T) {
	paths := map[int]*domain.AgentPath{
		0: {Vertices: []domain.TimedVertex{{Vertex: 0, Time: 0}, {Vertex: 1, Time: 1}, {Vertex: 2, Time: 2}}},
		1: {Vertices: []domain.TimedVertex{{Vertex: 3, Time: 0}, {Vertex: 1, Time: 1}, {Vertex: 4, Time: 2}}},
	}

	steps := RunPlayback(paths, PlaybackConfig{StepDuration: 1})
	if len(steps) != 3 {
		t.Fatalf("len(steps) = %d, want 3", len(steps))
	}

	mid := steps[1]
	if mid.ActiveAgents != 2 {
		t.Errorf("step 1 ActiveAgents = %d, want 2", mid.ActiveAgents)
	}
	if len(mid.OccupiedVertices[1]) != 2 {
		t.Errorf("expected both agents to occupy vertex 1 at step 1, got %+v", mid.OccupiedVertices)
	}
	if mid.CongestionLevel <= 0 {
		t.Errorf("CongestionLevel = %v, want > 0 since two agents share vertex 1", mid.CongestionLevel)
	}

	last := steps[2]
	if last.ActiveAgents != 2 {
		t.Errorf("step 2 ActiveAgents = %d, want 2 (both agents arrive exactly at makespan)", last.ActiveAgents)
	}
}

func TestRunPlayback_EmptyPaths(t *testing.T) {
	steps := RunPlayback(map[int]*domain.AgentPath{}, PlaybackConfig{})
	if len(steps) != 1 {
		t.Fatalf("len(steps) = %d, want 1 (a single instant at t=0)", len(steps))
	}
}
