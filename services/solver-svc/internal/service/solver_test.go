package service

import (
	"context"
	"testing"
)

func lineRequest(mode string) *SolveRequest {
	return &SolveRequest{
		Mode: mode,
		Graph: GraphDTO{
			VertexCount: 3,
			Edges:       []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}},
		},
		Agents: []AgentDTO{{Source: 1, Target: 3, Departure: 0}},
		EdgeCost: map[string]float64{
			"1:2": 1,
			"2:3": 1,
		},
		Integer: true,
	}
}

func TestSolverServiceSolvesContinuous(t *testing.T) {
	svc := NewSolverService("test", nil)

	resp, err := svc.Solve(context.Background(), lineRequest(ModeContinuous))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path, ok := resp.Paths[0]
	if !ok {
		t.Fatal("expected a path for agent 0")
	}
	if len(path.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(path.Vertices))
	}
}

func TestSolverServiceSolvesDiscrete(t *testing.T) {
	svc := NewSolverService("test", nil)

	req := lineRequest(ModeDiscrete)
	req.TimeDuration = 3

	resp, err := svc.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := resp.Paths[0]; !ok {
		t.Fatal("expected a path for agent 0")
	}
}

func TestSolverServiceRejectsUnknownMode(t *testing.T) {
	svc := NewSolverService("test", nil)

	_, err := svc.Solve(context.Background(), lineRequest("bogus"))
	if err == nil {
		t.Fatal("expected an error for an unknown solve mode")
	}
}

func TestSolverServiceRejectsEmptyGraph(t *testing.T) {
	svc := NewSolverService("test", nil)

	req := lineRequest(ModeContinuous)
	req.Graph.VertexCount = 0

	_, err := svc.Solve(context.Background(), req)
	if err == nil {
		t.Fatal("expected an error for an empty graph")
	}
}
