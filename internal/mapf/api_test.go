package mapf

import (
	"context"
	"testing"

	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

func simpleLineConfig(t *testing.T) *Config {
	t.Helper()
	g := domain.NewGraph(3)
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(2, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agents, err := domain.NewAgentSet([]domain.Agent{{Source: 1, Target: 3, Departure: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &Config{
		Graph:          g,
		Agents:         agents,
		VertexCost:     domain.NewSharedVertexTensor(nil),
		EdgeCost:       domain.NewSharedEdgeTensor(map[domain.EdgeKey]float64{{From: 1, To: 2}: 1, {From: 2, To: 3}: 1}),
		VertexWaitTime: domain.NewSharedVertexTensor(nil),
		EdgeWaitTime:   domain.NewSharedEdgeTensor(map[domain.EdgeKey]float64{{From: 1, To: 2}: 1, {From: 2, To: 3}: 1}),
		Integer:        true,
	}
}

func TestContinuousTimeSolvesSingleAgentLine(t *testing.T) {
	cfg := simpleLineConfig(t)
	solver := milp.NewBranchAndBound()

	res, err := ContinuousTime(context.Background(), cfg, solver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path, ok := res.Paths[0]
	if !ok {
		t.Fatal("expected a path for agent 0")
	}
	if len(path.Vertices) != 3 {
		t.Fatalf("expected 3 visited vertices, got %d: %+v", len(path.Vertices), path.Vertices)
	}
}

func TestDiscreteTimeSolvesSingleAgentLine(t *testing.T) {
	cfg := simpleLineConfig(t)
	cfg.TimeDuration = 3
	solver := milp.NewBranchAndBound()

	res, err := DiscreteTime(context.Background(), cfg, solver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Paths[0]; !ok {
		t.Fatal("expected a path for agent 0")
	}
}

func TestConfigValidateRejectsNilGraph(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for nil graph")
	}
}

func TestConfigResolveBigMDefaultsWhenUnset(t *testing.T) {
	cfg := simpleLineConfig(t)
	if got := cfg.ResolveBigM(); got <= 0 {
		t.Fatalf("expected a positive default big-M, got %v", got)
	}
}
