package dynamic

import (
	"context"
	"testing"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
	"mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
)

func disjointAgentsConfig(t *testing.T) *mapf.Config {
	t.Helper()
	g := domain.NewGraph(4)
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(3, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agents, err := domain.NewAgentSet([]domain.Agent{
		{Source: 1, Target: 2, Departure: 0},
		{Source: 3, Target: 4, Departure: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &mapf.Config{
		Graph:          g,
		Agents:         agents,
		VertexCost:     domain.NewSharedVertexTensor(nil),
		EdgeCost:       domain.NewSharedEdgeTensor(nil),
		VertexWaitTime: domain.NewSharedVertexTensor(nil),
		EdgeWaitTime:   domain.NewSharedEdgeTensor(nil),
	}
}

func TestRunReturnsEarlyWhenAgentsAreDisjoint(t *testing.T) {
	cfg := disjointAgentsConfig(t)
	solver := milp.NewBranchAndBound()

	res, err := Run(context.Background(), cfg, solver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(res.Paths))
	}
	if res.Stats.ConflictCutsAdded != 0 {
		t.Fatalf("expected zero cuts for disjoint agents, got %d", res.Stats.ConflictCutsAdded)
	}
}

func TestRunSurfacesIterationBudget(t *testing.T) {
	g := domain.NewGraph(2)
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agents, err := domain.NewAgentSet([]domain.Agent{
		{Source: 1, Target: 2, Departure: 0},
		{Source: 2, Target: 1, Departure: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &mapf.Config{
		Graph:                g,
		Agents:               agents,
		VertexCost:           domain.NewSharedVertexTensor(nil),
		EdgeCost:             domain.NewSharedEdgeTensor(nil),
		VertexWaitTime:       domain.NewSharedVertexTensor(nil),
		EdgeWaitTime:         domain.NewSharedEdgeTensor(nil),
		SwapConstraint:       true,
		MaxDynamicIterations: 0,
	}
	cfg.MaxDynamicIterations = 1

	solver := milp.NewBranchAndBound()
	_, err = Run(context.Background(), cfg, solver)
	// Either the first timing-aware solve is conflict-free (with zero
	// wait times every dwell and traversal has zero length, so the
	// detector skips it) or the one-iteration budget runs out; both are
	// acceptable outcomes of this deliberately tight budget — the
	// assertion rejects a panic or any error other than the budget error.
	if err != nil {
		if code := apperror.Code(err); code != apperror.CodeIterationBudgetExceeded {
			t.Fatalf("expected an iteration-budget error, got %v (code %s)", err, code)
		}
	}
}
