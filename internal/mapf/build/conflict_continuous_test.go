package build

import (
	"testing"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

func twoAgentDiamond(t *testing.T, swapConstraint bool) (*milp.Model, *mapf.VarRegistry, *mapf.Config) {
	t.Helper()

	g := domain.NewGraph(4)
	must(t, g.AddUndirectedEdge(1, 2))
	must(t, g.AddUndirectedEdge(1, 3))
	must(t, g.AddUndirectedEdge(2, 4))
	must(t, g.AddUndirectedEdge(3, 4))
	must(t, g.AddUndirectedEdge(2, 3))

	agents, err := domain.NewAgentSet([]domain.Agent{
		{Source: 1, Target: 4, Departure: 0},
		{Source: 4, Target: 1, Departure: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &mapf.Config{
		Graph:          g,
		Agents:         agents,
		VertexCost:     domain.NewSharedVertexTensor(nil),
		EdgeCost:       domain.NewSharedEdgeTensor(nil),
		VertexWaitTime: domain.NewSharedVertexTensor(nil),
		EdgeWaitTime:   domain.NewSharedEdgeTensor(nil),
		SwapConstraint: swapConstraint,
	}

	model := milp.NewModel()
	vars := mapf.NewVarRegistry(model)
	if err := Connectivity(model, vars, cfg); err != nil {
		t.Fatalf("connectivity: %v", err)
	}
	if err := Timing(model, vars, cfg, 1000); err != nil {
		t.Fatalf("timing: %v", err)
	}
	return model, vars, cfg
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConflictContinuousStaticInstallsVertexAndEdgeDisjunctions(t *testing.T) {
	model, vars, cfg := twoAgentDiamond(t, false)
	before := len(model.Constraints)

	if err := ConflictContinuousStatic(model, vars, cfg, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(model.Constraints) <= before {
		t.Fatal("expected new constraints to be installed")
	}

	found := false
	for key := range vars.AllX(0) {
		if _, ok := vars.XExists(0, key.From, key.To); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected agent 0 to have selection variables")
	}
}

func TestConflictContinuousStaticSkipsSwapWithoutConstraintFlag(t *testing.T) {
	model, vars, cfg := twoAgentDiamond(t, false)
	if err := ConflictContinuousStatic(model, vars, cfg, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name := range constraintNames(model) {
		if hasPrefix(name, "swap_") {
			t.Fatalf("did not expect a swap constraint without SwapConstraint enabled, got %s", name)
		}
	}
}

func TestConflictContinuousStaticInstallsSwapWhenEnabledAndReverseEdgeExists(t *testing.T) {
	model, vars, cfg := twoAgentDiamond(t, true)
	if err := ConflictContinuousStatic(model, vars, cfg, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := constraintNames(model)
	sawSwap := false
	for name := range names {
		if hasPrefix(name, "swap_") {
			sawSwap = true
		}
	}
	if !sawSwap {
		t.Fatal("expected a swap constraint for the bidirectional (2,3) edge")
	}
}

func constraintNames(model *milp.Model) map[string]bool {
	out := make(map[string]bool, len(model.Constraints))
	for _, c := range model.Constraints {
		out[c.Name] = true
	}
	return out
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
