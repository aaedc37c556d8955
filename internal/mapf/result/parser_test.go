package result

import (
	"testing"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

func oneAgentConfig(t *testing.T) *mapf.Config {
	t.Helper()
	g := domain.NewGraph(2)
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agents, err := domain.NewAgentSet([]domain.Agent{{Source: 1, Target: 2, Departure: 0}})
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
		TimeDuration:   2,
	}
}

func TestParseContinuousExtractsSelectedVerticesAndEdges(t *testing.T) {
	cfg := oneAgentConfig(t)
	model := milp.NewModel()
	vars := mapf.NewVarRegistry(model)
	bigM := 100.0

	x := vars.X(0, 1, 2, true)
	y1 := vars.Y(0, 1, true)
	y2 := vars.Y(0, 2, true)
	tv1 := vars.TV(0, 1, bigM)
	tv2 := vars.TV(0, 2, bigM)
	te := vars.TE(0, 1, 2, bigM)

	sol := &milp.Solution{
		Status: milp.StatusOptimal,
		Values: map[*milp.Var]float64{
			x: 1, y1: 1, y2: 1,
			tv1: 0, tv2: 5,
			te: 0,
		},
	}

	paths := ParseContinuous(sol, vars, cfg, bigM)
	path, ok := paths[0]
	if !ok {
		t.Fatal("expected a path for agent 0")
	}
	if len(path.Vertices) != 2 || path.Vertices[0].Vertex != 1 || path.Vertices[1].Vertex != 2 {
		t.Fatalf("unexpected vertex sequence: %+v", path.Vertices)
	}
	if len(path.Edges) != 1 || path.Edges[0].From != 1 || path.Edges[0].To != 2 {
		t.Fatalf("unexpected edge sequence: %+v", path.Edges)
	}
	if path.Cost != 5 {
		t.Fatalf("expected cost to be the last arrival time, got %v", path.Cost)
	}
}

func TestParseDiscreteExtractsPerStepSelection(t *testing.T) {
	cfg := oneAgentConfig(t)
	model := milp.NewModel()
	vars := mapf.NewVarRegistry(model)

	y1 := vars.Yt(0, 1, 0, true)
	x := vars.Xt(0, 1, 2, 0, true)
	y2 := vars.Yt(0, 2, 1, true)

	sol := &milp.Solution{
		Status: milp.StatusOptimal,
		Values: map[*milp.Var]float64{y1: 1, x: 1, y2: 1},
	}

	paths := ParseDiscrete(sol, vars, cfg)
	path := paths[0]
	if len(path.Vertices) != 2 {
		t.Fatalf("expected 2 visited vertices, got %d: %+v", len(path.Vertices), path.Vertices)
	}
	if len(path.Edges) != 1 {
		t.Fatalf("expected 1 traversed edge, got %d", len(path.Edges))
	}
}
