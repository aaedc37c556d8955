package validators

import (
	"testing"

	"mapfnet/pkg/domain"
)

func TestValidateSolution_Valid(t *testing.T) {
	agents := []AgentDTO{{Source: 1, Target: 3}}
	paths := map[int]*domain.AgentPath{
		0: {
			Agent:    0,
			Vertices: []domain.TimedVertex{{Vertex: 1, Time: 0}, {Vertex: 2, Time: 1}, {Vertex: 3, Time: 2}},
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 0}, {From: 2, To: 3, Time: 1}},
		},
	}

	if errs := ValidateSolution(agents, paths, false, 1e-6); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestValidateSolution_MissingPath(t *testing.T) {
	agents := []AgentDTO{{Source: 1, Target: 3}}
	paths := map[int]*domain.AgentPath{}

	errs := ValidateSolution(agents, paths, false, 1e-6)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %+v", errs)
	}
}

func TestValidateSolution_WrongEndpoints(t *testing.T) {
	agents := []AgentDTO{{Source: 1, Target: 3}}
	paths := map[int]*domain.AgentPath{
		0: {Agent: 0, Vertices: []domain.TimedVertex{{Vertex: 2, Time: 0}, {Vertex: 3, Time: 1}}},
	}

	errs := ValidateSolution(agents, paths, false, 1e-6)
	if len(errs) != 1 {
		t.Fatalf("expected one error for wrong source, got %+v", errs)
	}
}

func TestValidateSolution_VertexConflict(t *testing.T) {
	agents := []AgentDTO{{Source: 1, Target: 4}, {Source: 3, Target: 5}}
	paths := map[int]*domain.AgentPath{
		0: {Agent: 0, Vertices: []domain.TimedVertex{{Vertex: 1, Time: 0}, {Vertex: 2, Time: 1}, {Vertex: 4, Time: 2}}},
		1: {Agent: 1, Vertices: []domain.TimedVertex{{Vertex: 3, Time: 0}, {Vertex: 2, Time: 1}, {Vertex: 5, Time: 2}}},
	}

	errs := ValidateSolution(agents, paths, false, 1e-6)
	if len(errs) == 0 {
		t.Fatal("expected a vertex conflict to be reported")
	}
}
