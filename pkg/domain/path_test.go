package domain

import "testing"

func TestNewAgentSetRejectsDuplicateSources(t *testing.T) {
	_, err := NewAgentSet([]Agent{
		{Source: 1, Target: 2, Departure: 0},
		{Source: 1, Target: 3, Departure: 0},
	})
	if err == nil {
		t.Fatal("expected error for duplicated source")
	}
}

func TestNewAgentSetRejectsDuplicateTargets(t *testing.T) {
	_, err := NewAgentSet([]Agent{
		{Source: 1, Target: 3, Departure: 0},
		{Source: 2, Target: 3, Departure: 0},
	})
	if err == nil {
		t.Fatal("expected error for duplicated target")
	}
}

func TestNewAgentSetRejectsNegativeDeparture(t *testing.T) {
	_, err := NewAgentSet([]Agent{
		{Source: 1, Target: 2, Departure: -1},
	})
	if err == nil {
		t.Fatal("expected error for negative departure")
	}
}

func TestNewAgentSetAccepts(t *testing.T) {
	set, err := NewAgentSet([]Agent{
		{Source: 1, Target: 4, Departure: 0},
		{Source: 2, Target: 5, Departure: 1.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 agents, got %d", set.Len())
	}
	if set.Get(1).Departure != 1.5 {
		t.Fatalf("expected departure 1.5, got %v", set.Get(1).Departure)
	}
}

func TestAgentSetValidateAgainst(t *testing.T) {
	g := NewGraph(3)
	set, err := NewAgentSet([]Agent{{Source: 1, Target: 4, Departure: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := set.ValidateAgainst(g); err == nil {
		t.Fatal("expected error for out-of-range target")
	}
}

func TestAgentPathVertexSequence(t *testing.T) {
	p := &AgentPath{
		Vertices: []TimedVertex{
			{Vertex: 1, Time: 0},
			{Vertex: 2, Time: 3},
			{Vertex: 3, Time: 6},
		},
	}
	seq := p.VertexSequence()
	want := []int{1, 2, 3}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence mismatch: got %v want %v", seq, want)
		}
	}
	if p.ArrivalAt() != 6 {
		t.Fatalf("expected arrival 6, got %v", p.ArrivalAt())
	}
}
