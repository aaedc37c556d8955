package validators

import (
	"testing"

	pkgerrors "mapfnet/pkg/apperror"
)

func TestValidateBusinessRules_BigMTooSmall(t *testing.T) {
	cfg := &ConfigRequest{
		Agents:       []AgentDTO{{Source: 1, Target: 3, Departure: 0}},
		EdgeWaitTime: map[string]float64{"1:2": 5, "2:3": 5},
		BigM:         1, // far below the conservative estimate
	}
	g := BuildGraph(GraphDTO{VertexCount: 3, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}}})

	errs := ValidateBusinessRules(cfg, g)
	if len(errs) != 1 || errs[0].Code != string(pkgerrors.CodeBigMTooSmall) {
		t.Fatalf("expected a single BigMTooSmall error, got %+v", errs)
	}
}

func TestValidateBusinessRules_BigMSufficient(t *testing.T) {
	cfg := &ConfigRequest{
		Agents:       []AgentDTO{{Source: 1, Target: 3, Departure: 0}},
		EdgeWaitTime: map[string]float64{"1:2": 5, "2:3": 5},
		BigM:         1000,
	}
	g := BuildGraph(GraphDTO{VertexCount: 3, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}}})

	if errs := ValidateBusinessRules(cfg, g); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestValidateBusinessRules_HorizonTooShort(t *testing.T) {
	cfg := &ConfigRequest{
		Agents:       []AgentDTO{{Source: 1, Target: 2, Departure: 10}},
		TimeDuration: 5,
	}
	g := BuildGraph(GraphDTO{VertexCount: 2, Edges: []EdgeDTO{{From: 1, To: 2}}})

	errs := ValidateBusinessRules(cfg, g)
	if len(errs) != 1 || errs[0].Field != "time_duration" {
		t.Fatalf("expected a single time_duration error, got %+v", errs)
	}
}
