package service

import (
	"context"
	"testing"
)

func TestNewAnalyticsService(t *testing.T) {
	if svc := NewAnalyticsService(); svc == nil {
		t.Error("NewAnalyticsService() returned nil")
	}
}

func samplePaths() map[int]PathDTO {
	return map[int]PathDTO{
		0: {Vertices: []int{1, 2, 3}, Times: []float64{0, 1, 2}},
		1: {Vertices: []int{4, 2, 5}, Times: []float64{0, 1, 2}},
	}
}

func TestAnalyticsService_CalculateCost(t *testing.T) {
	svc := NewAnalyticsService()
	ctx := context.Background()

	resp, err := svc.CalculateCost(ctx, &CalculateCostRequest{
		Paths:      samplePaths(),
		VertexCost: map[int]float64{2: 10},
	})
	if err != nil {
		t.Fatalf("CalculateCost: %v", err)
	}
	if resp.Breakdown.VertexCost != 20 {
		t.Errorf("VertexCost = %v, want 20 (vertex 2 visited by both agents)", resp.Breakdown.VertexCost)
	}
}

func TestAnalyticsService_CalculateCost_EmptyPaths(t *testing.T) {
	svc := NewAnalyticsService()
	if _, err := svc.CalculateCost(context.Background(), &CalculateCostRequest{}); err == nil {
		t.Error("expected error for empty paths")
	}
}

func TestAnalyticsService_FindBottlenecks(t *testing.T) {
	svc := NewAnalyticsService()
	resp, err := svc.FindBottlenecks(context.Background(), &FindBottlenecksRequest{
		Paths:                samplePaths(),
		UtilizationThreshold: 0.5,
	})
	if err != nil {
		t.Fatalf("FindBottlenecks: %v", err)
	}
	found := false
	for _, b := range resp.Bottlenecks {
		if b.From == 2 && b.To == 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected vertex 2 to be reported as a bottleneck")
	}
}

func TestAnalyticsService_AnalyzeFlow(t *testing.T) {
	svc := NewAnalyticsService()
	req := &AnalyzeFlowRequest{
		Graph: GraphDTO{VertexCount: 5, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}, {From: 4, To: 2}, {From: 2, To: 5}}},
		Agents: []AgentDTO{
			{Source: 1, Target: 3},
			{Source: 4, Target: 5},
		},
		Paths: samplePaths(),
	}

	resp, err := svc.AnalyzeFlow(context.Background(), req)
	if err != nil {
		t.Fatalf("AnalyzeFlow: %v", err)
	}
	if resp.Stats.AgentCount != 2 {
		t.Errorf("AgentCount = %d, want 2", resp.Stats.AgentCount)
	}
	if resp.Efficiency == nil {
		t.Error("expected an efficiency report")
	}
}

func TestAnalyticsService_CompareScenarios(t *testing.T) {
	svc := NewAnalyticsService()
	resp, err := svc.CompareScenarios(context.Background(), &CompareScenariosRequest{
		BaselinePaths: samplePaths(),
		VertexCost:    map[int]float64{2: 10},
		Scenarios: []ScenarioDTO{
			{Name: "cheaper", Paths: map[int]PathDTO{0: {Vertices: []int{1, 3}}}},
		},
	})
	if err != nil {
		t.Fatalf("CompareScenarios: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(resp.Results))
	}
	if resp.BestScenario != "cheaper" {
		t.Errorf("BestScenario = %q, want cheaper", resp.BestScenario)
	}
}

func TestAnalyticsService_CompareScenarios_RequiresBaseline(t *testing.T) {
	svc := NewAnalyticsService()
	if _, err := svc.CompareScenarios(context.Background(), &CompareScenariosRequest{}); err == nil {
		t.Error("expected error when baseline paths are missing")
	}
}

func TestAnalyticsService_Health(t *testing.T) {
	svc := NewAnalyticsService()
	resp := svc.Health(context.Background())
	if resp.Status != "SERVING" {
		t.Errorf("Status = %q, want SERVING", resp.Status)
	}
}
