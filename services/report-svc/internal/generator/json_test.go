// services/report-svc/internal/generator/json_test.go

package generator

import (
	"context"
	"encoding/json"
	"testing"

	"mapfnet/pkg/domain"
)

func TestNewJSONGenerator(t *testing.T) {
	g := NewJSONGenerator()
	if g == nil {
		t.Fatal("NewJSONGenerator should not return nil")
	}
}

func TestJSONGenerator_Format(t *testing.T) {
	g := NewJSONGenerator()
	if g.Format() != FormatJSON {
		t.Errorf("Format() = %v, want JSON", g.Format())
	}
}

func TestJSONGenerator_Generate_Solve(t *testing.T) {
	g := NewJSONGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeSolve,
		Options: &ReportOptions{
			Title:  "Test Solve Report",
			Author: "Test Author",
		},
		Graph: &GraphSummary{VertexCount: 2, EdgeCount: 1, AgentCount: 1},
		Solve: &SolveReportData{
			Mode:      "continuous",
			Objective: 100.0,
			Makespan:  5.0,
			Stats: domain.SolveStatistics{
				VariableCount:   20,
				ConstraintCount: 10,
				SolveDurationMS: 50,
			},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var report JSONReport
	if err := json.Unmarshal(result, &report); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if report.Metadata.Title != "Test Solve Report" {
		t.Errorf("Title = %v, want 'Test Solve Report'", report.Metadata.Title)
	}
	if report.Metadata.Author != "Test Author" {
		t.Errorf("Author = %v, want 'Test Author'", report.Metadata.Author)
	}
	if report.Metadata.ReportType != "solve" {
		t.Errorf("ReportType = %v, want 'solve'", report.Metadata.ReportType)
	}

	if report.Graph == nil {
		t.Fatal("Graph should not be nil")
	}
	if report.Graph.VertexCount != 2 {
		t.Errorf("VertexCount = %d, want 2", report.Graph.VertexCount)
	}

	if report.Solve == nil {
		t.Fatal("Solve should not be nil")
	}
	if report.Solve.Objective != 100.0 {
		t.Errorf("Objective = %v, want 100.0", report.Solve.Objective)
	}
}

func TestJSONGenerator_Generate_Analytics(t *testing.T) {
	g := NewJSONGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeAnalytics,
		AnalyticsData: &AnalyticsReportData{
			TotalWaitCost: 1500.0,
			Bottlenecks: []*BottleneckData{
				{From: 1, To: 2, Occupancy: 5, ImpactScore: 0.8, Severity: "HIGH"},
			},
			Recommendations: []*RecommendationData{
				{Type: "reroute", Description: "Reroute through vertex 3", EstimatedImprovement: 0.15},
			},
			Efficiency: &EfficiencyData{
				OverallEfficiency:   0.85,
				PathOptimalityRatio: 0.75,
				UnusedEdges:         5,
				SaturatedEdges:      3,
				Grade:               "B",
			},
		},
		Options: &ReportOptions{IncludeRecommendations: true},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var report JSONReport
	if err := json.Unmarshal(result, &report); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if report.Analytics == nil {
		t.Fatal("Analytics should not be nil")
	}
	if report.Analytics.TotalWaitCost != 1500.0 {
		t.Errorf("TotalWaitCost = %v, want 1500.0", report.Analytics.TotalWaitCost)
	}
	if len(report.Analytics.Bottlenecks) != 1 {
		t.Errorf("Bottlenecks length = %d, want 1", len(report.Analytics.Bottlenecks))
	}
	if report.Analytics.Efficiency.Grade != "B" {
		t.Errorf("Grade = %v, want B", report.Analytics.Efficiency.Grade)
	}
}

func TestJSONGenerator_Generate_Simulation(t *testing.T) {
	g := NewJSONGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeSimulation,
		SimulationData: &SimulationReportData{
			ScenarioType:      "monte-carlo",
			BaselineObjective: 100.0,
			BaselineMakespan:  20.0,
			MonteCarlo: &MonteCarloData{
				Iterations:   1000,
				MeanMakespan: 21.5,
				StdDev:       1.2,
			},
			Sensitivity: []*SensitivityData{
				{ParameterID: "edge_1_2", Elasticity: 0.5, SensitivityIndex: 0.8, Level: "HIGH"},
			},
			Resilience: &ResilienceData{
				OverallScore:          0.85,
				SinglePointsOfFailure: 2,
				NMinusOneFeasible:     true,
			},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var report JSONReport
	if err := json.Unmarshal(result, &report); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if report.Simulation == nil {
		t.Fatal("Simulation should not be nil")
	}
	if report.Simulation.Type != "monte-carlo" {
		t.Errorf("Type = %v, want 'monte-carlo'", report.Simulation.Type)
	}
	if report.Simulation.MonteCarlo == nil {
		t.Fatal("MonteCarlo should not be nil")
	}
	if report.Simulation.MonteCarlo.Iterations != 1000 {
		t.Errorf("Iterations = %d, want 1000", report.Simulation.MonteCarlo.Iterations)
	}
}

func TestJSONGenerator_Generate_Comparison(t *testing.T) {
	g := NewJSONGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeComparison,
		ComparisonData: []*ComparisonItemData{
			{Name: "Baseline", Objective: 100.0, Makespan: 20.0, Efficiency: 0.8, Metrics: map[string]float64{"metric1": 10.0}},
			{Name: "Scenario A", Objective: 90.0, Makespan: 18.0, Efficiency: 0.85, Metrics: map[string]float64{"metric1": 12.0}},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var report JSONReport
	if err := json.Unmarshal(result, &report); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if len(report.Comparison) != 2 {
		t.Errorf("Comparison length = %d, want 2", len(report.Comparison))
	}
	if report.Comparison[0].Name != "Baseline" {
		t.Errorf("First comparison name = %v, want 'Baseline'", report.Comparison[0].Name)
	}
}
