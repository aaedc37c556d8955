// services/report-svc/internal/generator/markdown_test.go

package generator

import (
	"context"
	"strings"
	"testing"

	"mapfnet/pkg/domain"
)

func TestNewMarkdownGenerator(t *testing.T) {
	g := NewMarkdownGenerator()
	if g == nil {
		t.Fatal("NewMarkdownGenerator should not return nil")
	}
}

func TestMarkdownGenerator_Format(t *testing.T) {
	g := NewMarkdownGenerator()
	if g.Format() != FormatMarkdown {
		t.Errorf("Format() = %v, want MARKDOWN", g.Format())
	}
}

func TestMarkdownGenerator_Generate_Solve(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeSolve,
		Options: &ReportOptions{
			Title:          "Solve Report",
			Author:         "Test",
			IncludeRawData: true,
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
		Paths: map[int]*domain.AgentPath{
			1: {Agent: 1, Edges: []domain.TimedEdge{{From: 1, To: 2, Time: 3.0}}, Cost: 100.0},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "# Solve Report") {
		t.Error("Should contain title")
	}
	if !strings.Contains(md, "## Graph Information") {
		t.Error("Should contain graph section")
	}
	if !strings.Contains(md, "## Solve Results") {
		t.Error("Should contain solve results section")
	}
	if !strings.Contains(md, "**Objective:**") {
		t.Error("Should contain objective")
	}
	if !strings.Contains(md, "| Agent | Step | From | To | Arrival | Cost |") {
		t.Error("Should contain agent path table header")
	}
}

func TestMarkdownGenerator_Generate_Analytics(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeAnalytics,
		Options: &ReportOptions{
			IncludeRecommendations: true,
		},
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
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "## Wait Cost Summary") {
		t.Error("Should contain wait cost section")
	}
	if !strings.Contains(md, "## Bottlenecks") {
		t.Error("Should contain bottlenecks section")
	}
	if !strings.Contains(md, "## Recommendations") {
		t.Error("Should contain recommendations section")
	}
	if !strings.Contains(md, "## Efficiency Metrics") {
		t.Error("Should contain efficiency section")
	}
	if !strings.Contains(md, "**Grade:** B") {
		t.Error("Should contain grade")
	}
}

func TestMarkdownGenerator_Generate_Comparison(t *testing.T) {
	g := NewMarkdownGenerator()
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

	md := string(result)

	if !strings.Contains(md, "## Scenario Comparison") {
		t.Error("Should contain comparison section")
	}
	if !strings.Contains(md, "| Baseline |") {
		t.Error("Should contain baseline in table")
	}
	if !strings.Contains(md, "### Conclusions") {
		t.Error("Should contain conclusions")
	}
	if !strings.Contains(md, "Best scenario by objective") {
		t.Error("Should identify best scenario")
	}
}

func TestMarkdownGenerator_Generate_Simulation(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeSimulation,
		SimulationData: &SimulationReportData{
			ScenarioType:      "Monte Carlo",
			BaselineObjective: 100.0,
			BaselineMakespan:  20.0,
			MonteCarlo: &MonteCarloData{
				Iterations:      1000,
				MeanMakespan:    21.0,
				StdDev:          1.0,
				MinMakespan:     18.0,
				MaxMakespan:     25.0,
				P5:              19.0,
				P50:             21.0,
				P95:             24.0,
				ConfidenceLevel: 0.95,
				CiLow:           20.0,
				CiHigh:          22.0,
			},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "## Scenario Type: Monte Carlo") {
		t.Error("Should contain scenario type")
	}
	if !strings.Contains(md, "### Monte Carlo Results") {
		t.Error("Should contain Monte Carlo section")
	}
	if !strings.Contains(md, "**Mean Makespan:**") {
		t.Error("Should contain mean makespan")
	}
}

func TestMarkdownGenerator_Generate_Summary(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type:  ReportTypeSummary,
		Graph: &GraphSummary{VertexCount: 2, EdgeCount: 1, AgentCount: 1},
		Solve: &SolveReportData{
			Objective: 100.0,
			Makespan:  5.0,
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "## Summary Report") {
		t.Error("Should contain summary section")
	}
}

func TestMarkdownGenerator_Generate_NoData(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeAnalytics,
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "*No analytics data available*") {
		t.Error("Should contain no data message")
	}
}

func TestMarkdownGenerator_FindBest(t *testing.T) {
	g := NewMarkdownGenerator()

	items := []*ComparisonItemData{
		{Name: "A", Objective: 100.0},
		{Name: "B", Objective: 50.0},
		{Name: "C", Objective: 80.0},
	}

	best := g.findBest(items)
	if best == nil {
		t.Fatal("findBest should not return nil")
	}
	if best.Name != "B" {
		t.Errorf("Best scenario = %v, want B", best.Name)
	}
}

func TestMarkdownGenerator_FindBest_Empty(t *testing.T) {
	g := NewMarkdownGenerator()

	best := g.findBest([]*ComparisonItemData{})
	if best != nil {
		t.Error("findBest([]) should return nil")
	}
}

func TestMarkdownGenerator_Generate_WithSensitivity(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeSimulation,
		SimulationData: &SimulationReportData{
			ScenarioType:      "Sensitivity Analysis",
			BaselineObjective: 100.0,
			Sensitivity: []*SensitivityData{
				{ParameterID: "edge_1_2", Elasticity: 1.5, SensitivityIndex: 0.8, Level: "HIGH"},
				{ParameterID: "edge_2_3", Elasticity: 0.5, SensitivityIndex: 0.3, Level: "LOW"},
			},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "### Sensitivity Analysis") {
		t.Error("Should contain sensitivity section")
	}
	if !strings.Contains(md, "edge_1_2") {
		t.Error("Should contain parameter id")
	}
}

func TestMarkdownGenerator_Generate_WithResilience(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type: ReportTypeSimulation,
		SimulationData: &SimulationReportData{
			ScenarioType:      "Resilience Analysis",
			BaselineObjective: 100.0,
			Resilience: &ResilienceData{
				OverallScore:           0.85,
				SinglePointsOfFailure:  2,
				WorstCaseMakespanDelta: 0.25,
				NMinusOneFeasible:      true,
			},
		},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "### Resilience Analysis") {
		t.Error("Should contain resilience section")
	}
	if !strings.Contains(md, "**Overall Score:**") {
		t.Error("Should contain overall score")
	}
}

func TestMarkdownGenerator_Generate_EmptyComparison(t *testing.T) {
	g := NewMarkdownGenerator()
	ctx := context.Background()

	data := &ReportData{
		Type:           ReportTypeComparison,
		ComparisonData: []*ComparisonItemData{},
	}

	result, err := g.Generate(ctx, data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	md := string(result)

	if !strings.Contains(md, "*No comparison data available*") {
		t.Error("Should contain no data message for empty comparison")
	}
}
