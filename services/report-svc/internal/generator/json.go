// services/report-svc/internal/generator/json.go
package generator

import (
	"context"
	"encoding/json"
	"time"
)

// JSONGenerator renders a ReportData as a self-describing JSON document.
type JSONGenerator struct {
	BaseGenerator
}

// NewJSONGenerator constructs a JSONGenerator.
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

// Format reports the generator's output format.
func (g *JSONGenerator) Format() ReportFormat {
	return FormatJSON
}

// JSONReport is the top-level shape of a JSON report.
type JSONReport struct {
	Metadata   JSONMetadata      `json:"metadata"`
	Graph      *JSONGraph        `json:"graph,omitempty"`
	Solve      *JSONSolve        `json:"solve,omitempty"`
	Analytics  *JSONAnalytics    `json:"analytics,omitempty"`
	Simulation *JSONSimulation   `json:"simulation,omitempty"`
	Comparison []*JSONComparison `json:"comparison,omitempty"`
}

type JSONMetadata struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
	GeneratedAt string `json:"generatedAt"`
	ReportType  string `json:"reportType"`
	Version     string `json:"version"`
}

type JSONGraph struct {
	VertexCount int `json:"vertexCount"`
	EdgeCount   int `json:"edgeCount"`
	AgentCount  int `json:"agentCount"`
}

type JSONSolve struct {
	Mode            string        `json:"mode"`
	Objective       float64       `json:"objective"`
	Makespan        float64       `json:"makespan"`
	VariableCount   int           `json:"variableCount"`
	ConstraintCount int           `json:"constraintCount"`
	SolveDurationMS int64         `json:"solveDurationMs"`
	Paths           []*JSONPathRow `json:"paths,omitempty"`
}

type JSONPathRow struct {
	Agent       int     `json:"agent"`
	Step        int     `json:"step"`
	From        int     `json:"from"`
	To          int     `json:"to"`
	ArrivalTime float64 `json:"arrivalTime"`
	Cost        float64 `json:"cost"`
}

type JSONAnalytics struct {
	TotalWaitCost   float64               `json:"totalWaitCost"`
	Bottlenecks     []*JSONBottleneck     `json:"bottlenecks,omitempty"`
	Recommendations []*JSONRecommendation `json:"recommendations,omitempty"`
	Efficiency      *JSONEfficiency       `json:"efficiency,omitempty"`
}

type JSONBottleneck struct {
	From        int     `json:"from"`
	To          int     `json:"to"`
	Occupancy   int     `json:"occupancy"`
	ImpactScore float64 `json:"impactScore"`
	Severity    string  `json:"severity"`
}

type JSONRecommendation struct {
	Type                 string  `json:"type"`
	Description          string  `json:"description"`
	AffectedEdgeFrom     int     `json:"affectedEdgeFrom,omitempty"`
	AffectedEdgeTo       int     `json:"affectedEdgeTo,omitempty"`
	EstimatedImprovement float64 `json:"estimatedImprovement"`
	EstimatedCost        float64 `json:"estimatedCost"`
}

type JSONEfficiency struct {
	OverallEfficiency   float64 `json:"overallEfficiency"`
	PathOptimalityRatio float64 `json:"pathOptimalityRatio"`
	UnusedEdges         int     `json:"unusedEdges"`
	SaturatedEdges      int     `json:"saturatedEdges"`
	Grade               string  `json:"grade"`
}

type JSONSimulation struct {
	Type              string           `json:"type"`
	BaselineObjective float64          `json:"baselineObjective"`
	BaselineMakespan  float64          `json:"baselineMakespan"`
	Scenarios         []*JSONScenario  `json:"scenarios,omitempty"`
	MonteCarlo        *JSONMonteCarlo  `json:"monteCarlo,omitempty"`
	Sensitivity       []*JSONSensParam `json:"sensitivity,omitempty"`
	Resilience        *JSONResilience  `json:"resilience,omitempty"`
}

type JSONScenario struct {
	Name                   string  `json:"name"`
	Objective              float64 `json:"objective"`
	Makespan               float64 `json:"makespan"`
	ObjectiveChangePercent float64 `json:"objectiveChangePercent"`
	ImpactLevel            string  `json:"impactLevel"`
}

type JSONMonteCarlo struct {
	Iterations      int     `json:"iterations"`
	MeanMakespan    float64 `json:"meanMakespan"`
	StdDev          float64 `json:"stdDev"`
	MinMakespan     float64 `json:"minMakespan"`
	MaxMakespan     float64 `json:"maxMakespan"`
	P5              float64 `json:"p5"`
	P50             float64 `json:"p50"`
	P95             float64 `json:"p95"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
	CiLow           float64 `json:"ciLow"`
	CiHigh          float64 `json:"ciHigh"`
}

type JSONSensParam struct {
	ParameterID      string  `json:"parameterId"`
	Elasticity       float64 `json:"elasticity"`
	SensitivityIndex float64 `json:"sensitivityIndex"`
	Level            string  `json:"level"`
}

type JSONResilience struct {
	OverallScore           float64 `json:"overallScore"`
	SinglePointsOfFailure  int     `json:"singlePointsOfFailure"`
	WorstCaseMakespanDelta float64 `json:"worstCaseMakespanDelta"`
	NMinusOneFeasible      bool    `json:"nMinusOneFeasible"`
}

type JSONComparison struct {
	Name       string             `json:"name"`
	Objective  float64            `json:"objective"`
	Makespan   float64            `json:"makespan"`
	Efficiency float64            `json:"efficiency"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Generate renders data as JSON.
func (g *JSONGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	report := JSONReport{
		Metadata: JSONMetadata{
			Title:       g.GetTitle(data),
			Author:      g.GetAuthor(data),
			Description: g.GetDescription(data),
			GeneratedAt: time.Now().Format(time.RFC3339),
			ReportType:  string(data.Type),
			Version:     "1.0",
		},
	}

	if data.Graph != nil {
		report.Graph = &JSONGraph{
			VertexCount: data.Graph.VertexCount,
			EdgeCount:   data.Graph.EdgeCount,
			AgentCount:  data.Graph.AgentCount,
		}
	}

	if data.Solve != nil {
		sv := &JSONSolve{
			Mode:            data.Solve.Mode,
			Objective:       data.Solve.Objective,
			Makespan:        data.Solve.Makespan,
			VariableCount:   data.Solve.Stats.VariableCount,
			ConstraintCount: data.Solve.Stats.ConstraintCount,
			SolveDurationMS: data.Solve.Stats.SolveDurationMS,
		}

		if g.ShouldIncludeRawData(data) {
			for _, row := range PathRows(data.Paths) {
				sv.Paths = append(sv.Paths, &JSONPathRow{
					Agent:       row.Agent,
					Step:        row.Step,
					From:        row.From,
					To:          row.To,
					ArrivalTime: row.ArrivalTime,
					Cost:        row.Cost,
				})
			}
		}
		report.Solve = sv
	}

	if data.AnalyticsData != nil {
		ad := data.AnalyticsData
		analytics := &JSONAnalytics{
			TotalWaitCost: ad.TotalWaitCost,
		}

		for _, bn := range ad.Bottlenecks {
			analytics.Bottlenecks = append(analytics.Bottlenecks, &JSONBottleneck{
				From:        bn.From,
				To:          bn.To,
				Occupancy:   bn.Occupancy,
				ImpactScore: bn.ImpactScore,
				Severity:    bn.Severity,
			})
		}

		if g.ShouldIncludeRecommendations(data) {
			for _, rec := range ad.Recommendations {
				analytics.Recommendations = append(analytics.Recommendations, &JSONRecommendation{
					Type:                 rec.Type,
					Description:          rec.Description,
					AffectedEdgeFrom:     rec.AffectedEdgeFrom,
					AffectedEdgeTo:       rec.AffectedEdgeTo,
					EstimatedImprovement: rec.EstimatedImprovement,
					EstimatedCost:        rec.EstimatedCost,
				})
			}
		}

		if ad.Efficiency != nil {
			analytics.Efficiency = &JSONEfficiency{
				OverallEfficiency:   ad.Efficiency.OverallEfficiency,
				PathOptimalityRatio: ad.Efficiency.PathOptimalityRatio,
				UnusedEdges:         ad.Efficiency.UnusedEdges,
				SaturatedEdges:      ad.Efficiency.SaturatedEdges,
				Grade:               ad.Efficiency.Grade,
			}
		}
		report.Analytics = analytics
	}

	if data.SimulationData != nil {
		sd := data.SimulationData
		sim := &JSONSimulation{
			Type:              sd.ScenarioType,
			BaselineObjective: sd.BaselineObjective,
			BaselineMakespan:  sd.BaselineMakespan,
		}

		for _, sc := range sd.Scenarios {
			sim.Scenarios = append(sim.Scenarios, &JSONScenario{
				Name:                   sc.Name,
				Objective:              sc.Objective,
				Makespan:               sc.Makespan,
				ObjectiveChangePercent: sc.ObjectiveChangePercent,
				ImpactLevel:            sc.ImpactLevel,
			})
		}

		if sd.MonteCarlo != nil {
			mc := sd.MonteCarlo
			sim.MonteCarlo = &JSONMonteCarlo{
				Iterations:      mc.Iterations,
				MeanMakespan:    mc.MeanMakespan,
				StdDev:          mc.StdDev,
				MinMakespan:     mc.MinMakespan,
				MaxMakespan:     mc.MaxMakespan,
				P5:              mc.P5,
				P50:             mc.P50,
				P95:             mc.P95,
				ConfidenceLevel: mc.ConfidenceLevel,
				CiLow:           mc.CiLow,
				CiHigh:          mc.CiHigh,
			}
		}

		for _, sp := range sd.Sensitivity {
			sim.Sensitivity = append(sim.Sensitivity, &JSONSensParam{
				ParameterID:      sp.ParameterID,
				Elasticity:       sp.Elasticity,
				SensitivityIndex: sp.SensitivityIndex,
				Level:            sp.Level,
			})
		}

		if sd.Resilience != nil {
			r := sd.Resilience
			sim.Resilience = &JSONResilience{
				OverallScore:           r.OverallScore,
				SinglePointsOfFailure:  r.SinglePointsOfFailure,
				WorstCaseMakespanDelta: r.WorstCaseMakespanDelta,
				NMinusOneFeasible:      r.NMinusOneFeasible,
			}
		}
		report.Simulation = sim
	}

	for _, item := range data.ComparisonData {
		report.Comparison = append(report.Comparison, &JSONComparison{
			Name:       item.Name,
			Objective:  item.Objective,
			Makespan:   item.Makespan,
			Efficiency: item.Efficiency,
			Metrics:    item.Metrics,
		})
	}

	return json.MarshalIndent(report, "", "  ")
}
