// services/report-svc/internal/generator/csv.go
package generator

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// CSVGenerator renders a ReportData as CSV.
type CSVGenerator struct {
	BaseGenerator
}

// NewCSVGenerator constructs a CSVGenerator.
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

// Format reports the generator's output format.
func (g *CSVGenerator) Format() ReportFormat {
	return FormatCSV
}

// csvWriter wraps csv.Writer to defer error checking to the end.
type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

func (cw *csvWriter) Error() error {
	return cw.err
}

// Generate renders data as CSV.
func (g *CSVGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	var buf bytes.Buffer
	cw := &csvWriter{w: csv.NewWriter(&buf)}

	switch data.Type {
	case ReportTypeSolve:
		g.writeSolveCSV(cw, data)
	case ReportTypeAnalytics:
		g.writeAnalyticsCSV(cw, data)
	case ReportTypeSimulation:
		g.writeSimulationCSV(cw, data)
	case ReportTypeComparison:
		g.writeComparisonCSV(cw, data)
	case ReportTypeSummary:
		g.writeSummaryCSV(cw, data)
	default:
		g.writeSolveCSV(cw, data)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv write error: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *CSVGenerator) writeSolveCSV(w *csvWriter, data *ReportData) {
	w.Write([]string{"# MAPF Solve Report"})
	w.Write([]string{""})

	if data.Graph != nil {
		w.Write([]string{"Graph Info"})
		w.Write([]string{"Vertices", fmt.Sprintf("%d", data.Graph.VertexCount)})
		w.Write([]string{"Edges", fmt.Sprintf("%d", data.Graph.EdgeCount)})
		w.Write([]string{"Agents", fmt.Sprintf("%d", data.Graph.AgentCount)})
		w.Write([]string{""})
	}

	if data.Solve != nil {
		w.Write([]string{"Solve Results"})
		w.Write([]string{"Mode", data.Solve.Mode})
		w.Write([]string{"Objective", g.FormatFloat(data.Solve.Objective, 4)})
		w.Write([]string{"Makespan", g.FormatFloat(data.Solve.Makespan, 4)})
		w.Write([]string{"Variables", fmt.Sprintf("%d", data.Solve.Stats.VariableCount)})
		w.Write([]string{"Constraints", fmt.Sprintf("%d", data.Solve.Stats.ConstraintCount)})
		w.Write([]string{"Computation Time (ms)", fmt.Sprintf("%d", data.Solve.Stats.SolveDurationMS)})
		w.Write([]string{""})
	}

	if rows := PathRows(data.Paths); len(rows) > 0 && g.ShouldIncludeRawData(data) {
		w.Write([]string{"Agent Paths"})
		w.Write([]string{"Agent", "Step", "From", "To", "Arrival Time", "Cost"})
		for _, row := range rows {
			w.Write([]string{
				fmt.Sprintf("%d", row.Agent),
				fmt.Sprintf("%d", row.Step),
				fmt.Sprintf("%d", row.From),
				fmt.Sprintf("%d", row.To),
				g.FormatFloat(row.ArrivalTime, 4),
				g.FormatFloat(row.Cost, 4),
			})
		}
	}
}

func (g *CSVGenerator) writeAnalyticsCSV(w *csvWriter, data *ReportData) {
	w.Write([]string{"# Analytics Report"})
	w.Write([]string{""})

	if data.AnalyticsData == nil {
		w.Write([]string{"No analytics data"})
		return
	}

	ad := data.AnalyticsData

	w.Write([]string{"Wait Cost Summary"})
	w.Write([]string{"Total Wait Cost", g.FormatFloat(ad.TotalWaitCost, 4)})
	w.Write([]string{""})

	if len(ad.Bottlenecks) > 0 {
		w.Write([]string{"Bottlenecks"})
		w.Write([]string{"From", "To", "Occupancy", "Impact Score", "Severity"})
		for _, bn := range ad.Bottlenecks {
			w.Write([]string{
				fmt.Sprintf("%d", bn.From),
				fmt.Sprintf("%d", bn.To),
				fmt.Sprintf("%d", bn.Occupancy),
				g.FormatFloat(bn.ImpactScore, 4),
				bn.Severity,
			})
		}
		w.Write([]string{""})
	}

	if len(ad.Recommendations) > 0 && g.ShouldIncludeRecommendations(data) {
		w.Write([]string{"Recommendations"})
		w.Write([]string{"Type", "Description", "Estimated Improvement", "Estimated Cost"})
		for _, rec := range ad.Recommendations {
			w.Write([]string{
				rec.Type,
				rec.Description,
				g.FormatFloat(rec.EstimatedImprovement, 4),
				g.FormatFloat(rec.EstimatedCost, 4),
			})
		}
		w.Write([]string{""})
	}

	if ad.Efficiency != nil {
		w.Write([]string{"Efficiency Metrics"})
		w.Write([]string{"Metric", "Value"})
		w.Write([]string{"Overall Efficiency", g.FormatFloat(ad.Efficiency.OverallEfficiency, 4)})
		w.Write([]string{"Path Optimality Ratio", g.FormatFloat(ad.Efficiency.PathOptimalityRatio, 4)})
		w.Write([]string{"Unused Edges", fmt.Sprintf("%d", ad.Efficiency.UnusedEdges)})
		w.Write([]string{"Saturated Edges", fmt.Sprintf("%d", ad.Efficiency.SaturatedEdges)})
		w.Write([]string{"Grade", ad.Efficiency.Grade})
	}
}

func (g *CSVGenerator) writeSimulationCSV(w *csvWriter, data *ReportData) {
	w.Write([]string{"# Simulation Report"})
	w.Write([]string{""})

	if data.SimulationData == nil {
		w.Write([]string{"No simulation data"})
		return
	}

	sd := data.SimulationData

	w.Write([]string{"Scenario Type", sd.ScenarioType})
	w.Write([]string{"Baseline Objective", g.FormatFloat(sd.BaselineObjective, 4)})
	w.Write([]string{"Baseline Makespan", g.FormatFloat(sd.BaselineMakespan, 4)})
	w.Write([]string{""})

	if len(sd.Scenarios) > 0 {
		w.Write([]string{"Scenarios"})
		w.Write([]string{"Name", "Objective", "Makespan", "Objective Change %", "Impact Level"})
		for _, sc := range sd.Scenarios {
			w.Write([]string{
				sc.Name,
				g.FormatFloat(sc.Objective, 4),
				g.FormatFloat(sc.Makespan, 4),
				g.FormatFloat(sc.ObjectiveChangePercent, 2),
				sc.ImpactLevel,
			})
		}
		w.Write([]string{""})
	}

	if sd.MonteCarlo != nil {
		mc := sd.MonteCarlo
		w.Write([]string{"Monte Carlo Results"})
		w.Write([]string{"Metric", "Value"})
		w.Write([]string{"Iterations", fmt.Sprintf("%d", mc.Iterations)})
		w.Write([]string{"Mean Makespan", g.FormatFloat(mc.MeanMakespan, 4)})
		w.Write([]string{"Std Dev", g.FormatFloat(mc.StdDev, 4)})
		w.Write([]string{"Min Makespan", g.FormatFloat(mc.MinMakespan, 4)})
		w.Write([]string{"Max Makespan", g.FormatFloat(mc.MaxMakespan, 4)})
		w.Write([]string{"P5", g.FormatFloat(mc.P5, 4)})
		w.Write([]string{"P50 (Median)", g.FormatFloat(mc.P50, 4)})
		w.Write([]string{"P95", g.FormatFloat(mc.P95, 4)})
		w.Write([]string{"Confidence Level", g.FormatFloat(mc.ConfidenceLevel, 4)})
		w.Write([]string{"CI Low", g.FormatFloat(mc.CiLow, 4)})
		w.Write([]string{"CI High", g.FormatFloat(mc.CiHigh, 4)})
		w.Write([]string{""})
	}

	if len(sd.Sensitivity) > 0 {
		w.Write([]string{"Sensitivity Analysis"})
		w.Write([]string{"Parameter", "Elasticity", "Sensitivity Index", "Level"})
		for _, sp := range sd.Sensitivity {
			w.Write([]string{
				sp.ParameterID,
				g.FormatFloat(sp.Elasticity, 4),
				g.FormatFloat(sp.SensitivityIndex, 4),
				sp.Level,
			})
		}
		w.Write([]string{""})
	}

	if sd.Resilience != nil {
		r := sd.Resilience
		w.Write([]string{"Resilience Analysis"})
		w.Write([]string{"Metric", "Value"})
		w.Write([]string{"Overall Score", g.FormatFloat(r.OverallScore, 4)})
		w.Write([]string{"Single Points of Failure", fmt.Sprintf("%d", r.SinglePointsOfFailure)})
		w.Write([]string{"Worst Case Makespan Delta", g.FormatFloat(r.WorstCaseMakespanDelta, 4)})
		w.Write([]string{"N-1 Feasible", fmt.Sprintf("%v", r.NMinusOneFeasible)})
	}
}

func (g *CSVGenerator) writeComparisonCSV(w *csvWriter, data *ReportData) {
	w.Write([]string{"# Comparison Report"})
	w.Write([]string{""})

	if len(data.ComparisonData) == 0 {
		w.Write([]string{"No comparison data"})
		return
	}

	w.Write([]string{"Scenario Comparison"})
	w.Write([]string{"Name", "Objective", "Makespan", "Efficiency"})
	for _, item := range data.ComparisonData {
		w.Write([]string{
			item.Name,
			g.FormatFloat(item.Objective, 4),
			g.FormatFloat(item.Makespan, 4),
			g.FormatFloat(item.Efficiency, 4),
		})
	}
	w.Write([]string{""})

	if len(data.ComparisonData) > 0 && len(data.ComparisonData[0].Metrics) > 0 {
		var keys []string
		for k := range data.ComparisonData[0].Metrics {
			keys = append(keys, k)
		}

		header := []string{"Metric"}
		for _, item := range data.ComparisonData {
			header = append(header, item.Name)
		}
		w.Write(header)

		for _, key := range keys {
			row := []string{key}
			for _, item := range data.ComparisonData {
				row = append(row, g.FormatFloat(item.Metrics[key], 4))
			}
			w.Write(row)
		}
	}
}

func (g *CSVGenerator) writeSummaryCSV(w *csvWriter, data *ReportData) {
	w.Write([]string{"# Summary Report"})
	w.Write([]string{""})

	g.writeSolveCSV(w, data)

	if data.AnalyticsData != nil {
		w.Write([]string{""})
		w.Write([]string{"=== ANALYTICS ==="})
		g.writeAnalyticsCSV(w, data)
	}

	if data.SimulationData != nil {
		w.Write([]string{""})
		w.Write([]string{"=== SIMULATION ==="})
		g.writeSimulationCSV(w, data)
	}
}
