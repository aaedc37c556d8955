// services/report-svc/internal/generator/markdown.go
package generator

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// MarkdownGenerator renders a ReportData as Markdown.
type MarkdownGenerator struct {
	BaseGenerator
}

// NewMarkdownGenerator constructs a MarkdownGenerator.
func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// Format reports the generator's output format.
func (g *MarkdownGenerator) Format() ReportFormat {
	return FormatMarkdown
}

// Generate renders data as Markdown.
func (g *MarkdownGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	var buf bytes.Buffer

	g.writeHeader(&buf, data)

	switch data.Type {
	case ReportTypeSolve:
		g.writeSolveReport(&buf, data)
	case ReportTypeAnalytics:
		g.writeAnalyticsReport(&buf, data)
	case ReportTypeSimulation:
		g.writeSimulationReport(&buf, data)
	case ReportTypeSummary:
		g.writeSummaryReport(&buf, data)
	case ReportTypeComparison:
		g.writeComparisonReport(&buf, data)
	default:
		g.writeSolveReport(&buf, data)
	}

	g.writeFooter(&buf)

	return buf.Bytes(), nil
}

func (g *MarkdownGenerator) writeHeader(buf *bytes.Buffer, data *ReportData) {
	title := g.GetTitle(data)
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	buf.WriteString("## Report Information\n\n")
	buf.WriteString(fmt.Sprintf("- **Generated:** %s\n", time.Now().Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("- **Author:** %s\n", g.GetAuthor(data)))

	if desc := g.GetDescription(data); desc != "" {
		buf.WriteString(fmt.Sprintf("- **Description:** %s\n", desc))
	}

	buf.WriteString("\n---\n\n")
}

func (g *MarkdownGenerator) writeSolveReport(buf *bytes.Buffer, data *ReportData) {
	if data.Graph != nil {
		buf.WriteString("## Graph Information\n\n")
		buf.WriteString(fmt.Sprintf("- **Vertices:** %d\n", data.Graph.VertexCount))
		buf.WriteString(fmt.Sprintf("- **Edges:** %d\n", data.Graph.EdgeCount))
		buf.WriteString(fmt.Sprintf("- **Agents:** %d\n", data.Graph.AgentCount))
		buf.WriteString("\n")
	}

	if data.Solve != nil {
		buf.WriteString("## Solve Results\n\n")
		buf.WriteString(fmt.Sprintf("- **Mode:** %s\n", data.Solve.Mode))
		buf.WriteString(fmt.Sprintf("- **Objective:** %.4f\n", data.Solve.Objective))
		buf.WriteString(fmt.Sprintf("- **Makespan:** %.4f\n", data.Solve.Makespan))
		buf.WriteString(fmt.Sprintf("- **Variables:** %d\n", data.Solve.Stats.VariableCount))
		buf.WriteString(fmt.Sprintf("- **Constraints:** %d\n", data.Solve.Stats.ConstraintCount))
		buf.WriteString(fmt.Sprintf("- **Computation Time:** %d ms\n", data.Solve.Stats.SolveDurationMS))
		buf.WriteString("\n")
	}

	if rows := PathRows(data.Paths); len(rows) > 0 && g.ShouldIncludeRawData(data) {
		buf.WriteString("### Agent Paths\n\n")
		buf.WriteString("| Agent | Step | From | To | Arrival | Cost |\n")
		buf.WriteString("|-------|------|------|----|---------|------|\n")
		for _, row := range rows {
			buf.WriteString(fmt.Sprintf("| %d | %d | %d | %d | %.4f | %.4f |\n",
				row.Agent, row.Step, row.From, row.To, row.ArrivalTime, row.Cost))
		}
		buf.WriteString("\n")
	}
}

func (g *MarkdownGenerator) writeAnalyticsReport(buf *bytes.Buffer, data *ReportData) {
	if data.AnalyticsData == nil {
		buf.WriteString("*No analytics data available*\n\n")
		return
	}

	ad := data.AnalyticsData

	buf.WriteString("## Wait Cost Summary\n\n")
	buf.WriteString(fmt.Sprintf("- **Total Wait Cost:** %.4f\n\n", ad.TotalWaitCost))

	if len(ad.Bottlenecks) > 0 {
		buf.WriteString("## Bottlenecks\n\n")
		buf.WriteString("| From → To | Occupancy | Impact | Severity |\n")
		buf.WriteString("|-----------|-----------|--------|----------|\n")
		for _, bn := range ad.Bottlenecks {
			buf.WriteString(fmt.Sprintf("| %d → %d | %d | %.2f | %s |\n",
				bn.From, bn.To, bn.Occupancy, bn.ImpactScore, bn.Severity))
		}
		buf.WriteString("\n")
	}

	if len(ad.Recommendations) > 0 && g.ShouldIncludeRecommendations(data) {
		buf.WriteString("## Recommendations\n\n")
		for i, rec := range ad.Recommendations {
			buf.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, rec.Type))
			buf.WriteString(fmt.Sprintf("%s\n\n", rec.Description))
			if rec.EstimatedImprovement > 0 {
				buf.WriteString(fmt.Sprintf("- Expected improvement: **%.1f%%**\n", rec.EstimatedImprovement*100))
			}
			if rec.EstimatedCost > 0 {
				buf.WriteString(fmt.Sprintf("- Estimated cost: **%.2f**\n", rec.EstimatedCost))
			}
			buf.WriteString("\n")
		}
	}

	if ad.Efficiency != nil {
		buf.WriteString("## Efficiency Metrics\n\n")
		buf.WriteString(fmt.Sprintf("- **Overall Efficiency:** %.1f%%\n", ad.Efficiency.OverallEfficiency*100))
		buf.WriteString(fmt.Sprintf("- **Path Optimality Ratio:** %.1f%%\n", ad.Efficiency.PathOptimalityRatio*100))
		buf.WriteString(fmt.Sprintf("- **Unused Edges:** %d\n", ad.Efficiency.UnusedEdges))
		buf.WriteString(fmt.Sprintf("- **Saturated Edges:** %d\n", ad.Efficiency.SaturatedEdges))
		buf.WriteString(fmt.Sprintf("- **Grade:** %s\n", ad.Efficiency.Grade))
		buf.WriteString("\n")
	}
}

func (g *MarkdownGenerator) writeSimulationReport(buf *bytes.Buffer, data *ReportData) {
	if data.SimulationData == nil {
		buf.WriteString("*No simulation data available*\n\n")
		return
	}

	sd := data.SimulationData

	buf.WriteString(fmt.Sprintf("## Scenario Type: %s\n\n", sd.ScenarioType))
	buf.WriteString("### Baseline\n\n")
	buf.WriteString(fmt.Sprintf("- **Baseline Objective:** %.4f\n", sd.BaselineObjective))
	buf.WriteString(fmt.Sprintf("- **Baseline Makespan:** %.2f\n", sd.BaselineMakespan))
	buf.WriteString("\n")

	if len(sd.Scenarios) > 0 {
		buf.WriteString("### Scenario Results\n\n")
		buf.WriteString("| Scenario | Objective | Makespan | Change | Impact |\n")
		buf.WriteString("|----------|-----------|----------|--------|--------|\n")
		for _, sc := range sd.Scenarios {
			buf.WriteString(fmt.Sprintf("| %s | %.4f | %.2f | %.1f%% | %s |\n",
				sc.Name, sc.Objective, sc.Makespan, sc.ObjectiveChangePercent, sc.ImpactLevel))
		}
		buf.WriteString("\n")
	}

	if sd.MonteCarlo != nil {
		mc := sd.MonteCarlo
		buf.WriteString("### Monte Carlo Results\n\n")
		buf.WriteString(fmt.Sprintf("- **Iterations:** %d\n", mc.Iterations))
		buf.WriteString(fmt.Sprintf("- **Mean Makespan:** %.4f ± %.4f\n", mc.MeanMakespan, mc.StdDev))
		buf.WriteString(fmt.Sprintf("- **Range:** %.4f - %.4f\n", mc.MinMakespan, mc.MaxMakespan))
		buf.WriteString(fmt.Sprintf("- **Median (P50):** %.4f\n", mc.P50))
		buf.WriteString(fmt.Sprintf("- **P5 - P95:** %.4f - %.4f\n", mc.P5, mc.P95))
		buf.WriteString(fmt.Sprintf("- **Confidence Interval (%.0f%%):** %.4f - %.4f\n",
			mc.ConfidenceLevel*100, mc.CiLow, mc.CiHigh))
		buf.WriteString("\n")
	}

	if len(sd.Sensitivity) > 0 {
		buf.WriteString("### Sensitivity Analysis\n\n")
		buf.WriteString("| Parameter | Elasticity | Index | Level |\n")
		buf.WriteString("|-----------|------------|-------|-------|\n")
		for _, sp := range sd.Sensitivity {
			buf.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %s |\n",
				sp.ParameterID, sp.Elasticity, sp.SensitivityIndex, sp.Level))
		}
		buf.WriteString("\n")
	}

	if sd.Resilience != nil {
		r := sd.Resilience
		buf.WriteString("### Resilience Analysis\n\n")
		buf.WriteString(fmt.Sprintf("- **Overall Score:** %.2f\n", r.OverallScore))
		buf.WriteString(fmt.Sprintf("- **Single Points of Failure:** %d\n", r.SinglePointsOfFailure))
		buf.WriteString(fmt.Sprintf("- **Worst Case Makespan Delta:** %.1f%%\n", r.WorstCaseMakespanDelta*100))
		buf.WriteString(fmt.Sprintf("- **N-1 Feasible:** %v\n", r.NMinusOneFeasible))
		buf.WriteString("\n")
	}
}

func (g *MarkdownGenerator) writeSummaryReport(buf *bytes.Buffer, data *ReportData) {
	buf.WriteString("## Summary Report\n\n")

	if data.Solve != nil {
		g.writeSolveReport(buf, data)
	}

	if data.AnalyticsData != nil {
		g.writeAnalyticsReport(buf, data)
	}

	if data.SimulationData != nil {
		g.writeSimulationReport(buf, data)
	}
}

func (g *MarkdownGenerator) writeComparisonReport(buf *bytes.Buffer, data *ReportData) {
	if len(data.ComparisonData) == 0 {
		buf.WriteString("*No comparison data available*\n\n")
		return
	}

	buf.WriteString("## Scenario Comparison\n\n")

	buf.WriteString("| Scenario | Objective | Makespan | Efficiency |\n")
	buf.WriteString("|----------|-----------|----------|------------|\n")
	for _, item := range data.ComparisonData {
		buf.WriteString(fmt.Sprintf("| %s | %.4f | %.2f | %.1f%% |\n",
			item.Name, item.Objective, item.Makespan, item.Efficiency*100))
	}
	buf.WriteString("\n")

	if len(data.ComparisonData) > 0 && len(data.ComparisonData[0].Metrics) > 0 {
		buf.WriteString("### Detailed Metrics\n\n")

		metricsKeys := make(map[string]bool)
		for _, item := range data.ComparisonData {
			for k := range item.Metrics {
				metricsKeys[k] = true
			}
		}

		header := "| Metric |"
		separator := "|--------|"
		for _, item := range data.ComparisonData {
			header += fmt.Sprintf(" %s |", item.Name)
			separator += "--------|"
		}
		buf.WriteString(header + "\n")
		buf.WriteString(separator + "\n")

		for metric := range metricsKeys {
			row := fmt.Sprintf("| %s |", metric)
			for _, item := range data.ComparisonData {
				val := item.Metrics[metric]
				row += fmt.Sprintf(" %.4f |", val)
			}
			buf.WriteString(row + "\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("### Conclusions\n\n")
	best := g.findBest(data.ComparisonData)
	if best != nil {
		buf.WriteString(fmt.Sprintf("Best scenario by objective: **%s** (%.4f)\n\n", best.Name, best.Objective))
	}
}

func (g *MarkdownGenerator) findBest(items []*ComparisonItemData) *ComparisonItemData {
	if len(items) == 0 {
		return nil
	}
	best := items[0]
	for _, item := range items[1:] {
		if item.Objective < best.Objective {
			best = item
		}
	}
	return best
}

func (g *MarkdownGenerator) writeFooter(buf *bytes.Buffer) {
	buf.WriteString("\n---\n\n")
	buf.WriteString("*Report generated automatically by the MAPF platform*\n")
	buf.WriteString(fmt.Sprintf("*%s*\n", time.Now().Format("2006-01-02 15:04:05")))
}
