// services/report-svc/internal/generator/excel.go
package generator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelGenerator renders a ReportData as an Excel workbook.
type ExcelGenerator struct {
	BaseGenerator
}

// NewExcelGenerator constructs an ExcelGenerator.
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Format reports the generator's output format.
func (g *ExcelGenerator) Format() ReportFormat {
	return FormatExcel
}

// Generate renders data as an Excel workbook.
func (g *ExcelGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.DeleteSheet("Sheet1")

	switch data.Type {
	case ReportTypeSolve:
		g.writeSolveExcel(f, data)
	case ReportTypeAnalytics:
		g.writeAnalyticsExcel(f, data)
	case ReportTypeSimulation:
		g.writeSimulationExcel(f, data)
	case ReportTypeSummary:
		g.writeSummaryExcel(f, data)
	case ReportTypeComparison:
		g.writeComparisonExcel(f, data)
	default:
		g.writeSolveExcel(f, data)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *ExcelGenerator) writeSolveExcel(f *excelize.File, data *ReportData) {
	sheetName := "Solve Results"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 1

	f.SetCellValue(sheetName, cellAddr("A", row), "MAPF Solve Report")
	f.MergeCell(sheetName, cellAddr("A", row), cellAddr("D", row))
	row += 2

	if data.Graph != nil {
		f.SetCellValue(sheetName, cellAddr("A", row), "Graph Information")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Vertices")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Graph.VertexCount)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Edges")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Graph.EdgeCount)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Agents")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Graph.AgentCount)
		row += 2
	}

	if data.Solve != nil {
		f.SetCellValue(sheetName, cellAddr("A", row), "Solve Results")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Mode")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Solve.Mode)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Objective")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Solve.Objective)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Makespan")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Solve.Makespan)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Variables")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Solve.Stats.VariableCount)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Constraints")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Solve.Stats.ConstraintCount)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Computation Time (ms)")
		f.SetCellValue(sheetName, cellAddr("B", row), data.Solve.Stats.SolveDurationMS)
		row += 2
	}

	if rows := PathRows(data.Paths); len(rows) > 0 && g.ShouldIncludeRawData(data) {
		pathsSheet := "Agent Paths"
		f.NewSheet(pathsSheet)

		headers := []string{"Agent", "Step", "From", "To", "Arrival Time", "Cost"}
		for i, h := range headers {
			f.SetCellValue(pathsSheet, cellAddr(string(rune('A'+i)), 1), h)
		}
		f.SetCellStyle(pathsSheet, "A1", "F1", headerStyle)

		for i, r := range rows {
			row := i + 2
			f.SetCellValue(pathsSheet, cellAddr("A", row), r.Agent)
			f.SetCellValue(pathsSheet, cellAddr("B", row), r.Step)
			f.SetCellValue(pathsSheet, cellAddr("C", row), r.From)
			f.SetCellValue(pathsSheet, cellAddr("D", row), r.To)
			f.SetCellValue(pathsSheet, cellAddr("E", row), r.ArrivalTime)
			f.SetCellValue(pathsSheet, cellAddr("F", row), r.Cost)
		}
		f.SetColWidth(pathsSheet, "A", "F", 15)
	}

	f.SetColWidth(sheetName, "A", "D", 18)
}

func (g *ExcelGenerator) writeAnalyticsExcel(f *excelize.File, data *ReportData) {
	sheetName := "Analytics"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 1

	f.SetCellValue(sheetName, cellAddr("A", row), "Analytics Report")
	row += 2

	if data.AnalyticsData == nil {
		f.SetCellValue(sheetName, cellAddr("A", row), "No analytics data")
		return
	}

	ad := data.AnalyticsData

	f.SetCellValue(sheetName, cellAddr("A", row), "Wait Cost Summary")
	f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Total Wait Cost")
	f.SetCellValue(sheetName, cellAddr("B", row), ad.TotalWaitCost)
	row += 2

	if len(ad.Bottlenecks) > 0 {
		f.SetCellValue(sheetName, cellAddr("A", row), "Bottlenecks")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("E", row), headerStyle)
		row++

		headers := []string{"From", "To", "Occupancy", "Impact Score", "Severity"}
		for i, h := range headers {
			f.SetCellValue(sheetName, cellAddr(string(rune('A'+i)), row), h)
		}
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("E", row), headerStyle)
		row++

		for _, bn := range ad.Bottlenecks {
			f.SetCellValue(sheetName, cellAddr("A", row), bn.From)
			f.SetCellValue(sheetName, cellAddr("B", row), bn.To)
			f.SetCellValue(sheetName, cellAddr("C", row), bn.Occupancy)
			f.SetCellValue(sheetName, cellAddr("D", row), bn.ImpactScore)
			f.SetCellValue(sheetName, cellAddr("E", row), bn.Severity)
			row++
		}
		row++
	}

	if len(ad.Recommendations) > 0 && g.ShouldIncludeRecommendations(data) {
		f.SetCellValue(sheetName, cellAddr("A", row), "Recommendations")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("D", row), headerStyle)
		row++

		headers := []string{"Type", "Description", "Est. Improvement", "Est. Cost"}
		for i, h := range headers {
			f.SetCellValue(sheetName, cellAddr(string(rune('A'+i)), row), h)
		}
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("D", row), headerStyle)
		row++

		for _, rec := range ad.Recommendations {
			f.SetCellValue(sheetName, cellAddr("A", row), rec.Type)
			f.SetCellValue(sheetName, cellAddr("B", row), rec.Description)
			f.SetCellValue(sheetName, cellAddr("C", row), rec.EstimatedImprovement)
			f.SetCellValue(sheetName, cellAddr("D", row), rec.EstimatedCost)
			row++
		}
		row++
	}

	if ad.Efficiency != nil {
		f.SetCellValue(sheetName, cellAddr("A", row), "Efficiency Metrics")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Overall Efficiency")
		f.SetCellValue(sheetName, cellAddr("B", row), ad.Efficiency.OverallEfficiency)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Path Optimality Ratio")
		f.SetCellValue(sheetName, cellAddr("B", row), ad.Efficiency.PathOptimalityRatio)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Unused Edges")
		f.SetCellValue(sheetName, cellAddr("B", row), ad.Efficiency.UnusedEdges)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Saturated Edges")
		f.SetCellValue(sheetName, cellAddr("B", row), ad.Efficiency.SaturatedEdges)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Grade")
		f.SetCellValue(sheetName, cellAddr("B", row), ad.Efficiency.Grade)
	}

	f.SetColWidth(sheetName, "A", "E", 18)
}

func (g *ExcelGenerator) writeSimulationExcel(f *excelize.File, data *ReportData) {
	sheetName := "Simulation"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 1

	if data.SimulationData == nil {
		f.SetCellValue(sheetName, cellAddr("A", row), "No simulation data")
		return
	}

	sd := data.SimulationData

	f.SetCellValue(sheetName, cellAddr("A", row), "Simulation Report")
	row += 2

	f.SetCellValue(sheetName, cellAddr("A", row), "Scenario Type")
	f.SetCellValue(sheetName, cellAddr("B", row), sd.ScenarioType)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Baseline Objective")
	f.SetCellValue(sheetName, cellAddr("B", row), sd.BaselineObjective)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Baseline Makespan")
	f.SetCellValue(sheetName, cellAddr("B", row), sd.BaselineMakespan)
	row += 2

	if len(sd.Scenarios) > 0 {
		f.SetCellValue(sheetName, cellAddr("A", row), "Scenarios")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("E", row), headerStyle)
		row++

		headers := []string{"Name", "Objective", "Makespan", "Change %", "Impact"}
		for i, h := range headers {
			f.SetCellValue(sheetName, cellAddr(string(rune('A'+i)), row), h)
		}
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("E", row), headerStyle)
		row++

		for _, sc := range sd.Scenarios {
			f.SetCellValue(sheetName, cellAddr("A", row), sc.Name)
			f.SetCellValue(sheetName, cellAddr("B", row), sc.Objective)
			f.SetCellValue(sheetName, cellAddr("C", row), sc.Makespan)
			f.SetCellValue(sheetName, cellAddr("D", row), sc.ObjectiveChangePercent)
			f.SetCellValue(sheetName, cellAddr("E", row), sc.ImpactLevel)
			row++
		}
		row++
	}

	if sd.MonteCarlo != nil {
		mcSheet := "Monte Carlo"
		f.NewSheet(mcSheet)

		mc := sd.MonteCarlo
		mcRow := 1

		f.SetCellValue(mcSheet, cellAddr("A", mcRow), "Monte Carlo Results")
		mcRow += 2

		metrics := []struct {
			name  string
			value any
		}{
			{"Iterations", mc.Iterations},
			{"Mean Makespan", mc.MeanMakespan},
			{"Std Dev", mc.StdDev},
			{"Min Makespan", mc.MinMakespan},
			{"Max Makespan", mc.MaxMakespan},
			{"P5", mc.P5},
			{"P50 (Median)", mc.P50},
			{"P95", mc.P95},
			{"Confidence Level", mc.ConfidenceLevel},
			{"CI Low", mc.CiLow},
			{"CI High", mc.CiHigh},
		}

		for _, m := range metrics {
			f.SetCellValue(mcSheet, cellAddr("A", mcRow), m.name)
			f.SetCellValue(mcSheet, cellAddr("B", mcRow), m.value)
			mcRow++
		}

		f.SetColWidth(mcSheet, "A", "B", 20)
	}

	if len(sd.Sensitivity) > 0 {
		sensSheet := "Sensitivity"
		f.NewSheet(sensSheet)

		headers := []string{"Parameter", "Elasticity", "Sensitivity Index", "Level"}
		for i, h := range headers {
			f.SetCellValue(sensSheet, cellAddr(string(rune('A'+i)), 1), h)
		}
		f.SetCellStyle(sensSheet, "A1", "D1", headerStyle)

		for i, sp := range sd.Sensitivity {
			row := i + 2
			f.SetCellValue(sensSheet, cellAddr("A", row), sp.ParameterID)
			f.SetCellValue(sensSheet, cellAddr("B", row), sp.Elasticity)
			f.SetCellValue(sensSheet, cellAddr("C", row), sp.SensitivityIndex)
			f.SetCellValue(sensSheet, cellAddr("D", row), sp.Level)
		}

		f.SetColWidth(sensSheet, "A", "D", 18)
	}

	if sd.Resilience != nil {
		r := sd.Resilience
		f.SetCellValue(sheetName, cellAddr("A", row), "Resilience Analysis")
		f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Overall Score")
		f.SetCellValue(sheetName, cellAddr("B", row), r.OverallScore)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Single Points of Failure")
		f.SetCellValue(sheetName, cellAddr("B", row), r.SinglePointsOfFailure)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "Worst Case Makespan Delta")
		f.SetCellValue(sheetName, cellAddr("B", row), r.WorstCaseMakespanDelta)
		row++

		f.SetCellValue(sheetName, cellAddr("A", row), "N-1 Feasible")
		f.SetCellValue(sheetName, cellAddr("B", row), r.NMinusOneFeasible)
	}

	f.SetColWidth(sheetName, "A", "E", 18)
}

func (g *ExcelGenerator) writeSummaryExcel(f *excelize.File, data *ReportData) {
	g.writeSolveExcel(f, data)
	if data.AnalyticsData != nil {
		g.writeAnalyticsExcel(f, data)
	}
	if data.SimulationData != nil {
		g.writeSimulationExcel(f, data)
	}
}

func (g *ExcelGenerator) writeComparisonExcel(f *excelize.File, data *ReportData) {
	sheetName := "Comparison"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 1

	f.SetCellValue(sheetName, cellAddr("A", row), "Scenario Comparison")
	row += 2

	if len(data.ComparisonData) == 0 {
		f.SetCellValue(sheetName, cellAddr("A", row), "No comparison data")
		return
	}

	headers := []string{"Name", "Objective", "Makespan", "Efficiency"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cellAddr(string(rune('A'+i)), row), h)
	}
	f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("D", row), headerStyle)
	row++

	for _, item := range data.ComparisonData {
		f.SetCellValue(sheetName, cellAddr("A", row), item.Name)
		f.SetCellValue(sheetName, cellAddr("B", row), item.Objective)
		f.SetCellValue(sheetName, cellAddr("C", row), item.Makespan)
		f.SetCellValue(sheetName, cellAddr("D", row), item.Efficiency)
		row++
	}

	if len(data.ComparisonData) > 0 && len(data.ComparisonData[0].Metrics) > 0 {
		metricsSheet := "Detailed Metrics"
		f.NewSheet(metricsSheet)

		var keys []string
		for k := range data.ComparisonData[0].Metrics {
			keys = append(keys, k)
		}

		f.SetCellValue(metricsSheet, "A1", "Metric")
		for i, item := range data.ComparisonData {
			f.SetCellValue(metricsSheet, cellAddr(string(rune('B'+i)), 1), item.Name)
		}

		for i, key := range keys {
			row := i + 2
			f.SetCellValue(metricsSheet, cellAddr("A", row), key)
			for j, item := range data.ComparisonData {
				f.SetCellValue(metricsSheet, cellAddr(string(rune('B'+j)), row), item.Metrics[key])
			}
		}
	}

	f.SetColWidth(sheetName, "A", "D", 18)
}

// cellAddr builds a spreadsheet cell address.
func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
