// services/report-svc/internal/generator/pdf.go
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFGenerator renders a ReportData as a paginated PDF document.
type PDFGenerator struct {
	BaseGenerator
}

// NewPDFGenerator constructs a PDFGenerator.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Format reports the generator's output format.
func (g *PDFGenerator) Format() ReportFormat {
	return FormatPDF
}

var (
	primaryColor   = &props.Color{Red: 52, Green: 152, Blue: 219}  // #3498db
	headerBgColor  = &props.Color{Red: 44, Green: 62, Blue: 80}    // #2c3e50
	successColor   = &props.Color{Red: 39, Green: 174, Blue: 96}   // #27ae60
	warningColor   = &props.Color{Red: 243, Green: 156, Blue: 18}  // #f39c12
	dangerColor    = &props.Color{Red: 231, Green: 76, Blue: 60}   // #e74c3c
	lightGrayColor = &props.Color{Red: 236, Green: 240, Blue: 241} // #ecf0f1
	darkGrayColor  = &props.Color{Red: 127, Green: 140, Blue: 141} // #7f8c8d

	titleStyle = props.Text{
		Size:  24,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: headerBgColor,
	}

	h2Style = props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Color: headerBgColor,
		Top:   5,
	}

	h3Style = props.Text{
		Size:  12,
		Style: fontstyle.Bold,
		Color: darkGrayColor,
		Top:   3,
	}

	normalStyle = props.Text{
		Size: 10,
	}

	boldStyle = props.Text{
		Size:  10,
		Style: fontstyle.Bold,
	}

	smallStyle = props.Text{
		Size:  8,
		Color: darkGrayColor,
	}

	metricValueStyle = props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: primaryColor,
	}

	metricLabelStyle = props.Text{
		Size:  9,
		Align: align.Center,
		Color: darkGrayColor,
	}

	tableHeaderStyle = &props.Cell{
		BackgroundColor: primaryColor,
	}

	tableHeaderTextStyle = props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Align: align.Center,
	}

	tableCellStyle = &props.Cell{
		BorderType:  border.Bottom,
		BorderColor: lightGrayColor,
	}

	tableCellTextStyle = props.Text{
		Size:  9,
		Align: align.Center,
	}
)

// Generate renders data as a PDF document.
func (g *PDFGenerator) Generate(ctx context.Context, data *ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, data)

	switch data.Type {
	case ReportTypeSolve:
		g.addSolveContent(m, data)
	case ReportTypeAnalytics:
		g.addAnalyticsContent(m, data)
	case ReportTypeSimulation:
		g.addSimulationContent(m, data)
	case ReportTypeSummary:
		g.addSummaryContent(m, data)
	case ReportTypeComparison:
		g.addComparisonContent(m, data)
	case ReportTypeHistory:
		g.addHistoryContent(m, data)
	default:
		g.addSolveContent(m, data)
	}

	g.addFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func (g *PDFGenerator) addHeader(m core.Maroto, data *ReportData) {
	m.AddRow(15,
		text.NewCol(12, g.GetTitle(data), titleStyle),
	)

	m.AddRow(5,
		line.NewCol(12),
	)

	m.AddRow(6,
		text.NewCol(6, fmt.Sprintf("Author: %s", g.GetAuthor(data)), smallStyle),
		text.NewCol(6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")),
			props.Text{Size: 8, Color: darkGrayColor, Align: align.Right}),
	)

	if desc := g.GetDescription(data); desc != "" {
		m.AddRow(5,
			text.NewCol(12, desc, smallStyle),
		)
	}

	m.AddRow(8)
}

func (g *PDFGenerator) addSolveContent(m core.Maroto, data *ReportData) {
	if data.Graph != nil {
		g.addSection(m, "Graph Information")
		g.addMetricCards(m, []metricCard{
			{Label: "Vertices", Value: fmt.Sprintf("%d", data.Graph.VertexCount)},
			{Label: "Edges", Value: fmt.Sprintf("%d", data.Graph.EdgeCount)},
			{Label: "Agents", Value: fmt.Sprintf("%d", data.Graph.AgentCount)},
		})
	}

	if data.Solve != nil {
		g.addSection(m, "Solve Results")

		g.addMetricCards(m, []metricCard{
			{Label: "Objective", Value: g.FormatFloat(data.Solve.Objective, 4), Highlight: true},
			{Label: "Makespan", Value: g.FormatFloat(data.Solve.Makespan, 4), Highlight: true},
		})

		m.AddRow(5)
		g.addMetricCards(m, []metricCard{
			{Label: "Mode", Value: data.Solve.Mode},
			{Label: "Constraints", Value: fmt.Sprintf("%d", data.Solve.Stats.ConstraintCount)},
			{Label: "Computation Time", Value: fmt.Sprintf("%d ms", data.Solve.Stats.SolveDurationMS)},
		})

		if rows := PathRows(data.Paths); len(rows) > 0 && g.ShouldIncludeRawData(data) {
			g.addSection(m, "Agent Paths")
			g.addPathRowsTable(m, rows)
		}
	}
}

func (g *PDFGenerator) addAnalyticsContent(m core.Maroto, data *ReportData) {
	if data.AnalyticsData == nil {
		g.addSection(m, "No Analytics Data")
		return
	}

	ad := data.AnalyticsData

	g.addSection(m, "Wait Cost Summary")
	g.addMetricCards(m, []metricCard{
		{Label: "Total Wait Cost", Value: g.FormatFloat(ad.TotalWaitCost, 2), Highlight: true},
	})

	if len(ad.Bottlenecks) > 0 {
		g.addSection(m, "Bottlenecks")
		g.addBottlenecksTable(m, ad.Bottlenecks)
	}

	if len(ad.Recommendations) > 0 && g.ShouldIncludeRecommendations(data) {
		g.addSection(m, "Recommendations")
		for i, rec := range ad.Recommendations {
			g.addRecommendation(m, i+1, rec)
		}
	}

	if ad.Efficiency != nil {
		g.addSection(m, "Efficiency Metrics")
		g.addMetricCards(m, []metricCard{
			{Label: "Overall Efficiency", Value: g.FormatPercent(ad.Efficiency.OverallEfficiency)},
			{Label: "Path Optimality", Value: g.FormatPercent(ad.Efficiency.PathOptimalityRatio)},
			{Label: "Grade", Value: ad.Efficiency.Grade, Highlight: true},
		})

		m.AddRow(5)
		g.addKeyValueTable(m, []keyValue{
			{"Unused Edges", fmt.Sprintf("%d", ad.Efficiency.UnusedEdges)},
			{"Saturated Edges", fmt.Sprintf("%d", ad.Efficiency.SaturatedEdges)},
		})
	}
}

func (g *PDFGenerator) addSimulationContent(m core.Maroto, data *ReportData) {
	if data.SimulationData == nil {
		g.addSection(m, "No Simulation Data")
		return
	}

	sd := data.SimulationData

	g.addSection(m, fmt.Sprintf("Simulation: %s", sd.ScenarioType))

	g.addMetricCards(m, []metricCard{
		{Label: "Baseline Objective", Value: g.FormatFloat(sd.BaselineObjective, 4)},
		{Label: "Baseline Makespan", Value: g.FormatFloat(sd.BaselineMakespan, 2)},
	})

	if len(sd.Scenarios) > 0 {
		m.AddRow(8)
		g.addSubSection(m, "Scenarios")
		g.addScenariosTable(m, sd.Scenarios)
	}

	if sd.MonteCarlo != nil {
		m.AddRow(8)
		g.addSubSection(m, "Monte Carlo Results")
		mc := sd.MonteCarlo

		g.addMetricCards(m, []metricCard{
			{Label: "Mean Makespan", Value: g.FormatFloat(mc.MeanMakespan, 4)},
			{Label: "Std Dev", Value: g.FormatFloat(mc.StdDev, 4)},
			{Label: "Iterations", Value: fmt.Sprintf("%d", mc.Iterations)},
		})

		m.AddRow(5)
		g.addKeyValueTable(m, []keyValue{
			{"Min Makespan", g.FormatFloat(mc.MinMakespan, 4)},
			{"Max Makespan", g.FormatFloat(mc.MaxMakespan, 4)},
			{"P5", g.FormatFloat(mc.P5, 4)},
			{"P50 (Median)", g.FormatFloat(mc.P50, 4)},
			{"P95", g.FormatFloat(mc.P95, 4)},
			{fmt.Sprintf("CI %.0f%%", mc.ConfidenceLevel*100),
				fmt.Sprintf("%.4f - %.4f", mc.CiLow, mc.CiHigh)},
		})
	}

	if len(sd.Sensitivity) > 0 {
		m.AddRow(8)
		g.addSubSection(m, "Sensitivity Analysis")
		g.addSensitivityTable(m, sd.Sensitivity)
	}

	if sd.Resilience != nil {
		m.AddRow(8)
		g.addSubSection(m, "Resilience Analysis")
		r := sd.Resilience

		g.addMetricCards(m, []metricCard{
			{Label: "Overall Score", Value: g.FormatFloat(r.OverallScore, 2), Highlight: true},
			{Label: "N-1 Feasible", Value: fmt.Sprintf("%v", r.NMinusOneFeasible)},
		})

		m.AddRow(5)
		g.addKeyValueTable(m, []keyValue{
			{"Single Points of Failure", fmt.Sprintf("%d", r.SinglePointsOfFailure)},
			{"Worst Case Makespan Delta", g.FormatPercent(r.WorstCaseMakespanDelta)},
		})
	}
}

func (g *PDFGenerator) addSummaryContent(m core.Maroto, data *ReportData) {
	if data.Solve != nil {
		g.addSolveContent(m, data)
	}

	if data.AnalyticsData != nil {
		m.AddRow(10)
		g.addAnalyticsContent(m, data)
	}

	if data.SimulationData != nil {
		m.AddRow(10)
		g.addSimulationContent(m, data)
	}
}

func (g *PDFGenerator) addComparisonContent(m core.Maroto, data *ReportData) {
	if len(data.ComparisonData) == 0 {
		g.addSection(m, "No Comparison Data")
		return
	}

	g.addSection(m, "Scenario Comparison")

	g.addComparisonTable(m, data.ComparisonData)

	m.AddRow(10)
	best := g.findBestScenario(data.ComparisonData)
	if best != nil {
		m.AddRow(8,
			text.NewCol(12, fmt.Sprintf("Best scenario by objective: %s (%.4f)", best.Name, best.Objective), boldStyle),
		)
	}

	if len(data.ComparisonData) > 0 && len(data.ComparisonData[0].Metrics) > 0 {
		m.AddRow(10)
		g.addSubSection(m, "Detailed Metrics")
		g.addDetailedMetricsTable(m, data.ComparisonData)
	}
}

func (g *PDFGenerator) addHistoryContent(m core.Maroto, data *ReportData) {
	g.addSection(m, "Calculation History")
	m.AddRow(8,
		text.NewCol(12, "History report content", normalStyle),
	)
}

type metricCard struct {
	Label     string
	Value     string
	Highlight bool
}

func (g *PDFGenerator) addMetricCards(m core.Maroto, cards []metricCard) {
	if len(cards) == 0 {
		return
	}

	colSize := 12 / len(cards)
	if colSize < 2 {
		colSize = 2
	}

	var cols []core.Col
	for _, card := range cards {
		valueStyle := metricValueStyle
		if !card.Highlight {
			valueStyle.Size = 14
		}

		cols = append(cols,
			col.New(colSize).Add(
				text.New(card.Value, valueStyle),
				text.New(card.Label, metricLabelStyle),
			),
		)
	}

	m.AddRow(20, cols...)
}

type keyValue struct {
	Key   string
	Value string
}

func (g *PDFGenerator) addKeyValueTable(m core.Maroto, items []keyValue) {
	for _, item := range items {
		m.AddRow(6,
			text.NewCol(6, item.Key, boldStyle),
			text.NewCol(6, item.Value, normalStyle),
		)
	}
}

func (g *PDFGenerator) addSection(m core.Maroto, title string) {
	m.AddRow(10,
		text.NewCol(12, title, h2Style),
	)
	m.AddRow(2,
		line.NewCol(12, props.Line{Color: primaryColor}),
	)
	m.AddRow(5)
}

func (g *PDFGenerator) addSubSection(m core.Maroto, title string) {
	m.AddRow(8,
		text.NewCol(12, title, h3Style),
	)
}

func (g *PDFGenerator) addPathRowsTable(m core.Maroto, rows []*AgentPathRow) {
	m.AddRow(8,
		text.NewCol(2, "Agent", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Step", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "From", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "To", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Arrival", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Cost", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	)

	maxRows := 30
	count := 0
	for _, row := range rows {
		if count >= maxRows {
			m.AddRow(6,
				text.NewCol(12, fmt.Sprintf("... and %d more rows", len(rows)-maxRows), smallStyle),
			)
			break
		}

		m.AddRow(6,
			text.NewCol(2, fmt.Sprintf("%d", row.Agent), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, fmt.Sprintf("%d", row.Step), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, fmt.Sprintf("%d", row.From), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, fmt.Sprintf("%d", row.To), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, g.FormatFloat(row.ArrivalTime, 4), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, g.FormatFloat(row.Cost, 4), tableCellTextStyle).WithStyle(tableCellStyle),
		)
		count++
	}
}

func (g *PDFGenerator) addBottlenecksTable(m core.Maroto, bottlenecks []*BottleneckData) {
	m.AddRow(8,
		text.NewCol(2, "From", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "To", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Occupancy", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Impact", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Severity", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	)

	for _, bn := range bottlenecks {
		severityStyle := tableCellTextStyle
		switch bn.Severity {
		case "high", "HIGH":
			severityStyle.Color = dangerColor
		case "medium", "MEDIUM":
			severityStyle.Color = warningColor
		case "low", "LOW":
			severityStyle.Color = successColor
		}

		m.AddRow(6,
			text.NewCol(2, fmt.Sprintf("%d", bn.From), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, fmt.Sprintf("%d", bn.To), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, fmt.Sprintf("%d", bn.Occupancy), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, g.FormatFloat(bn.ImpactScore, 2), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, bn.Severity, severityStyle).WithStyle(tableCellStyle),
		)
	}
}

func (g *PDFGenerator) addRecommendation(m core.Maroto, num int, rec *RecommendationData) {
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%d. %s", num, rec.Type), boldStyle),
	)

	m.AddRow(6,
		text.NewCol(12, rec.Description, normalStyle),
	)

	if rec.EstimatedImprovement > 0 || rec.EstimatedCost > 0 {
		details := ""
		if rec.EstimatedImprovement > 0 {
			details += fmt.Sprintf("Expected improvement: %s", g.FormatPercent(rec.EstimatedImprovement))
		}
		if rec.EstimatedCost > 0 {
			if details != "" {
				details += " | "
			}
			details += fmt.Sprintf("Estimated cost: %.2f", rec.EstimatedCost)
		}
		m.AddRow(5,
			text.NewCol(12, details, smallStyle),
		)
	}

	m.AddRow(3)
}

func (g *PDFGenerator) addScenariosTable(m core.Maroto, scenarios []*ScenarioData) {
	m.AddRow(8,
		text.NewCol(3, "Name", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Objective", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Makespan", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Change %", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Impact", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	)

	for _, sc := range scenarios {
		impactStyle := tableCellTextStyle
		switch sc.ImpactLevel {
		case "high", "HIGH":
			impactStyle.Color = dangerColor
		case "medium", "MEDIUM":
			impactStyle.Color = warningColor
		case "low", "LOW":
			impactStyle.Color = successColor
		}

		m.AddRow(6,
			text.NewCol(3, sc.Name, tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, g.FormatFloat(sc.Objective, 4), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, g.FormatFloat(sc.Makespan, 2), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, fmt.Sprintf("%.1f%%", sc.ObjectiveChangePercent), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, sc.ImpactLevel, impactStyle).WithStyle(tableCellStyle),
		)
	}
}

func (g *PDFGenerator) addSensitivityTable(m core.Maroto, params []*SensitivityData) {
	m.AddRow(8,
		text.NewCol(4, "Parameter", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Elasticity", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Index", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Level", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	)

	for _, p := range params {
		m.AddRow(6,
			text.NewCol(4, p.ParameterID, tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, g.FormatFloat(p.Elasticity, 3), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, g.FormatFloat(p.SensitivityIndex, 3), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, p.Level, tableCellTextStyle).WithStyle(tableCellStyle),
		)
	}
}

func (g *PDFGenerator) addComparisonTable(m core.Maroto, items []*ComparisonItemData) {
	m.AddRow(8,
		text.NewCol(4, "Scenario", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Objective", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(3, "Makespan", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		text.NewCol(2, "Efficiency", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	)

	for _, item := range items {
		m.AddRow(6,
			text.NewCol(4, item.Name, tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, g.FormatFloat(item.Objective, 4), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(3, g.FormatFloat(item.Makespan, 2), tableCellTextStyle).WithStyle(tableCellStyle),
			text.NewCol(2, g.FormatPercent(item.Efficiency), tableCellTextStyle).WithStyle(tableCellStyle),
		)
	}
}

func (g *PDFGenerator) addDetailedMetricsTable(m core.Maroto, items []*ComparisonItemData) {
	if len(items) == 0 || len(items[0].Metrics) == 0 {
		return
	}

	var keys []string
	for k := range items[0].Metrics {
		keys = append(keys, k)
	}

	maxCols := 5
	scenarioCount := len(items)
	if scenarioCount > maxCols {
		scenarioCount = maxCols
	}

	metricColSize := 4
	valueColSize := (12 - metricColSize) / scenarioCount

	headerCols := []core.Col{
		text.NewCol(metricColSize, "Metric", tableHeaderTextStyle).WithStyle(tableHeaderStyle),
	}
	for i := 0; i < scenarioCount; i++ {
		headerCols = append(headerCols,
			text.NewCol(valueColSize, items[i].Name, tableHeaderTextStyle).WithStyle(tableHeaderStyle),
		)
	}
	m.AddRow(8, headerCols...)

	for _, key := range keys {
		dataCols := []core.Col{
			text.NewCol(metricColSize, key, tableCellTextStyle).WithStyle(tableCellStyle),
		}
		for i := 0; i < scenarioCount; i++ {
			val := items[i].Metrics[key]
			dataCols = append(dataCols,
				text.NewCol(valueColSize, g.FormatFloat(val, 2), tableCellTextStyle).WithStyle(tableCellStyle),
			)
		}
		m.AddRow(6, dataCols...)
	}
}

func (g *PDFGenerator) findBestScenario(items []*ComparisonItemData) *ComparisonItemData {
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

func (g *PDFGenerator) addFooter(m core.Maroto) {
	m.AddRow(10)
	m.AddRow(2,
		line.NewCol(12, props.Line{Color: lightGrayColor}),
	)
	m.AddRow(6,
		text.NewCol(12,
			fmt.Sprintf("Generated by the MAPF platform | %s", time.Now().Format("2006-01-02 15:04:05")),
			props.Text{Size: 8, Color: darkGrayColor, Align: align.Center},
		),
	)
}
