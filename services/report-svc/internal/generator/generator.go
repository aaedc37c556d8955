// services/report-svc/internal/generator/generator.go
package generator

import (
	"context"
	"fmt"
	"time"

	"mapfnet/pkg/domain"
)

// ReportType names what a report is about.
type ReportType string

const (
	ReportTypeSolve      ReportType = "solve"
	ReportTypeAnalytics  ReportType = "analytics"
	ReportTypeSimulation ReportType = "simulation"
	ReportTypeSummary    ReportType = "summary"
	ReportTypeComparison ReportType = "comparison"
	ReportTypeHistory    ReportType = "history"
)

// ReportFormat names the output encoding a Generator produces.
type ReportFormat string

const (
	FormatCSV      ReportFormat = "csv"
	FormatExcel    ReportFormat = "excel"
	FormatHTML     ReportFormat = "html"
	FormatJSON     ReportFormat = "json"
	FormatMarkdown ReportFormat = "markdown"
	FormatPDF      ReportFormat = "pdf"
)

// ReportOptions controls presentation details shared across formats.
type ReportOptions struct {
	Title                  string
	Author                 string
	Description            string
	Language               string
	IncludeRawData         bool
	IncludeRecommendations bool
}

// ReportData is the full input to a Generator: the solved instance's
// size and outcome, plus whichever section is relevant to Type.
type ReportData struct {
	Type    ReportType
	Options *ReportOptions

	Graph *GraphSummary
	Solve *SolveReportData
	Paths map[int]*domain.AgentPath

	AnalyticsData  *AnalyticsReportData
	SimulationData *SimulationReportData
	ComparisonData []*ComparisonItemData
}

// Generator turns a ReportData into one output-format's bytes.
type Generator interface {
	Generate(ctx context.Context, data *ReportData) ([]byte, error)
	Format() ReportFormat
}

// BaseGenerator holds utilities shared by every format generator.
type BaseGenerator struct{}

// GetTitle returns the report's title.
func (b *BaseGenerator) GetTitle(data *ReportData) string {
	if data.Options != nil && data.Options.Title != "" {
		return data.Options.Title
	}
	switch data.Type {
	case ReportTypeSolve:
		return "MAPF Solve Report"
	case ReportTypeAnalytics:
		return "Analytics Report"
	case ReportTypeSimulation:
		return "Simulation Report"
	case ReportTypeSummary:
		return "Summary Report"
	case ReportTypeComparison:
		return "Comparison Report"
	case ReportTypeHistory:
		return "History Report"
	default:
		return "MAPF Report"
	}
}

// GetAuthor returns the report's author.
func (b *BaseGenerator) GetAuthor(data *ReportData) string {
	if data.Options != nil && data.Options.Author != "" {
		return data.Options.Author
	}
	return "MAPF System"
}

// GetDescription returns the report's description.
func (b *BaseGenerator) GetDescription(data *ReportData) string {
	if data.Options != nil && data.Options.Description != "" {
		return data.Options.Description
	}
	return ""
}

// GetLanguage returns the report's language tag.
func (b *BaseGenerator) GetLanguage(data *ReportData) string {
	if data.Options != nil && data.Options.Language != "" {
		return data.Options.Language
	}
	return "en"
}

// ShouldIncludeRawData reports whether raw per-agent path rows belong
// in the output.
func (b *BaseGenerator) ShouldIncludeRawData(data *ReportData) bool {
	if data.Options == nil {
		return true
	}
	return data.Options.IncludeRawData
}

// ShouldIncludeRecommendations reports whether the recommendations
// section belongs in the output.
func (b *BaseGenerator) ShouldIncludeRecommendations(data *ReportData) bool {
	if data.Options == nil {
		return true
	}
	return data.Options.IncludeRecommendations
}

// FormatFloat formats v with the given precision.
func (b *BaseGenerator) FormatFloat(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}

// FormatPercent formats v (a fraction) as a percentage.
func (b *BaseGenerator) FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatDuration formats a millisecond duration.
func (b *BaseGenerator) FormatDuration(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.2f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// FormatTimestamp formats t in the report's standard layout.
func (b *BaseGenerator) FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ColName converts a zero-based column index to its spreadsheet letter
// (0 -> A, 25 -> Z, 26 -> AA).
func ColName(index int) string {
	result := ""
	for {
		result = string(rune('A'+index%26)) + result
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return result
}

// Cell returns a spreadsheet cell address.
func Cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// CellByIndex returns a spreadsheet cell address from column/row indices.
func CellByIndex(colIndex, rowIndex int) string {
	return fmt.Sprintf("%s%d", ColName(colIndex), rowIndex)
}
