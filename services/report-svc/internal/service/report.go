// Package service implements report-svc: it renders a solved MAPF
// instance — or its analytics, simulation, summary, comparison, or
// history data — into one of several downloadable report formats, and
// optionally persists the result.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/report-svc/internal/generator"
	"mapfnet/services/report-svc/internal/repository"
)

var startTime = time.Now()

// ReportService generates and persists reports.
type ReportService struct {
	version          string
	reportsGenerated atomic.Int64
	generators       map[generator.ReportFormat]generator.Generator
	repository       repository.Repository

	defaultTTL    time.Duration
	saveToStorage bool
}

// ServiceConfig configures a ReportService.
type ServiceConfig struct {
	Version       string
	DefaultTTL    time.Duration
	SaveToStorage bool
}

// NewReportService constructs a ReportService wired to every known format.
func NewReportService(cfg ServiceConfig, repo repository.Repository) *ReportService {
	return &ReportService{
		version: cfg.Version,
		generators: map[generator.ReportFormat]generator.Generator{
			generator.FormatMarkdown: generator.NewMarkdownGenerator(),
			generator.FormatCSV:      generator.NewCSVGenerator(),
			generator.FormatExcel:    generator.NewExcelGenerator(),
			generator.FormatPDF:      generator.NewPDFGenerator(),
			generator.FormatHTML:     generator.NewHTMLGenerator(),
			generator.FormatJSON:     generator.NewJSONGenerator(),
		},
		repository:    repo,
		defaultTTL:    cfg.DefaultTTL,
		saveToStorage: cfg.SaveToStorage,
	}
}

// ReportOptions is the wire shape of generator.ReportOptions, plus the
// storage controls a caller can set per request.
type ReportOptions struct {
	Title                  string            `json:"title,omitempty"`
	Author                 string            `json:"author,omitempty"`
	Description            string            `json:"description,omitempty"`
	Language               string            `json:"language,omitempty"`
	IncludeRawData         bool              `json:"includeRawData,omitempty"`
	IncludeRecommendations bool              `json:"includeRecommendations,omitempty"`
	Tags                   []string          `json:"tags,omitempty"`
	CustomFields           map[string]string `json:"customFields,omitempty"`
	SaveToStorage          bool              `json:"saveToStorage,omitempty"`
	TTLSeconds             int64             `json:"ttlSeconds,omitempty"`
}

func (o *ReportOptions) toGeneratorOptions() *generator.ReportOptions {
	if o == nil {
		return nil
	}
	return &generator.ReportOptions{
		Title:                  o.Title,
		Author:                 o.Author,
		Description:            o.Description,
		Language:               o.Language,
		IncludeRawData:         o.IncludeRawData,
		IncludeRecommendations: o.IncludeRecommendations,
	}
}

// ReportResult is the shared response shape for every Generate* call.
type ReportResult struct {
	Success      bool                 `json:"success"`
	ErrorMessage string               `json:"errorMessage,omitempty"`
	Metadata     *repository.Metadata `json:"metadata,omitempty"`
	Content      *repository.Content  `json:"content,omitempty"`
}

// GenerateSolveReportRequest renders one solve's paths and objective.
type GenerateSolveReportRequest struct {
	Format        generator.ReportFormat    `json:"format"`
	Options       *ReportOptions            `json:"options,omitempty"`
	Graph         *generator.GraphSummary   `json:"graph,omitempty"`
	Solve         *generator.SolveReportData `json:"solve"`
	Paths         map[int]*domain.AgentPath `json:"paths,omitempty"`
	CalculationID string                    `json:"calculationId,omitempty"`
	GraphID       string                    `json:"graphId,omitempty"`
}

// GenerateSolveReport renders a single solve into the requested format.
func (s *ReportService) GenerateSolveReport(ctx context.Context, req *GenerateSolveReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateSolveReport",
		trace.WithAttributes(attribute.String("format", string(req.Format))),
	)
	defer span.End()

	gen, err := s.getGenerator(req.Format)
	if err != nil {
		return &ReportResult{ErrorMessage: err.Error()}, nil
	}

	data := &generator.ReportData{
		Type:    generator.ReportTypeSolve,
		Options: req.Options.toGeneratorOptions(),
		Graph:   req.Graph,
		Solve:   req.Solve,
		Paths:   req.Paths,
	}

	return s.render(ctx, gen, generator.ReportTypeSolve, req.Format, data, req.Options, req.CalculationID, req.GraphID)
}

// GenerateAnalyticsReportRequest renders congestion/efficiency analysis.
type GenerateAnalyticsReportRequest struct {
	Format        generator.ReportFormat       `json:"format"`
	Options       *ReportOptions               `json:"options,omitempty"`
	Graph         *generator.GraphSummary      `json:"graph,omitempty"`
	AnalyticsData *generator.AnalyticsReportData `json:"analyticsData"`
	CalculationID string                       `json:"calculationId,omitempty"`
	GraphID       string                       `json:"graphId,omitempty"`
}

// GenerateAnalyticsReport renders a congestion/efficiency report.
func (s *ReportService) GenerateAnalyticsReport(ctx context.Context, req *GenerateAnalyticsReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateAnalyticsReport")
	defer span.End()

	gen, err := s.getGenerator(req.Format)
	if err != nil {
		return &ReportResult{ErrorMessage: err.Error()}, nil
	}

	data := &generator.ReportData{
		Type:          generator.ReportTypeAnalytics,
		Options:       req.Options.toGeneratorOptions(),
		Graph:         req.Graph,
		AnalyticsData: req.AnalyticsData,
	}

	return s.render(ctx, gen, generator.ReportTypeAnalytics, req.Format, data, req.Options, req.CalculationID, req.GraphID)
}

// GenerateSimulationReportRequest renders a perturbation-replay report.
type GenerateSimulationReportRequest struct {
	Format         generator.ReportFormat        `json:"format"`
	Options        *ReportOptions                `json:"options,omitempty"`
	Graph          *generator.GraphSummary       `json:"graph,omitempty"`
	SimulationData *generator.SimulationReportData `json:"simulationData"`
	CalculationID  string                        `json:"calculationId,omitempty"`
	GraphID        string                        `json:"graphId,omitempty"`
}

// GenerateSimulationReport renders a perturbation-replay report.
func (s *ReportService) GenerateSimulationReport(ctx context.Context, req *GenerateSimulationReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateSimulationReport")
	defer span.End()

	gen, err := s.getGenerator(req.Format)
	if err != nil {
		return &ReportResult{ErrorMessage: err.Error()}, nil
	}

	data := &generator.ReportData{
		Type:           generator.ReportTypeSimulation,
		Options:        req.Options.toGeneratorOptions(),
		Graph:          req.Graph,
		SimulationData: req.SimulationData,
	}

	return s.render(ctx, gen, generator.ReportTypeSimulation, req.Format, data, req.Options, req.CalculationID, req.GraphID)
}

// GenerateSummaryReportRequest renders a combined solve+analytics+simulation
// overview.
type GenerateSummaryReportRequest struct {
	Format         generator.ReportFormat        `json:"format"`
	Options        *ReportOptions                `json:"options,omitempty"`
	Graph          *generator.GraphSummary       `json:"graph,omitempty"`
	Solve          *generator.SolveReportData    `json:"solve,omitempty"`
	AnalyticsData  *generator.AnalyticsReportData `json:"analyticsData,omitempty"`
	SimulationData *generator.SimulationReportData `json:"simulationData,omitempty"`
	CalculationID  string                        `json:"calculationId,omitempty"`
	GraphID        string                        `json:"graphId,omitempty"`
}

// GenerateSummaryReport renders a combined overview of a solve.
func (s *ReportService) GenerateSummaryReport(ctx context.Context, req *GenerateSummaryReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateSummaryReport")
	defer span.End()

	gen, err := s.getGenerator(req.Format)
	if err != nil {
		return &ReportResult{ErrorMessage: err.Error()}, nil
	}

	data := &generator.ReportData{
		Type:           generator.ReportTypeSummary,
		Options:        req.Options.toGeneratorOptions(),
		Graph:          req.Graph,
		Solve:          req.Solve,
		AnalyticsData:  req.AnalyticsData,
		SimulationData: req.SimulationData,
	}

	return s.render(ctx, gen, generator.ReportTypeSummary, req.Format, data, req.Options, req.CalculationID, req.GraphID)
}

// GenerateComparisonReportRequest renders a side-by-side comparison of
// several solves or scenarios.
type GenerateComparisonReportRequest struct {
	Format        generator.ReportFormat          `json:"format"`
	Options       *ReportOptions                  `json:"options,omitempty"`
	Items         []*generator.ComparisonItemData `json:"items"`
	CalculationID string                          `json:"calculationId,omitempty"`
}

// GenerateComparisonReport renders a side-by-side comparison table.
func (s *ReportService) GenerateComparisonReport(ctx context.Context, req *GenerateComparisonReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateComparisonReport")
	defer span.End()

	gen, err := s.getGenerator(req.Format)
	if err != nil {
		return &ReportResult{ErrorMessage: err.Error()}, nil
	}

	data := &generator.ReportData{
		Type:           generator.ReportTypeComparison,
		Options:        req.Options.toGeneratorOptions(),
		ComparisonData: req.Items,
	}

	return s.render(ctx, gen, generator.ReportTypeComparison, req.Format, data, req.Options, req.CalculationID, "")
}

// GenerateHistoryReportRequest renders a user's solve-history digest.
// The digest itself is fetched from history-svc by the caller and
// passed in as comparison-shaped rows, one per past solve.
type GenerateHistoryReportRequest struct {
	Format  generator.ReportFormat          `json:"format"`
	Options *ReportOptions                  `json:"options,omitempty"`
	Entries []*generator.ComparisonItemData `json:"entries,omitempty"`
}

// GenerateHistoryReport renders a user's solve-history digest.
func (s *ReportService) GenerateHistoryReport(ctx context.Context, req *GenerateHistoryReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateHistoryReport")
	defer span.End()

	gen, err := s.getGenerator(req.Format)
	if err != nil {
		return &ReportResult{ErrorMessage: err.Error()}, nil
	}

	data := &generator.ReportData{
		Type:           generator.ReportTypeHistory,
		Options:        req.Options.toGeneratorOptions(),
		ComparisonData: req.Entries,
	}

	// History reports are not persisted: they are generated on demand
	// from another service's data, not from a solve this service owns.
	begin := time.Now()
	result, genErr := gen.Generate(ctx, data)
	if genErr != nil {
		telemetry.SetError(ctx, genErr)
		return &ReportResult{ErrorMessage: fmt.Sprintf("failed to generate report: %v", genErr)}, nil
	}

	duration := time.Since(begin)
	s.reportsGenerated.Add(1)
	metadata := s.buildMetadata(generator.ReportTypeHistory, req.Format, result, duration, req.Options, "", "")

	return &ReportResult{
		Success:  true,
		Metadata: metadata,
		Content: &repository.Content{
			Data:        result,
			ContentType: getContentType(req.Format),
			Filename:    metadata.Filename,
			SizeBytes:   int64(len(result)),
		},
	}, nil
}

// render is the shared Generate+buildMetadata+optionally-persist path
// used by every report type except history.
func (s *ReportService) render(
	ctx context.Context,
	gen generator.Generator,
	reportType generator.ReportType,
	format generator.ReportFormat,
	data *generator.ReportData,
	opts *ReportOptions,
	calculationID, graphID string,
) (*ReportResult, error) {
	begin := time.Now()

	content, err := gen.Generate(ctx, data)
	if err != nil {
		telemetry.SetError(ctx, err)
		return &ReportResult{ErrorMessage: fmt.Sprintf("failed to generate report: %v", err)}, nil
	}

	duration := time.Since(begin)
	s.reportsGenerated.Add(1)

	metadata := s.buildMetadata(reportType, format, content, duration, opts, calculationID, graphID)

	if s.shouldSave(opts) && s.repository != nil {
		if _, err := s.saveReport(ctx, opts, metadata, content); err != nil {
			telemetry.SetError(ctx, err)
		}
	}

	return &ReportResult{
		Success:  true,
		Metadata: metadata,
		Content: &repository.Content{
			Data:        content,
			ContentType: getContentType(format),
			Filename:    metadata.Filename,
			SizeBytes:   int64(len(content)),
		},
	}, nil
}

// GetReportRequest fetches a persisted report, content included.
type GetReportRequest struct {
	ReportID string `json:"reportId"`
}

// GetReport fetches a persisted report, content included.
func (s *ReportService) GetReport(ctx context.Context, req *GetReportRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GetReport",
		trace.WithAttributes(attribute.String("report_id", req.ReportID)),
	)
	defer span.End()

	if s.repository == nil {
		return &ReportResult{ErrorMessage: "storage not configured"}, nil
	}

	id, err := uuid.Parse(req.ReportID)
	if err != nil {
		return &ReportResult{ErrorMessage: "invalid report ID"}, nil
	}

	report, err := s.repository.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ReportResult{ErrorMessage: "report not found"}, nil
		}
		telemetry.SetError(ctx, err)
		return &ReportResult{ErrorMessage: fmt.Sprintf("failed to get report: %v", err)}, nil
	}

	return &ReportResult{
		Success:  true,
		Metadata: report.ToMetadata(),
		Content:  report.ToContent(),
	}, nil
}

// GetReportInfoRequest fetches a persisted report's metadata only.
type GetReportInfoRequest struct {
	ReportID string `json:"reportId"`
}

// GetReportInfo fetches a persisted report's metadata, without its content.
func (s *ReportService) GetReportInfo(ctx context.Context, req *GetReportInfoRequest) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GetReportInfo",
		trace.WithAttributes(attribute.String("report_id", req.ReportID)),
	)
	defer span.End()

	if s.repository == nil {
		return &ReportResult{ErrorMessage: "storage not configured"}, nil
	}

	id, err := uuid.Parse(req.ReportID)
	if err != nil {
		return &ReportResult{ErrorMessage: "invalid report ID"}, nil
	}

	report, err := s.repository.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ReportResult{ErrorMessage: "report not found"}, nil
		}
		return &ReportResult{ErrorMessage: fmt.Sprintf("failed to get report: %v", err)}, nil
	}

	return &ReportResult{Success: true, Metadata: report.ToMetadata()}, nil
}

// ListReportsRequest filters and paginates a report listing.
type ListReportsRequest struct {
	Limit         int32                  `json:"limit,omitempty"`
	Offset        int32                  `json:"offset,omitempty"`
	UserID        string                 `json:"userId,omitempty"`
	ReportType    generator.ReportType   `json:"reportType,omitempty"`
	Format        generator.ReportFormat `json:"format,omitempty"`
	CalculationID string                 `json:"calculationId,omitempty"`
	GraphID       string                 `json:"graphId,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	CreatedAfter  *time.Time             `json:"createdAfter,omitempty"`
	CreatedBefore *time.Time             `json:"createdBefore,omitempty"`
	OrderBy       string                 `json:"orderBy,omitempty"`
	OrderDesc     bool                   `json:"orderDesc,omitempty"`
}

// ListReportsResponse is a page of report metadata.
type ListReportsResponse struct {
	Reports    []*repository.Metadata `json:"reports"`
	TotalCount int64                  `json:"totalCount"`
	HasMore    bool                   `json:"hasMore"`
}

// ListReports returns a filtered, paginated page of report metadata.
func (s *ReportService) ListReports(ctx context.Context, req *ListReportsRequest) (*ListReportsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.ListReports")
	defer span.End()

	if s.repository == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnimplemented, "storage not configured")
	}

	params := &repository.ListParams{
		Limit:     req.Limit,
		Offset:    req.Offset,
		UserID:    req.UserID,
		Tags:      req.Tags,
		OrderBy:   req.OrderBy,
		OrderDesc: req.OrderDesc,
	}

	if req.ReportType != "" {
		params.ReportType = &req.ReportType
	}
	if req.Format != "" {
		params.Format = &req.Format
	}
	params.CalculationID = req.CalculationID
	params.GraphID = req.GraphID
	params.CreatedAfter = req.CreatedAfter
	params.CreatedBefore = req.CreatedBefore

	result, err := s.repository.List(ctx, params)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list reports")
	}

	reports := make([]*repository.Metadata, len(result.Reports))
	for i, r := range result.Reports {
		reports[i] = r.ToMetadata()
	}

	return &ListReportsResponse{
		Reports:    reports,
		TotalCount: result.TotalCount,
		HasMore:    result.HasMore,
	}, nil
}

// DeleteReportRequest removes a persisted report.
type DeleteReportRequest struct {
	ReportID   string `json:"reportId"`
	HardDelete bool   `json:"hardDelete,omitempty"`
}

// DeleteReportResponse reports whether the delete succeeded.
type DeleteReportResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// DeleteReport removes a persisted report, soft or hard.
func (s *ReportService) DeleteReport(ctx context.Context, req *DeleteReportRequest) (*DeleteReportResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.DeleteReport",
		trace.WithAttributes(attribute.String("report_id", req.ReportID)),
	)
	defer span.End()

	if s.repository == nil {
		return &DeleteReportResponse{ErrorMessage: "storage not configured"}, nil
	}

	id, err := uuid.Parse(req.ReportID)
	if err != nil {
		return &DeleteReportResponse{ErrorMessage: "invalid report ID"}, nil
	}

	if req.HardDelete {
		err = s.repository.HardDelete(ctx, id)
	} else {
		err = s.repository.Delete(ctx, id)
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &DeleteReportResponse{ErrorMessage: "report not found"}, nil
		}
		telemetry.SetError(ctx, err)
		return &DeleteReportResponse{ErrorMessage: fmt.Sprintf("failed to delete report: %v", err)}, nil
	}

	return &DeleteReportResponse{Success: true}, nil
}

// UpdateReportTagsRequest updates a report's tag set.
type UpdateReportTagsRequest struct {
	ReportID string   `json:"reportId"`
	Tags     []string `json:"tags"`
	Replace  bool     `json:"replace,omitempty"`
}

// UpdateReportTagsResponse reports the report's tags after the update.
type UpdateReportTagsResponse struct {
	Success      bool     `json:"success"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// UpdateReportTags appends to or replaces a report's tags.
func (s *ReportService) UpdateReportTags(ctx context.Context, req *UpdateReportTagsRequest) (*UpdateReportTagsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.UpdateReportTags")
	defer span.End()

	if s.repository == nil {
		return &UpdateReportTagsResponse{ErrorMessage: "storage not configured"}, nil
	}

	id, err := uuid.Parse(req.ReportID)
	if err != nil {
		return &UpdateReportTagsResponse{ErrorMessage: "invalid report ID"}, nil
	}

	tags, err := s.repository.UpdateTags(ctx, id, req.Tags, req.Replace)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &UpdateReportTagsResponse{ErrorMessage: "report not found"}, nil
		}
		return &UpdateReportTagsResponse{ErrorMessage: fmt.Sprintf("failed to update tags: %v", err)}, nil
	}

	return &UpdateReportTagsResponse{Success: true, Tags: tags}, nil
}

// GetRepositoryStatsRequest requests repository-wide statistics, optionally
// scoped to one user.
type GetRepositoryStatsRequest struct {
	UserID string `json:"userId,omitempty"`
}

// GetRepositoryStats returns repository-wide statistics.
func (s *ReportService) GetRepositoryStats(ctx context.Context, req *GetRepositoryStatsRequest) (*repository.StatsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GetRepositoryStats")
	defer span.End()

	if s.repository == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnimplemented, "storage not configured")
	}

	stats, err := s.repository.Stats(ctx, req.UserID)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get stats")
	}

	return stats.ToResponse(), nil
}

// FormatInfo describes one supported output format.
type FormatInfo struct {
	Format               generator.ReportFormat `json:"format"`
	Name                 string                 `json:"name"`
	Extension            string                 `json:"extension"`
	MimeType             string                 `json:"mimeType"`
	SupportsCharts       bool                   `json:"supportsCharts"`
	SupportsStyling      bool                   `json:"supportsStyling"`
	SupportedReportTypes []generator.ReportType `json:"supportedReportTypes"`
}

// GetSupportedFormatsResponse lists every output format this service renders.
type GetSupportedFormatsResponse struct {
	Formats []*FormatInfo `json:"formats"`
}

// GetSupportedFormats lists every output format this service renders.
func (s *ReportService) GetSupportedFormats(ctx context.Context) *GetSupportedFormatsResponse {
	allTypes := []generator.ReportType{
		generator.ReportTypeSolve,
		generator.ReportTypeAnalytics,
		generator.ReportTypeSimulation,
		generator.ReportTypeSummary,
		generator.ReportTypeComparison,
		generator.ReportTypeHistory,
	}

	return &GetSupportedFormatsResponse{
		Formats: []*FormatInfo{
			{
				Format: generator.FormatMarkdown, Name: "Markdown", Extension: ".md",
				MimeType: "text/markdown", SupportsCharts: false, SupportsStyling: true,
				SupportedReportTypes: allTypes,
			},
			{
				Format: generator.FormatCSV, Name: "CSV", Extension: ".csv",
				MimeType: "text/csv", SupportsCharts: false, SupportsStyling: false,
				SupportedReportTypes: []generator.ReportType{
					generator.ReportTypeSolve, generator.ReportTypeAnalytics, generator.ReportTypeSimulation, generator.ReportTypeComparison,
				},
			},
			{
				Format: generator.FormatExcel, Name: "Excel", Extension: ".xlsx",
				MimeType:       "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				SupportsCharts: true, SupportsStyling: true,
				SupportedReportTypes: []generator.ReportType{
					generator.ReportTypeSolve, generator.ReportTypeAnalytics, generator.ReportTypeSimulation,
					generator.ReportTypeSummary, generator.ReportTypeComparison,
				},
			},
			{
				Format: generator.FormatPDF, Name: "PDF", Extension: ".pdf",
				MimeType: "application/pdf", SupportsCharts: true, SupportsStyling: true,
				SupportedReportTypes: allTypes,
			},
			{
				Format: generator.FormatHTML, Name: "HTML", Extension: ".html",
				MimeType: "text/html", SupportsCharts: true, SupportsStyling: true,
				SupportedReportTypes: []generator.ReportType{
					generator.ReportTypeSolve, generator.ReportTypeAnalytics, generator.ReportTypeSimulation,
					generator.ReportTypeSummary, generator.ReportTypeComparison,
				},
			},
			{
				Format: generator.FormatJSON, Name: "JSON", Extension: ".json",
				MimeType: "application/json", SupportsCharts: false, SupportsStyling: false,
				SupportedReportTypes: allTypes,
			},
		},
	}
}

// HealthResponse reports the service's liveness and storage status.
type HealthResponse struct {
	Status           string         `json:"status"`
	Version          string         `json:"version"`
	UptimeSeconds    int64          `json:"uptimeSeconds"`
	ReportsGenerated int64          `json:"reportsGenerated"`
	Storage          *StorageHealth `json:"storage,omitempty"`
}

// StorageHealth reports the backing repository's reachability.
type StorageHealth struct {
	Status         string `json:"status"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	StoredReports  int64  `json:"storedReports,omitempty"`
	TotalSizeBytes int64  `json:"totalSizeBytes,omitempty"`
}

// Health reports the service's liveness and storage status.
func (s *ReportService) Health(ctx context.Context) *HealthResponse {
	resp := &HealthResponse{
		Status:           "SERVING",
		Version:          s.version,
		UptimeSeconds:    int64(time.Since(startTime).Seconds()),
		ReportsGenerated: s.reportsGenerated.Load(),
	}

	if s.repository == nil {
		resp.Storage = &StorageHealth{Status: "NOT_CONFIGURED"}
		return resp
	}

	if err := s.repository.Ping(ctx); err != nil {
		resp.Status = "DEGRADED"
		resp.Storage = &StorageHealth{Status: "ERROR", ErrorMessage: err.Error()}
		return resp
	}

	stats, err := s.repository.Stats(ctx, "")
	if err != nil {
		resp.Storage = &StorageHealth{Status: "ERROR", ErrorMessage: err.Error()}
		return resp
	}

	resp.Storage = &StorageHealth{
		Status:         "OK",
		StoredReports:  stats.TotalReports,
		TotalSizeBytes: stats.TotalSizeBytes,
	}
	return resp
}

func (s *ReportService) getGenerator(format generator.ReportFormat) (generator.Generator, error) {
	gen, ok := s.generators[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return gen, nil
}

func (s *ReportService) shouldSave(opts *ReportOptions) bool {
	if opts != nil && opts.SaveToStorage {
		return true
	}
	return s.saveToStorage
}

func (s *ReportService) buildMetadata(
	reportType generator.ReportType,
	format generator.ReportFormat,
	content []byte,
	duration time.Duration,
	opts *ReportOptions,
	calculationID, graphID string,
) *repository.Metadata {
	ext := getExtension(format)
	title := "report"
	if opts != nil && opts.Title != "" {
		title = sanitizeFilename(opts.Title)
	}

	meta := &repository.Metadata{
		ReportID:         uuid.New().String(),
		Type:             reportType,
		Format:           format,
		GeneratedAt:      time.Now(),
		GenerationTimeMs: float64(duration.Milliseconds()),
		SizeBytes:        int64(len(content)),
		Filename:         fmt.Sprintf("%s_%s%s", title, time.Now().Format("20060102_150405"), ext),
		CalculationID:    calculationID,
		GraphID:          graphID,
	}

	if opts != nil {
		meta.Title = opts.Title
		meta.Description = opts.Description
		meta.GeneratedBy = opts.Author
		meta.Tags = opts.Tags
		meta.CustomFields = opts.CustomFields

		if opts.TTLSeconds > 0 {
			expiresAt := time.Now().Add(time.Duration(opts.TTLSeconds) * time.Second)
			meta.ExpiresAt = &expiresAt
		}
	}

	return meta
}

func (s *ReportService) saveReport(
	ctx context.Context,
	opts *ReportOptions,
	metadata *repository.Metadata,
	content []byte,
) (*repository.Report, error) {
	if s.repository == nil {
		return nil, nil
	}

	title := "Untitled Report"
	description := ""
	author := "System"
	var tags []string
	var customFields map[string]string

	if opts != nil {
		if opts.Title != "" {
			title = opts.Title
		}
		if opts.Description != "" {
			description = opts.Description
		}
		if opts.Author != "" {
			author = opts.Author
		}
		tags = opts.Tags
		customFields = opts.CustomFields
	}

	ttl := s.defaultTTL
	if opts != nil && opts.TTLSeconds > 0 {
		ttl = time.Duration(opts.TTLSeconds) * time.Second
	}

	params := &repository.CreateParams{
		Title:            title,
		Description:      description,
		Author:           author,
		ReportType:       metadata.Type,
		Format:           metadata.Format,
		Content:          content,
		ContentType:      getContentType(metadata.Format),
		Filename:         metadata.Filename,
		CalculationID:    metadata.CalculationID,
		GraphID:          metadata.GraphID,
		GenerationTimeMs: metadata.GenerationTimeMs,
		Version:          s.version,
		Tags:             tags,
		CustomFields:     customFields,
		TTL:              ttl,
	}

	return s.repository.Create(ctx, params)
}

func getExtension(format generator.ReportFormat) string {
	switch format {
	case generator.FormatMarkdown:
		return ".md"
	case generator.FormatCSV:
		return ".csv"
	case generator.FormatExcel:
		return ".xlsx"
	case generator.FormatPDF:
		return ".pdf"
	case generator.FormatHTML:
		return ".html"
	case generator.FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

func getContentType(format generator.ReportFormat) string {
	switch format {
	case generator.FormatMarkdown:
		return "text/markdown"
	case generator.FormatCSV:
		return "text/csv"
	case generator.FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case generator.FormatPDF:
		return "application/pdf"
	case generator.FormatHTML:
		return "text/html"
	case generator.FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

func sanitizeFilename(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' {
			result = append(result, r)
		} else if r == ' ' {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "report"
	}
	return string(result)
}
