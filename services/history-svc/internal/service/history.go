// Package service implements history-svc: it persists a record of each
// solved MAPF instance (mode, objective, makespan, tag set) and answers
// paginated list/search/statistics queries over a user's solve history.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/history-svc/internal/repository"
)

// SolveSummary is the minimal shape history-svc extracts from a solved
// instance to persist and later render back as a CalculationSummary —
// callers pass the result fields directly rather than the full solve
// request/response, since history-svc only cares about the outcome.
type SolveSummary struct {
	Mode              string  `json:"mode"`
	Objective         float64 `json:"objective"`
	Makespan          float64 `json:"makespan"`
	ComputationTimeMs float64 `json:"computation_time_ms"`
	VertexCount       int     `json:"vertex_count"`
	EdgeCount         int     `json:"edge_count"`
	AgentCount        int     `json:"agent_count"`
}

// SaveCalculationRequest stores one solved instance.
type SaveCalculationRequest struct {
	UserID  string            `json:"user_id"`
	Name    string            `json:"name"`
	Summary *SolveSummary     `json:"summary"`
	Request json.RawMessage   `json:"request"`
	Response json.RawMessage  `json:"response"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// SaveCalculationResponse reports the persisted record's identity.
type SaveCalculationResponse struct {
	CalculationID string    `json:"calculation_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetCalculationRequest fetches one record, scoped to its owner.
type GetCalculationRequest struct {
	CalculationID string `json:"calculation_id"`
	UserID        string `json:"user_id,omitempty"`
}

// CalculationRecord is a full persisted solve, returned by GetCalculation.
type CalculationRecord struct {
	CalculationID string            `json:"calculation_id"`
	UserID        string            `json:"user_id"`
	Name          string            `json:"name"`
	CreatedAt     time.Time         `json:"created_at"`
	Summary       *SolveSummary     `json:"summary"`
	Request       json.RawMessage   `json:"request,omitempty"`
	Response      json.RawMessage   `json:"response,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

// GetCalculationResponse wraps the fetched record.
type GetCalculationResponse struct {
	Record *CalculationRecord `json:"record"`
}

// Pagination is a page/page-size request.
type Pagination struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// PaginationResult reports a listing's page against its total.
type PaginationResult struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// TimeRange bounds a query to [Start, End), as Unix seconds.
type TimeRange struct {
	StartUnix int64 `json:"start_unix,omitempty"`
	EndUnix   int64 `json:"end_unix,omitempty"`
}

// ListFilter narrows ListCalculations to a subset of a user's history.
type ListFilter struct {
	Mode         string     `json:"mode,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	MinObjective *float64   `json:"min_objective,omitempty"`
	MaxObjective *float64   `json:"max_objective,omitempty"`
	TimeRange    *TimeRange `json:"time_range,omitempty"`
}

// SortOrder names a ListCalculations ordering.
type SortOrder string

const (
	SortCreatedDesc   SortOrder = "created_desc"
	SortCreatedAsc    SortOrder = "created_asc"
	SortObjectiveDesc SortOrder = "objective_desc"
	SortMakespanDesc  SortOrder = "makespan_desc"
)

// ListCalculationsRequest lists one user's solve history, paginated.
type ListCalculationsRequest struct {
	UserID     string      `json:"user_id"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Filter     *ListFilter `json:"filter,omitempty"`
	Sort       SortOrder   `json:"sort,omitempty"`
}

// CalculationSummary is a listing row.
type CalculationSummary struct {
	CalculationID     string   `json:"calculation_id"`
	Name              string   `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
	Mode              string   `json:"mode"`
	Objective         float64  `json:"objective"`
	Makespan          float64  `json:"makespan"`
	ComputationTimeMs float64  `json:"computation_time_ms"`
	VertexCount       int      `json:"vertex_count"`
	EdgeCount         int      `json:"edge_count"`
	AgentCount        int      `json:"agent_count"`
	Tags              []string `json:"tags,omitempty"`
}

// ListCalculationsResponse is a page of history.
type ListCalculationsResponse struct {
	Calculations []*CalculationSummary `json:"calculations"`
	Pagination   *PaginationResult     `json:"pagination"`
}

// DeleteCalculationRequest removes one record, scoped to its owner.
type DeleteCalculationRequest struct {
	CalculationID string `json:"calculation_id"`
	UserID        string `json:"user_id"`
}

// DeleteCalculationResponse reports whether the delete succeeded.
type DeleteCalculationResponse struct {
	Success bool `json:"success"`
}

// SearchCalculationsRequest full-text searches a user's history by name.
type SearchCalculationsRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
}

// SearchCalculationsResponse is the matching set, unpaginated.
type SearchCalculationsResponse struct {
	Calculations []*CalculationSummary `json:"calculations"`
}

// GetStatisticsRequest summarizes a user's history, optionally windowed.
type GetStatisticsRequest struct {
	UserID    string     `json:"user_id"`
	TimeRange *TimeRange `json:"time_range,omitempty"`
}

// DailyStats is one day's bucket of a statistics response.
type DailyStats struct {
	Date           string  `json:"date"`
	Count          int     `json:"count"`
	TotalObjective float64 `json:"total_objective"`
}

// GetStatisticsResponse rolls up a user's solve history.
type GetStatisticsResponse struct {
	TotalCalculations        int              `json:"total_calculations"`
	AverageObjective         float64          `json:"average_objective"`
	AverageMakespan          float64          `json:"average_makespan"`
	AverageComputationTimeMs float64          `json:"average_computation_time_ms"`
	CalculationsByMode       map[string]int   `json:"calculations_by_mode"`
	DailyStats               []*DailyStats    `json:"daily_stats"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// HistoryService answers solve-history queries over a CalculationRepository.
type HistoryService struct {
	repo repository.CalculationRepository
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(repo repository.CalculationRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// SaveCalculation persists one solved instance.
func (s *HistoryService) SaveCalculation(ctx context.Context, req *SaveCalculationRequest) (*SaveCalculationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "HistoryService.SaveCalculation")
	defer span.End()

	if req == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNilInput, "request body is required")
	}

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("name", req.Name),
	)

	if req.UserID == "" {
		return nil, pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "user_id is required", "user_id")
	}
	if req.Summary == nil {
		return nil, pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "summary is required", "summary")
	}

	tags := make([]string, 0, len(req.Tags))
	for k, v := range req.Tags {
		tags = append(tags, k+":"+v)
	}

	calc := &repository.Calculation{
		UserID:            req.UserID,
		Name:              req.Name,
		Mode:              req.Summary.Mode,
		Objective:         req.Summary.Objective,
		Makespan:          req.Summary.Makespan,
		ComputationTimeMs: req.Summary.ComputationTimeMs,
		VertexCount:       req.Summary.VertexCount,
		EdgeCount:         req.Summary.EdgeCount,
		AgentCount:        req.Summary.AgentCount,
		RequestData:       []byte(req.Request),
		ResponseData:      []byte(req.Response),
		Tags:              tags,
	}

	if err := s.repo.Create(ctx, calc); err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to save calculation")
	}

	telemetry.AddEvent(ctx, "calculation_saved",
		attribute.String("calculation_id", calc.ID),
		attribute.Float64("objective", calc.Objective),
	)

	return &SaveCalculationResponse{
		CalculationID: calc.ID,
		CreatedAt:     calc.CreatedAt,
	}, nil
}

// GetCalculation fetches one record, rejecting cross-user access.
func (s *HistoryService) GetCalculation(ctx context.Context, req *GetCalculationRequest) (*GetCalculationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "HistoryService.GetCalculation")
	defer span.End()

	if req == nil || req.CalculationID == "" {
		return nil, pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "calculation_id is required", "calculation_id")
	}

	span.SetAttributes(
		attribute.String("calculation_id", req.CalculationID),
		attribute.String("user_id", req.UserID),
	)

	calc, err := s.repo.GetByID(ctx, req.CalculationID)
	if err != nil {
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "calculation not found")
		}
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get calculation")
	}

	if req.UserID != "" && calc.UserID != req.UserID {
		return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "access denied")
	}

	return &GetCalculationResponse{Record: toCalculationRecord(calc)}, nil
}

// ListCalculations returns a paginated page of a user's solve history.
func (s *HistoryService) ListCalculations(ctx context.Context, req *ListCalculationsRequest) (*ListCalculationsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "HistoryService.ListCalculations")
	defer span.End()

	if req == nil || req.UserID == "" {
		return nil, pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "user_id is required", "user_id")
	}

	span.SetAttributes(attribute.String("user_id", req.UserID))

	opts, err := toListOptions(req)
	if err != nil {
		return nil, err
	}

	calculations, total, err := s.repo.List(ctx, req.UserID, opts)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list calculations")
	}

	summaries := make([]*CalculationSummary, len(calculations))
	for i, calc := range calculations {
		summaries[i] = toCalculationSummary(calc)
	}

	return &ListCalculationsResponse{
		Calculations: summaries,
		Pagination:   buildPagination(opts.Limit, opts.Offset, total),
	}, nil
}

// DeleteCalculation removes one record, rejecting cross-user access.
// Deleting an already-absent record is treated as success.
func (s *HistoryService) DeleteCalculation(ctx context.Context, req *DeleteCalculationRequest) (*DeleteCalculationResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "HistoryService.DeleteCalculation")
	defer span.End()

	if req == nil || req.CalculationID == "" || req.UserID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "calculation_id and user_id are required")
	}

	span.SetAttributes(
		attribute.String("calculation_id", req.CalculationID),
		attribute.String("user_id", req.UserID),
	)

	calc, err := s.repo.GetByID(ctx, req.CalculationID)
	if err != nil {
		if errors.Is(err, repository.ErrCalculationNotFound) {
			return &DeleteCalculationResponse{Success: true}, nil
		}
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get calculation")
	}

	if calc.UserID != req.UserID {
		return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "access denied")
	}

	if err := s.repo.Delete(ctx, req.CalculationID); err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to delete calculation")
	}

	telemetry.AddEvent(ctx, "calculation_deleted", attribute.String("calculation_id", req.CalculationID))

	return &DeleteCalculationResponse{Success: true}, nil
}

// SearchCalculations full-text searches a user's history by name.
func (s *HistoryService) SearchCalculations(ctx context.Context, req *SearchCalculationsRequest) (*SearchCalculationsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "HistoryService.SearchCalculations")
	defer span.End()

	if req == nil || req.UserID == "" || req.Query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "user_id and query are required")
	}

	span.SetAttributes(attribute.String("user_id", req.UserID), attribute.String("query", req.Query))

	calculations, err := s.repo.Search(ctx, req.UserID, req.Query, req.Limit)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to search calculations")
	}

	summaries := make([]*CalculationSummary, len(calculations))
	for i, calc := range calculations {
		summaries[i] = toCalculationSummary(calc)
	}

	return &SearchCalculationsResponse{Calculations: summaries}, nil
}

// GetStatistics rolls up a user's solve history, optionally windowed.
func (s *HistoryService) GetStatistics(ctx context.Context, req *GetStatisticsRequest) (*GetStatisticsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "HistoryService.GetStatistics")
	defer span.End()

	if req == nil || req.UserID == "" {
		return nil, pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "user_id is required", "user_id")
	}

	span.SetAttributes(attribute.String("user_id", req.UserID))

	var startTime, endTime *time.Time
	if req.TimeRange != nil {
		if req.TimeRange.StartUnix > 0 {
			t := time.Unix(req.TimeRange.StartUnix, 0)
			startTime = &t
		}
		if req.TimeRange.EndUnix > 0 {
			t := time.Unix(req.TimeRange.EndUnix, 0)
			endTime = &t
		}
	}

	stats, err := s.repo.GetUserStatistics(ctx, req.UserID, startTime, endTime)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get statistics")
	}

	dailyStats := make([]*DailyStats, len(stats.DailyStats))
	for i, ds := range stats.DailyStats {
		dailyStats[i] = &DailyStats{
			Date:           ds.Date,
			Count:          ds.Count,
			TotalObjective: ds.TotalObjective,
		}
	}

	return &GetStatisticsResponse{
		TotalCalculations:        stats.TotalCalculations,
		AverageObjective:         stats.AverageObjective,
		AverageMakespan:          stats.AverageMakespan,
		AverageComputationTimeMs: stats.AverageComputationTimeMs,
		CalculationsByMode:       stats.CalculationsByMode,
		DailyStats:               dailyStats,
	}, nil
}

// Health reports liveness.
func (s *HistoryService) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{Status: "ok"}
}

func toListOptions(req *ListCalculationsRequest) (*repository.ListOptions, error) {
	opts := &repository.ListOptions{
		Limit:  20,
		Offset: 0,
		Sort:   repository.SortByCreatedDesc,
	}

	page, pageSize := 1, 20
	if req.Pagination != nil {
		if req.Pagination.PageSize > 0 {
			pageSize = req.Pagination.PageSize
		}
		if req.Pagination.Page > 0 {
			page = req.Pagination.Page
		}
	}
	if page < 0 || pageSize < 0 || pageSize > 1000 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidPagination, "page and page_size must be non-negative, page_size at most 1000")
	}
	opts.Limit = pageSize
	opts.Offset = (page - 1) * pageSize

	if req.Filter != nil {
		opts.Filter = &repository.ListFilter{
			Mode:         req.Filter.Mode,
			Tags:         req.Filter.Tags,
			MinObjective: req.Filter.MinObjective,
			MaxObjective: req.Filter.MaxObjective,
		}

		if req.Filter.TimeRange != nil {
			if req.Filter.TimeRange.StartUnix > 0 {
				t := time.Unix(req.Filter.TimeRange.StartUnix, 0)
				opts.Filter.StartTime = &t
			}
			if req.Filter.TimeRange.EndUnix > 0 {
				t := time.Unix(req.Filter.TimeRange.EndUnix, 0)
				opts.Filter.EndTime = &t
			}
		}
	}

	switch req.Sort {
	case SortCreatedAsc:
		opts.Sort = repository.SortByCreatedAsc
	case SortObjectiveDesc:
		opts.Sort = repository.SortByObjectiveDesc
	case SortMakespanDesc:
		opts.Sort = repository.SortByMakespanDesc
	default:
		opts.Sort = repository.SortByCreatedDesc
	}

	return opts, nil
}

func buildPagination(limit, offset int, total int64) *PaginationResult {
	if limit <= 0 {
		limit = 20
	}
	currentPage := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &PaginationResult{
		CurrentPage: currentPage,
		PageSize:    limit,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     int64(offset+limit) < total,
		HasPrevious: offset > 0,
	}
}

func toCalculationRecord(calc *repository.Calculation) *CalculationRecord {
	tags := make(map[string]string, len(calc.Tags))
	for _, tag := range calc.Tags {
		k, v, ok := splitOnce(tag, ":")
		if ok {
			tags[k] = v
		}
	}

	return &CalculationRecord{
		CalculationID: calc.ID,
		UserID:        calc.UserID,
		Name:          calc.Name,
		CreatedAt:     calc.CreatedAt,
		Summary: &SolveSummary{
			Mode:              calc.Mode,
			Objective:         calc.Objective,
			Makespan:          calc.Makespan,
			ComputationTimeMs: calc.ComputationTimeMs,
			VertexCount:       calc.VertexCount,
			EdgeCount:         calc.EdgeCount,
			AgentCount:        calc.AgentCount,
		},
		Request:  calc.RequestData,
		Response: calc.ResponseData,
		Tags:     tags,
	}
}

func toCalculationSummary(calc *repository.CalculationSummary) *CalculationSummary {
	return &CalculationSummary{
		CalculationID:     calc.ID,
		Name:              calc.Name,
		CreatedAt:         calc.CreatedAt,
		Mode:              calc.Mode,
		Objective:         calc.Objective,
		Makespan:          calc.Makespan,
		ComputationTimeMs: calc.ComputationTimeMs,
		VertexCount:       calc.VertexCount,
		EdgeCount:         calc.EdgeCount,
		AgentCount:        calc.AgentCount,
		Tags:              calc.Tags,
	}
}

func splitOnce(s, sep string) (string, string, bool) {
	for i := 0; i <= len(s)-len(sep); i++ {
		if s[i:i+len(sep)] == sep {
			return s[:i], s[i+len(sep):], true
		}
	}
	return "", "", false
}
