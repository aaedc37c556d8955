// Package service implements audit-svc: it persists one audit row per
// solve request/response (and any other service-to-service call routed
// through it) and answers queries over that log — by resource, by user,
// or as aggregate statistics — independent of the solve itself.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/audit-svc/internal/repository"
)

var startTime = time.Now()

// AuditEntry is the wire shape of one audit row, exchanged verbatim with
// repository.AuditEntry save for its JSON tags.
type AuditEntry struct {
	ID            string            `json:"id,omitempty"`
	Timestamp     time.Time         `json:"timestamp,omitempty"`
	Service       string            `json:"service"`
	Method        string            `json:"method"`
	RequestID     string            `json:"request_id,omitempty"`
	Action        string            `json:"action"`
	Outcome       string            `json:"outcome"`
	UserID        string            `json:"user_id,omitempty"`
	Username      string            `json:"username,omitempty"`
	UserRole      string            `json:"user_role,omitempty"`
	ClientIP      string            `json:"client_ip,omitempty"`
	UserAgent     string            `json:"user_agent,omitempty"`
	ResourceType  string            `json:"resource_type,omitempty"`
	ResourceID    string            `json:"resource_id,omitempty"`
	ResourceName  string            `json:"resource_name,omitempty"`
	DurationMs    int64             `json:"duration_ms,omitempty"`
	ErrorCode     string            `json:"error_code,omitempty"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	ChangesBefore string            `json:"changes_before,omitempty"`
	ChangesAfter  string            `json:"changes_after,omitempty"`
	ChangedFields []string          `json:"changed_fields,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// LogEventRequest logs a single audit entry.
type LogEventRequest struct {
	Entry *AuditEntry `json:"entry"`
}

// LogEventResponse reports whether the entry was persisted.
type LogEventResponse struct {
	EventID string `json:"event_id,omitempty"`
	Success bool   `json:"success"`
}

// LogEventBatchRequest logs many audit entries in one round trip.
type LogEventBatchRequest struct {
	Entries []*AuditEntry `json:"entries"`
}

// LogEventBatchResponse reports how many of a batch persisted.
type LogEventBatchResponse struct {
	LoggedCount int `json:"logged_count"`
	FailedCount int `json:"failed_count"`
}

// Pagination is a page/page-size request, shared across every listing
// endpoint.
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

// AuditFilter narrows GetAuditLogs to a subset of the log.
type AuditFilter struct {
	TimeRange    *TimeRange `json:"time_range,omitempty"`
	Services     []string   `json:"services,omitempty"`
	Methods      []string   `json:"methods,omitempty"`
	Actions      []string   `json:"actions,omitempty"`
	Outcomes     []string   `json:"outcomes,omitempty"`
	UserID       string     `json:"user_id,omitempty"`
	ResourceType string     `json:"resource_type,omitempty"`
	ResourceID   string     `json:"resource_id,omitempty"`
	ClientIP     string     `json:"client_ip,omitempty"`
	SearchQuery  string     `json:"search_query,omitempty"`
}

// TimeRange bounds a query to [Start, End).
type TimeRange struct {
	StartUnix int64 `json:"start_unix"`
	EndUnix   int64 `json:"end_unix"`
}

// GetAuditLogsRequest lists audit entries matching Filter.
type GetAuditLogsRequest struct {
	Filter     *AuditFilter `json:"filter,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	SortDesc   bool         `json:"sort_desc,omitempty"`
}

// GetAuditLogsResponse is GetAuditLogs' output.
type GetAuditLogsResponse struct {
	Entries    []*AuditEntry     `json:"entries"`
	Pagination *PaginationResult `json:"pagination"`
}

// GetResourceHistoryRequest asks for every audit entry touching one
// resource.
type GetResourceHistoryRequest struct {
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Pagination   *Pagination `json:"pagination,omitempty"`
}

// ResourceSummary is GetResourceHistory's rollup.
type ResourceSummary struct {
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	LastModifiedBy string    `json:"last_modified_by"`
	TotalChanges   int       `json:"total_changes"`
}

// GetResourceHistoryResponse is GetResourceHistory's output.
type GetResourceHistoryResponse struct {
	Entries    []*AuditEntry     `json:"entries"`
	Pagination *PaginationResult `json:"pagination"`
	Summary    *ResourceSummary  `json:"summary"`
}

// GetUserActivityRequest asks for one user's audit trail, optionally
// bounded to a time range.
type GetUserActivityRequest struct {
	UserID     string      `json:"user_id"`
	TimeRange  *TimeRange  `json:"time_range,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// UserActivitySummary is GetUserActivity's rollup.
type UserActivitySummary struct {
	TotalActions      int            `json:"total_actions"`
	SuccessfulActions int            `json:"successful_actions"`
	FailedActions     int            `json:"failed_actions"`
	DeniedActions     int            `json:"denied_actions"`
	ActionsByType     map[string]int `json:"actions_by_type"`
	ActionsByService  map[string]int `json:"actions_by_service"`
	FirstActivity     time.Time      `json:"first_activity"`
	LastActivity      time.Time      `json:"last_activity"`
}

// GetUserActivityResponse is GetUserActivity's output.
type GetUserActivityResponse struct {
	Entries    []*AuditEntry        `json:"entries"`
	Pagination *PaginationResult    `json:"pagination"`
	Summary    *UserActivitySummary `json:"summary"`
}

// GetAuditStatsRequest asks for aggregate counts over the log, optionally
// bounded to a time range and grouped by a dimension.
type GetAuditStatsRequest struct {
	TimeRange *TimeRange `json:"time_range,omitempty"`
	GroupBy   string     `json:"group_by,omitempty"`
}

// TimelinePoint is one bucket of GetAuditStatsResponse.Timeline.
type TimelinePoint struct {
	TimestampUnix int64 `json:"timestamp_unix"`
	Count         int64 `json:"count"`
	SuccessCount  int64 `json:"success_count"`
	FailureCount  int64 `json:"failure_count"`
}

// TopUser is one row of GetAuditStatsResponse.TopUsers.
type TopUser struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	ActionCount int64  `json:"action_count"`
}

// TopResource is one row of GetAuditStatsResponse.TopResources.
type TopResource struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	ActionCount  int64  `json:"action_count"`
}

// AuditStatsSummary is GetAuditStats' top-line rollup.
type AuditStatsSummary struct {
	TotalEvents      int64   `json:"total_events"`
	SuccessfulEvents int64   `json:"successful_events"`
	FailedEvents     int64   `json:"failed_events"`
	DeniedEvents     int64   `json:"denied_events"`
	UniqueUsers      int64   `json:"unique_users"`
	UniqueResources  int64   `json:"unique_resources"`
	AvgDurationMs    float64 `json:"avg_duration_ms"`
}

// GetAuditStatsResponse is GetAuditStats' output.
type GetAuditStatsResponse struct {
	Summary      *AuditStatsSummary `json:"summary"`
	Timeline     []TimelinePoint    `json:"timeline"`
	ByService    map[string]int64   `json:"by_service"`
	ByAction     map[string]int64   `json:"by_action"`
	ByOutcome    map[string]int64   `json:"by_outcome"`
	TopUsers     []TopUser          `json:"top_users"`
	TopResources []TopResource      `json:"top_resources"`
}

// HealthResponse reports liveness, version, and total rows stored.
type HealthResponse struct {
	Status            string `json:"status"`
	Version           string `json:"version"`
	UptimeSeconds     int64  `json:"uptime_seconds"`
	TotalEventsStored int64  `json:"total_events_stored"`
}

// AuditService persists and queries the audit log.
type AuditService struct {
	repo    repository.AuditRepository
	version string
}

// NewAuditService builds an AuditService backed by repo.
func NewAuditService(repo repository.AuditRepository, version string) *AuditService {
	return &AuditService{repo: repo, version: version}
}

// LogEvent persists one audit entry.
func (s *AuditService) LogEvent(ctx context.Context, req *LogEventRequest) (*LogEventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuditService.LogEvent")
	defer span.End()

	if req.Entry == nil {
		return &LogEventResponse{Success: false}, nil
	}

	entry := entryToRepo(req.Entry)

	if err := s.repo.Create(ctx, entry); err != nil {
		telemetry.SetError(ctx, err)
		return &LogEventResponse{Success: false}, nil
	}

	return &LogEventResponse{EventID: entry.ID, Success: true}, nil
}

// LogEventBatch persists many audit entries in one round trip.
func (s *AuditService) LogEventBatch(ctx context.Context, req *LogEventBatchRequest) (*LogEventBatchResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuditService.LogEventBatch",
		telemetry.WithAttributes(attribute.Int("batch_size", len(req.Entries))),
	)
	defer span.End()

	entries := make([]*repository.AuditEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, entryToRepo(e))
	}

	logged, err := s.repo.CreateBatch(ctx, entries)
	if err != nil {
		telemetry.SetError(ctx, err)
	}

	return &LogEventBatchResponse{
		LoggedCount: logged,
		FailedCount: len(entries) - logged,
	}, nil
}

// GetAuditLogs lists entries matching req.Filter.
func (s *AuditService) GetAuditLogs(ctx context.Context, req *GetAuditLogsRequest) (*GetAuditLogsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuditService.GetAuditLogs")
	defer span.End()

	filter := filterToRepo(req.Filter)
	opts := paginationToOpts(req.Pagination, req.SortDesc)

	entries, total, err := s.repo.List(ctx, filter, opts)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get audit logs")
	}

	return &GetAuditLogsResponse{
		Entries:    entriesToWire(entries),
		Pagination: buildPagination(opts, total),
	}, nil
}

// GetResourceHistory returns every audit entry touching one resource,
// plus a created/last-modified rollup.
func (s *AuditService) GetResourceHistory(ctx context.Context, req *GetResourceHistoryRequest) (*GetResourceHistoryResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuditService.GetResourceHistory",
		telemetry.WithAttributes(
			attribute.String("resource_type", req.ResourceType),
			attribute.String("resource_id", req.ResourceID),
		),
	)
	defer span.End()

	if req.ResourceType == "" || req.ResourceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "resource_type and resource_id are required")
	}

	opts := paginationToOpts(req.Pagination, true)

	entries, summary, total, err := s.repo.GetResourceHistory(ctx, req.ResourceType, req.ResourceID, opts)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get resource history")
	}

	return &GetResourceHistoryResponse{
		Entries:    entriesToWire(entries),
		Pagination: buildPagination(opts, total),
		Summary: &ResourceSummary{
			CreatedAt:      summary.CreatedAt,
			CreatedBy:      summary.CreatedBy,
			LastModifiedAt: summary.LastModifiedAt,
			LastModifiedBy: summary.LastModifiedBy,
			TotalChanges:   summary.TotalChanges,
		},
	}, nil
}

// GetUserActivity returns one user's audit trail plus an actions rollup.
func (s *AuditService) GetUserActivity(ctx context.Context, req *GetUserActivityRequest) (*GetUserActivityResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuditService.GetUserActivity",
		telemetry.WithAttributes(attribute.String("user_id", req.UserID)),
	)
	defer span.End()

	if req.UserID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "user_id is required")
	}

	var timeRange *repository.TimeRange
	if req.TimeRange != nil {
		timeRange = &repository.TimeRange{
			Start: time.Unix(req.TimeRange.StartUnix, 0),
			End:   time.Unix(req.TimeRange.EndUnix, 0),
		}
	}

	opts := paginationToOpts(req.Pagination, true)

	entries, summary, total, err := s.repo.GetUserActivity(ctx, req.UserID, timeRange, opts)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get user activity")
	}

	return &GetUserActivityResponse{
		Entries:    entriesToWire(entries),
		Pagination: buildPagination(opts, total),
		Summary: &UserActivitySummary{
			TotalActions:      summary.TotalActions,
			SuccessfulActions: summary.SuccessfulActions,
			FailedActions:     summary.FailedActions,
			DeniedActions:     summary.DeniedActions,
			ActionsByType:     summary.ActionsByType,
			ActionsByService:  summary.ActionsByService,
			FirstActivity:     summary.FirstActivity,
			LastActivity:      summary.LastActivity,
		},
	}, nil
}

// GetAuditStats returns aggregate counts over the log.
func (s *AuditService) GetAuditStats(ctx context.Context, req *GetAuditStatsRequest) (*GetAuditStatsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AuditService.GetAuditStats")
	defer span.End()

	var timeRange *repository.TimeRange
	if req.TimeRange != nil {
		timeRange = &repository.TimeRange{
			Start: time.Unix(req.TimeRange.StartUnix, 0),
			End:   time.Unix(req.TimeRange.EndUnix, 0),
		}
	}

	stats, err := s.repo.GetStats(ctx, timeRange, req.GroupBy)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to get audit stats")
	}

	topUsers := make([]TopUser, 0, len(stats.TopUsers))
	for _, u := range stats.TopUsers {
		topUsers = append(topUsers, TopUser{UserID: u.UserID, Username: u.Username, ActionCount: u.ActionCount})
	}

	topResources := make([]TopResource, 0, len(stats.TopResources))
	for _, r := range stats.TopResources {
		topResources = append(topResources, TopResource{ResourceType: r.ResourceType, ResourceID: r.ResourceID, ActionCount: r.ActionCount})
	}

	timeline := make([]TimelinePoint, 0, len(stats.Timeline))
	for _, p := range stats.Timeline {
		timeline = append(timeline, TimelinePoint{
			TimestampUnix: p.Timestamp.Unix(),
			Count:         p.Count,
			SuccessCount:  p.SuccessCount,
			FailureCount:  p.FailureCount,
		})
	}

	return &GetAuditStatsResponse{
		Summary: &AuditStatsSummary{
			TotalEvents:      stats.TotalEvents,
			SuccessfulEvents: stats.SuccessfulEvents,
			FailedEvents:     stats.FailedEvents,
			DeniedEvents:     stats.DeniedEvents,
			UniqueUsers:      stats.UniqueUsers,
			UniqueResources:  stats.UniqueResources,
			AvgDurationMs:    stats.AvgDurationMs,
		},
		Timeline:     timeline,
		ByService:    stats.ByService,
		ByAction:     stats.ByAction,
		ByOutcome:    stats.ByOutcome,
		TopUsers:     topUsers,
		TopResources: topResources,
	}, nil
}

// Health reports liveness, version, and total rows stored.
func (s *AuditService) Health(ctx context.Context) *HealthResponse {
	total, err := s.repo.Count(ctx)
	if err != nil {
		telemetry.RecordError(ctx, err)
		total = 0
	}

	return &HealthResponse{
		Status:            "SERVING",
		Version:           s.version,
		UptimeSeconds:     int64(time.Since(startTime).Seconds()),
		TotalEventsStored: total,
	}
}

func entryToRepo(e *AuditEntry) *repository.AuditEntry {
	entry := &repository.AuditEntry{
		ID:           e.ID,
		Service:      e.Service,
		Method:       e.Method,
		RequestID:    e.RequestID,
		Action:       e.Action,
		Outcome:      e.Outcome,
		UserID:       e.UserID,
		Username:     e.Username,
		UserRole:     e.UserRole,
		ClientIP:     e.ClientIP,
		UserAgent:    e.UserAgent,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		ResourceName: e.ResourceName,
		DurationMs:   e.DurationMs,
		ErrorCode:    e.ErrorCode,
		ErrorMessage: e.ErrorMessage,
		Metadata:     e.Metadata,
	}

	if !e.Timestamp.IsZero() {
		entry.Timestamp = e.Timestamp
	} else {
		entry.Timestamp = time.Now()
	}

	if e.ChangesBefore != "" || e.ChangesAfter != "" {
		entry.ChangesBefore = []byte(e.ChangesBefore)
		entry.ChangesAfter = []byte(e.ChangesAfter)
		entry.ChangedFields = e.ChangedFields
	}

	return entry
}

func entryToWire(e *repository.AuditEntry) *AuditEntry {
	return &AuditEntry{
		ID:            e.ID,
		Timestamp:     e.Timestamp,
		Service:       e.Service,
		Method:        e.Method,
		RequestID:     e.RequestID,
		Action:        e.Action,
		Outcome:       e.Outcome,
		UserID:        e.UserID,
		Username:      e.Username,
		UserRole:      e.UserRole,
		ClientIP:      e.ClientIP,
		UserAgent:     e.UserAgent,
		ResourceType:  e.ResourceType,
		ResourceID:    e.ResourceID,
		ResourceName:  e.ResourceName,
		DurationMs:    e.DurationMs,
		ErrorCode:     e.ErrorCode,
		ErrorMessage:  e.ErrorMessage,
		ChangesBefore: string(e.ChangesBefore),
		ChangesAfter:  string(e.ChangesAfter),
		ChangedFields: e.ChangedFields,
		Metadata:      e.Metadata,
	}
}

func entriesToWire(entries []*repository.AuditEntry) []*AuditEntry {
	out := make([]*AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToWire(e))
	}
	return out
}

func filterToRepo(f *AuditFilter) *repository.AuditFilter {
	if f == nil {
		return nil
	}

	filter := &repository.AuditFilter{
		Services:     f.Services,
		Methods:      f.Methods,
		Actions:      f.Actions,
		Outcomes:     f.Outcomes,
		UserID:       f.UserID,
		ResourceType: f.ResourceType,
		ResourceID:   f.ResourceID,
		ClientIP:     f.ClientIP,
		SearchQuery:  f.SearchQuery,
	}

	if f.TimeRange != nil {
		filter.TimeRange = &repository.TimeRange{
			Start: time.Unix(f.TimeRange.StartUnix, 0),
			End:   time.Unix(f.TimeRange.EndUnix, 0),
		}
	}

	return filter
}

func paginationToOpts(p *Pagination, sortDesc bool) *repository.ListOptions {
	opts := &repository.ListOptions{Limit: 50, Offset: 0, SortOrder: "timestamp_desc"}

	if p != nil {
		if p.PageSize > 0 {
			opts.Limit = p.PageSize
		}
		if p.Page > 0 {
			opts.Offset = (p.Page - 1) * opts.Limit
		}
	}

	if !sortDesc {
		opts.SortOrder = "timestamp_asc"
	}

	return opts
}

func buildPagination(opts *repository.ListOptions, total int64) *PaginationResult {
	pageSize := opts.Limit
	currentPage := opts.Offset/opts.Limit + 1
	totalPages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))

	return &PaginationResult{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     int64(opts.Offset+opts.Limit) < total,
		HasPrevious: opts.Offset > 0,
	}
}
