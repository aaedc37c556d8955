// services/report-svc/internal/service/report_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mapfnet/services/report-svc/internal/generator"
	"mapfnet/services/report-svc/internal/repository"
)

// MockRepository mocks repository.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, params *repository.CreateParams) (*repository.Report, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Report), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*repository.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Report), args.Error(1)
}

func (m *MockRepository) GetContent(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, params *repository.ListParams) (*repository.ListResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListResult), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) UpdateTags(ctx context.Context, id uuid.UUID, tags []string, replace bool) ([]string, error) {
	args := m.Called(ctx, id, tags, replace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) Stats(ctx context.Context, userID string) (*repository.Stats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Stats), args.Error(1)
}

func (m *MockRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewReportService(t *testing.T) {
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	require.NotNil(t, svc)
	assert.Equal(t, "1.0.0", svc.version)
	assert.Len(t, svc.generators, 6)
}

func TestReportService_GenerateSolveReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateSolveReportRequest{
		Format: generator.FormatJSON,
		Options: &ReportOptions{
			Title: "Test Report",
		},
		Graph: &generator.GraphSummary{VertexCount: 5, EdgeCount: 6, AgentCount: 2},
		Solve: &generator.SolveReportData{
			Objective: 100.0,
			Makespan:  10.0,
		},
	}

	resp, err := svc.GenerateSolveReport(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Content.Data)
	assert.Equal(t, generator.ReportTypeSolve, resp.Metadata.Type)
	assert.Equal(t, generator.FormatJSON, resp.Metadata.Format)
}

func TestReportService_GenerateSolveReport_UnsupportedFormat(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateSolveReportRequest{
		Format: generator.ReportFormat("unknown"),
	}

	resp, err := svc.GenerateSolveReport(ctx, req)

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.ErrorMessage, "unsupported format")
}

func TestReportService_GenerateSolveReport_WithSaveToStorage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0", SaveToStorage: true}, repo)

	repo.On("Create", ctx, mock.AnythingOfType("*repository.CreateParams")).
		Return(&repository.Report{ID: uuid.New()}, nil)

	req := &GenerateSolveReportRequest{
		Format: generator.FormatJSON,
		Solve:  &generator.SolveReportData{Objective: 100.0},
	}

	resp, err := svc.GenerateSolveReport(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestReportService_GenerateAnalyticsReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateAnalyticsReportRequest{
		Format: generator.FormatMarkdown,
		AnalyticsData: &generator.AnalyticsReportData{
			TotalWaitCost: 1500.0,
		},
	}

	resp, err := svc.GenerateAnalyticsReport(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, generator.ReportTypeAnalytics, resp.Metadata.Type)
}

func TestReportService_GenerateSimulationReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateSimulationReportRequest{
		Format: generator.FormatCSV,
		SimulationData: &generator.SimulationReportData{
			ScenarioType:      "monte-carlo",
			BaselineObjective: 100.0,
			MonteCarlo: &generator.MonteCarloData{
				Iterations:   1000,
				MeanMakespan: 21.5,
			},
		},
	}

	resp, err := svc.GenerateSimulationReport(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, generator.ReportTypeSimulation, resp.Metadata.Type)
}

func TestReportService_GenerateSummaryReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateSummaryReportRequest{
		Format: generator.FormatHTML,
		Solve:  &generator.SolveReportData{Objective: 100.0, Makespan: 5.0},
		AnalyticsData: &generator.AnalyticsReportData{
			TotalWaitCost: 500.0,
		},
	}

	resp, err := svc.GenerateSummaryReport(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, generator.ReportTypeSummary, resp.Metadata.Type)
}

func TestReportService_GenerateComparisonReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateComparisonReportRequest{
		Format: generator.FormatPDF,
		Items: []*generator.ComparisonItemData{
			{Name: "Baseline", Objective: 100.0},
			{Name: "Scenario A", Objective: 90.0},
		},
	}

	resp, err := svc.GenerateComparisonReport(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, generator.ReportTypeComparison, resp.Metadata.Type)
}

func TestReportService_GenerateHistoryReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	req := &GenerateHistoryReportRequest{
		Format: generator.FormatMarkdown,
		Entries: []*generator.ComparisonItemData{
			{Name: "Solve 1", Objective: 100.0},
		},
	}

	resp, err := svc.GenerateHistoryReport(ctx, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, generator.ReportTypeHistory, resp.Metadata.Type)

	// History reports are not persisted, regardless of save settings.
	repo.AssertNotCalled(t, "Create")
}

func TestReportService_GetReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	report := &repository.Report{
		ID:         id,
		Title:      "Test Report",
		ReportType: generator.ReportTypeSolve,
		Format:     generator.FormatPDF,
		Content:    []byte("content"),
	}

	repo.On("Get", ctx, id).Return(report, nil)

	resp, err := svc.GetReport(ctx, &GetReportRequest{ReportID: id.String()})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, id.String(), resp.Metadata.ReportID)
	repo.AssertExpectations(t)
}

func TestReportService_GetReport_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("Get", ctx, id).Return(nil, repository.ErrNotFound)

	resp, err := svc.GetReport(ctx, &GetReportRequest{ReportID: id.String()})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "report not found", resp.ErrorMessage)
}

func TestReportService_GetReport_InvalidID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	resp, err := svc.GetReport(ctx, &GetReportRequest{ReportID: "not-a-uuid"})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid report ID", resp.ErrorMessage)
}

func TestReportService_GetReport_NoRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	resp, err := svc.GetReport(ctx, &GetReportRequest{ReportID: uuid.New().String()})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "storage not configured", resp.ErrorMessage)
}

func TestReportService_GetReportInfo_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	report := &repository.Report{ID: id, Title: "Info Report"}
	repo.On("Get", ctx, id).Return(report, nil)

	resp, err := svc.GetReportInfo(ctx, &GetReportInfoRequest{ReportID: id.String()})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Content)
	repo.AssertExpectations(t)
}

func TestReportService_GetReportInfo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("Get", ctx, id).Return(nil, repository.ErrNotFound)

	resp, err := svc.GetReportInfo(ctx, &GetReportInfoRequest{ReportID: id.String()})

	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestReportService_ListReports_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	result := &repository.ListResult{
		Reports: []*repository.Report{
			{ID: uuid.New(), Title: "Report 1"},
			{ID: uuid.New(), Title: "Report 2"},
		},
		TotalCount: 2,
		HasMore:    false,
	}

	repo.On("List", ctx, mock.AnythingOfType("*repository.ListParams")).Return(result, nil)

	resp, err := svc.ListReports(ctx, &ListReportsRequest{Limit: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Reports, 2)
	assert.Equal(t, int64(2), resp.TotalCount)
	repo.AssertExpectations(t)
}

func TestReportService_ListReports_WithFilters(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	repo.On("List", ctx, mock.MatchedBy(func(p *repository.ListParams) bool {
		return p.ReportType != nil && *p.ReportType == generator.ReportTypeSolve &&
			p.Format != nil && *p.Format == generator.FormatPDF
	})).Return(&repository.ListResult{}, nil)

	_, err := svc.ListReports(ctx, &ListReportsRequest{
		ReportType: generator.ReportTypeSolve,
		Format:     generator.FormatPDF,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReportService_ListReports_Error(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	repo.On("List", ctx, mock.AnythingOfType("*repository.ListParams")).
		Return(nil, errors.New("db error"))

	_, err := svc.ListReports(ctx, &ListReportsRequest{})

	require.Error(t, err)
}

func TestReportService_ListReports_NoRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	_, err := svc.ListReports(ctx, &ListReportsRequest{})

	require.Error(t, err)
}

func TestReportService_DeleteReport_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("Delete", ctx, id).Return(nil)

	resp, err := svc.DeleteReport(ctx, &DeleteReportRequest{ReportID: id.String()})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestReportService_DeleteReport_HardDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("HardDelete", ctx, id).Return(nil)

	resp, err := svc.DeleteReport(ctx, &DeleteReportRequest{ReportID: id.String(), HardDelete: true})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestReportService_DeleteReport_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("Delete", ctx, id).Return(repository.ErrNotFound)

	resp, err := svc.DeleteReport(ctx, &DeleteReportRequest{ReportID: id.String()})

	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestReportService_DeleteReport_InvalidID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	resp, err := svc.DeleteReport(ctx, &DeleteReportRequest{ReportID: "bad-id"})

	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestReportService_DeleteReport_NoRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	resp, err := svc.DeleteReport(ctx, &DeleteReportRequest{ReportID: uuid.New().String()})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "storage not configured", resp.ErrorMessage)
}

func TestReportService_UpdateReportTags_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("UpdateTags", ctx, id, []string{"new"}, true).Return([]string{"new"}, nil)

	resp, err := svc.UpdateReportTags(ctx, &UpdateReportTagsRequest{
		ReportID: id.String(),
		Tags:     []string{"new"},
		Replace:  true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"new"}, resp.Tags)
	repo.AssertExpectations(t)
}

func TestReportService_UpdateReportTags_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	id := uuid.New()
	repo.On("UpdateTags", ctx, id, []string{"tag"}, false).Return(nil, repository.ErrNotFound)

	resp, err := svc.UpdateReportTags(ctx, &UpdateReportTagsRequest{ReportID: id.String(), Tags: []string{"tag"}})

	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestReportService_UpdateReportTags_InvalidID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	resp, err := svc.UpdateReportTags(ctx, &UpdateReportTagsRequest{ReportID: "bad"})

	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestReportService_UpdateReportTags_NoRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	resp, err := svc.UpdateReportTags(ctx, &UpdateReportTagsRequest{ReportID: uuid.New().String()})

	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestReportService_GetRepositoryStats_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	stats := &repository.Stats{TotalReports: 50, TotalSizeBytes: 1024}
	repo.On("Stats", ctx, "").Return(stats, nil)

	resp, err := svc.GetRepositoryStats(ctx, &GetRepositoryStatsRequest{})

	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.TotalReports)
	repo.AssertExpectations(t)
}

func TestReportService_GetRepositoryStats_WithUserID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	repo.On("Stats", ctx, "user-1").Return(&repository.Stats{TotalReports: 5}, nil)

	_, err := svc.GetRepositoryStats(ctx, &GetRepositoryStatsRequest{UserID: "user-1"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReportService_GetRepositoryStats_NoRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	_, err := svc.GetRepositoryStats(ctx, &GetRepositoryStatsRequest{})

	require.Error(t, err)
}

func TestReportService_GetSupportedFormats(t *testing.T) {
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	resp := svc.GetSupportedFormats(context.Background())

	assert.Len(t, resp.Formats, 6)
	for _, f := range resp.Formats {
		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Extension)
		assert.NotEmpty(t, f.SupportedReportTypes)
	}
}

func TestReportService_Health_Serving(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	repo.On("Ping", ctx).Return(nil)
	repo.On("Stats", ctx, "").Return(&repository.Stats{TotalReports: 10, TotalSizeBytes: 2048}, nil)

	resp := svc.Health(ctx)

	assert.Equal(t, "SERVING", resp.Status)
	assert.Equal(t, "OK", resp.Storage.Status)
	assert.Equal(t, int64(10), resp.Storage.StoredReports)
	repo.AssertExpectations(t)
}

func TestReportService_Health_Degraded(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	repo.On("Ping", ctx).Return(errors.New("connection refused"))

	resp := svc.Health(ctx)

	assert.Equal(t, "DEGRADED", resp.Status)
	assert.Equal(t, "ERROR", resp.Storage.Status)
}

func TestReportService_Health_NoStorage(t *testing.T) {
	ctx := context.Background()
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	resp := svc.Health(ctx)

	assert.Equal(t, "SERVING", resp.Status)
	assert.Equal(t, "NOT_CONFIGURED", resp.Storage.Status)
}

func TestGetExtension(t *testing.T) {
	tests := []struct {
		format   generator.ReportFormat
		expected string
	}{
		{generator.FormatMarkdown, ".md"},
		{generator.FormatCSV, ".csv"},
		{generator.FormatExcel, ".xlsx"},
		{generator.FormatPDF, ".pdf"},
		{generator.FormatHTML, ".html"},
		{generator.FormatJSON, ".json"},
		{generator.ReportFormat("unknown"), ".txt"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.expected, getExtension(tt.format))
		})
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		format   generator.ReportFormat
		expected string
	}{
		{generator.FormatMarkdown, "text/markdown"},
		{generator.FormatCSV, "text/csv"},
		{generator.FormatExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{generator.FormatPDF, "application/pdf"},
		{generator.FormatHTML, "text/html"},
		{generator.FormatJSON, "application/json"},
		{generator.ReportFormat("unknown"), "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.expected, getContentType(tt.format))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Normal Title", "Normal_Title"},
		{"Title/With\\Slashes", "TitleWithSlashes"},
		{"Title-With_Underscore123", "Title-With_Underscore123"},
		{"!!!", "report"},
		{"", "report"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFilename(tt.input))
		})
	}
}

func TestReportService_ReportsCounter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, repo)

	assert.Equal(t, int64(0), svc.reportsGenerated.Load())

	_, _ = svc.GenerateSolveReport(ctx, &GenerateSolveReportRequest{
		Format: generator.FormatJSON,
		Solve:  &generator.SolveReportData{},
	})

	assert.Equal(t, int64(1), svc.reportsGenerated.Load())
}

func TestReportService_ShouldSave(t *testing.T) {
	svcDefault := NewReportService(ServiceConfig{Version: "1.0.0", SaveToStorage: false}, nil)
	svcAlwaysSave := NewReportService(ServiceConfig{Version: "1.0.0", SaveToStorage: true}, nil)

	assert.False(t, svcDefault.shouldSave(nil))
	assert.False(t, svcDefault.shouldSave(&ReportOptions{}))
	assert.True(t, svcDefault.shouldSave(&ReportOptions{SaveToStorage: true}))

	assert.True(t, svcAlwaysSave.shouldSave(nil))
	assert.True(t, svcAlwaysSave.shouldSave(&ReportOptions{}))
}

func TestReportService_BuildMetadata_WithTTL(t *testing.T) {
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	meta := svc.buildMetadata(
		generator.ReportTypeSolve,
		generator.FormatPDF,
		[]byte("content"),
		50*time.Millisecond,
		&ReportOptions{Title: "My Report", TTLSeconds: 3600},
		"calc-1",
		"graph-1",
	)

	assert.Equal(t, "My Report", meta.Title)
	assert.Equal(t, "calc-1", meta.CalculationID)
	assert.Equal(t, "graph-1", meta.GraphID)
	require.NotNil(t, meta.ExpiresAt)
	assert.True(t, meta.ExpiresAt.After(time.Now()))
}

func TestReportService_BuildMetadata_WithoutTTL(t *testing.T) {
	svc := NewReportService(ServiceConfig{Version: "1.0.0"}, nil)

	meta := svc.buildMetadata(
		generator.ReportTypeSolve,
		generator.FormatPDF,
		[]byte("content"),
		time.Millisecond,
		nil,
		"", "",
	)

	assert.Nil(t, meta.ExpiresAt)
	assert.Equal(t, "report", sanitizeFilename(""))
	_ = meta
}
