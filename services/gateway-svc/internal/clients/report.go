package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// ReportClient calls report-svc's JSON routes.
type ReportClient struct {
	hc *client.Client
}

// NewReportClient builds a client bound to endpoint.
func NewReportClient(endpoint config.ServiceEndpoint) *ReportClient {
	return &ReportClient{hc: client.New(clientConfig(endpoint))}
}

// GenerateSolveReport forwards a raw solve-report request.
func (c *ReportClient) GenerateSolveReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/solve", req)
}

// GenerateAnalyticsReport forwards a raw analytics-report request.
func (c *ReportClient) GenerateAnalyticsReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/analytics", req)
}

// GenerateSimulationReport forwards a raw simulation-report request.
func (c *ReportClient) GenerateSimulationReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/simulation", req)
}

// GenerateSummaryReport forwards a raw summary-report request.
func (c *ReportClient) GenerateSummaryReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/summary", req)
}

// GenerateComparisonReport forwards a raw scenario-comparison report request.
func (c *ReportClient) GenerateComparisonReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/comparison", req)
}

// GenerateHistoryReport forwards a raw calculation-history report request.
func (c *ReportClient) GenerateHistoryReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/history", req)
}

// GetReport forwards a raw get-report-by-id request.
func (c *ReportClient) GetReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/get", req)
}

// GetReportInfo forwards a raw get-report-metadata request.
func (c *ReportClient) GetReportInfo(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/info", req)
}

// ListReports forwards a raw list-reports request.
func (c *ReportClient) ListReports(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/list", req)
}

// DeleteReport forwards a raw delete-report request.
func (c *ReportClient) DeleteReport(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/delete", req)
}

// UpdateReportTags forwards a raw tag-update request.
func (c *ReportClient) UpdateReportTags(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/tags", req)
}

// GetRepositoryStats forwards a raw repository-statistics request.
func (c *ReportClient) GetRepositoryStats(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/stats", req)
}

// GetSupportedFormats forwards a raw supported-formats request.
func (c *ReportClient) GetSupportedFormats(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/reports/formats", req)
}
