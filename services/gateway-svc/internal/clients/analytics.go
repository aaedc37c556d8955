package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// AnalyticsClient calls analytics-svc's JSON routes.
type AnalyticsClient struct {
	hc *client.Client
}

// NewAnalyticsClient builds a client bound to endpoint.
func NewAnalyticsClient(endpoint config.ServiceEndpoint) *AnalyticsClient {
	return &AnalyticsClient{hc: client.New(clientConfig(endpoint))}
}

// CalculateCost forwards a raw cost-calculation request.
func (c *AnalyticsClient) CalculateCost(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/analytics/cost", req)
}

// FindBottlenecks forwards a raw bottleneck-detection request.
func (c *AnalyticsClient) FindBottlenecks(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/analytics/bottlenecks", req)
}

// AnalyzeFlow forwards a raw full-analysis request.
func (c *AnalyticsClient) AnalyzeFlow(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/analytics/flow", req)
}

// CompareScenarios forwards a raw scenario-comparison request.
func (c *AnalyticsClient) CompareScenarios(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/analytics/compare", req)
}
