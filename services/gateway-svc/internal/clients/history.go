package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// HistoryClient calls history-svc's JSON routes.
type HistoryClient struct {
	hc *client.Client
}

// NewHistoryClient builds a client bound to endpoint.
func NewHistoryClient(endpoint config.ServiceEndpoint) *HistoryClient {
	return &HistoryClient{hc: client.New(clientConfig(endpoint))}
}

// SaveCalculation forwards a raw save-calculation request.
func (c *HistoryClient) SaveCalculation(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/calculations", req)
}

// GetCalculation forwards a raw get-calculation request.
func (c *HistoryClient) GetCalculation(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/calculations/get", req)
}

// DeleteCalculation forwards a raw delete-calculation request.
func (c *HistoryClient) DeleteCalculation(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/calculations/delete", req)
}

// ListCalculations forwards a raw paginated-list request.
func (c *HistoryClient) ListCalculations(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/calculations/list", req)
}

// SearchCalculations forwards a raw search request.
func (c *HistoryClient) SearchCalculations(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/calculations/search", req)
}

// GetStatistics forwards a raw statistics request.
func (c *HistoryClient) GetStatistics(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/statistics", req)
}
