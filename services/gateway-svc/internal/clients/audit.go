package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// AuditClient calls audit-svc's JSON routes.
type AuditClient struct {
	hc *client.Client
}

// NewAuditClient builds a client bound to endpoint.
func NewAuditClient(endpoint config.ServiceEndpoint) *AuditClient {
	return &AuditClient{hc: client.New(clientConfig(endpoint))}
}

// LogEvent forwards a single raw audit entry.
func (c *AuditClient) LogEvent(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/events", req)
}

// LogEventBatch forwards a batch of raw audit entries.
func (c *AuditClient) LogEventBatch(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/events/batch", req)
}

// GetAuditLogs forwards a raw filtered/paginated log query.
func (c *AuditClient) GetAuditLogs(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/logs", req)
}

// GetResourceHistory forwards a raw resource-history query.
func (c *AuditClient) GetResourceHistory(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/resources/history", req)
}

// GetUserActivity forwards a raw user-activity query.
func (c *AuditClient) GetUserActivity(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/users/activity", req)
}

// GetAuditStats forwards a raw audit-statistics query.
func (c *AuditClient) GetAuditStats(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/stats", req)
}
