package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// ValidationClient calls validation-svc's JSON routes.
type ValidationClient struct {
	hc *client.Client
}

// NewValidationClient builds a client bound to endpoint.
func NewValidationClient(endpoint config.ServiceEndpoint) *ValidationClient {
	return &ValidationClient{hc: client.New(clientConfig(endpoint))}
}

// ValidateGraph forwards a raw graph-validation request to validation-svc.
func (c *ValidationClient) ValidateGraph(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/validate/graph", req)
}

// ValidateSolution forwards a raw solution-validation request.
func (c *ValidationClient) ValidateSolution(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/validate/solution", req)
}

// ValidateMode forwards a raw mode-compatibility check request.
func (c *ValidationClient) ValidateMode(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/validate/mode", req)
}

// ValidateAll forwards a raw combined graph+mode validation request.
func (c *ValidationClient) ValidateAll(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/validate/all", req)
}
