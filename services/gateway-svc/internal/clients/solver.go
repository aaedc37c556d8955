package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// SolverClient calls solver-svc's JSON route.
type SolverClient struct {
	hc *client.Client
}

// NewSolverClient builds a client bound to endpoint.
func NewSolverClient(endpoint config.ServiceEndpoint) *SolverClient {
	return &SolverClient{hc: client.New(clientConfig(endpoint))}
}

// Solve forwards a raw solve request body to solver-svc and returns its raw
// response body unchanged, so the gateway stays agnostic to the exact shape
// of the MILP request/response types solver-svc evolves on its own.
func (c *SolverClient) Solve(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/solve", req)
}
