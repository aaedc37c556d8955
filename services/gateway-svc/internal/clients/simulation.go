package clients

import (
	"context"
	"encoding/json"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
)

// SimulationClient calls simulation-svc's JSON routes.
type SimulationClient struct {
	hc *client.Client
}

// NewSimulationClient builds a client bound to endpoint.
func NewSimulationClient(endpoint config.ServiceEndpoint) *SimulationClient {
	return &SimulationClient{hc: client.New(clientConfig(endpoint))}
}

// RunWhatIf forwards a raw what-if scenario request.
func (c *SimulationClient) RunWhatIf(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulation/whatif", req)
}

// RunMonteCarlo forwards a raw Monte Carlo sweep request.
func (c *SimulationClient) RunMonteCarlo(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulation/montecarlo", req)
}

// AnalyzeSensitivity forwards a raw parameter-sensitivity request.
func (c *SimulationClient) AnalyzeSensitivity(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulation/sensitivity", req)
}

// AnalyzeResilience forwards a raw N-1 resilience request.
func (c *SimulationClient) AnalyzeResilience(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulation/resilience", req)
}

// RunPlayback forwards a raw time-step playback request.
func (c *SimulationClient) RunPlayback(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulation/playback", req)
}

// GetSimulation forwards a raw persisted-run lookup request.
func (c *SimulationClient) GetSimulation(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulations/get", req)
}

// DeleteSimulation forwards a raw persisted-run delete request.
func (c *SimulationClient) DeleteSimulation(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulations/delete", req)
}

// ListSimulations forwards a raw persisted-run list request.
func (c *SimulationClient) ListSimulations(ctx context.Context, req json.RawMessage) (json.RawMessage, error) {
	return postRaw(ctx, c.hc, "/v1/simulations/list", req)
}
