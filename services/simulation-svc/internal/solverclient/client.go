// Package solverclient calls solver-svc's /v1/solve route, mirroring its
// wire DTOs locally since Go's internal/ visibility rule keeps
// solver-svc/internal/service unreachable from a sibling service.
package solverclient

import (
	"context"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
	"mapfnet/pkg/domain"
)

// GraphDTO is the wire representation of a MAPF graph: vertices are
// positional (1..VertexCount), so only the edge list needs spelling out.
type GraphDTO struct {
	VertexCount int       `json:"vertex_count"`
	Edges       []EdgeDTO `json:"edges"`
}

// EdgeDTO is one directed arc of a GraphDTO.
type EdgeDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AgentDTO is one wire-level path-finding request.
type AgentDTO struct {
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	Departure float64 `json:"departure"`
}

// SolveRequest mirrors solver-svc's SolveRequest wire shape.
type SolveRequest struct {
	Mode   string     `json:"mode"`
	Graph  GraphDTO   `json:"graph"`
	Agents []AgentDTO `json:"agents"`

	VertexCost     map[int]float64    `json:"vertex_cost,omitempty"`
	EdgeCost       map[string]float64 `json:"edge_cost,omitempty"`
	VertexWaitTime map[int]float64    `json:"vertex_wait_time,omitempty"`
	EdgeWaitTime   map[string]float64 `json:"edge_wait_time,omitempty"`

	Integer              bool    `json:"integer,omitempty"`
	SwapConstraint       bool    `json:"swap_constraint,omitempty"`
	BigM                 float64 `json:"big_m,omitempty"`
	TimeoutSeconds       float64 `json:"timeout_seconds,omitempty"`
	Epsilon              float64 `json:"epsilon,omitempty"`
	MaxDynamicIterations int     `json:"max_dynamic_iterations,omitempty"`
	TimeDuration         int     `json:"time_duration,omitempty"`
}

// SolveResponse mirrors solver-svc's SolveResponse wire shape.
type SolveResponse struct {
	Paths     map[int]*domain.AgentPath `json:"paths"`
	Objective float64                   `json:"objective"`
	Stats     domain.SolveStatistics    `json:"stats"`
}

// Client calls solver-svc over JSON-HTTP.
type Client struct {
	hc *client.Client
}

// New builds a Client bound to endpoint.
func New(endpoint config.ServiceEndpoint) *Client {
	scheme := "http"
	if endpoint.TLS {
		scheme = "https"
	}
	cfg := client.DefaultConfig(scheme + "://" + endpoint.Address())
	if endpoint.Timeout > 0 {
		cfg.Timeout = endpoint.Timeout
	}
	if endpoint.MaxRetries > 0 {
		cfg.MaxRetries = endpoint.MaxRetries
	}
	return &Client{hc: client.New(cfg)}
}

// Solve re-solves req against solver-svc.
func (c *Client) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	var resp SolveResponse
	if err := c.hc.PostJSON(ctx, "/v1/solve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloneRequest deep-copies req so callers can perturb the copy without
// mutating the caller's baseline.
func CloneRequest(req *SolveRequest) *SolveRequest {
	clone := *req
	clone.Graph.Edges = append([]EdgeDTO(nil), req.Graph.Edges...)
	clone.Agents = append([]AgentDTO(nil), req.Agents...)
	clone.VertexCost = cloneIntMap(req.VertexCost)
	clone.EdgeCost = cloneStringMap(req.EdgeCost)
	clone.VertexWaitTime = cloneIntMap(req.VertexWaitTime)
	clone.EdgeWaitTime = cloneStringMap(req.EdgeWaitTime)
	return &clone
}

func cloneIntMap(m map[int]float64) map[int]float64 {
	if m == nil {
		return nil
	}
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
