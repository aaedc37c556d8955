// Package mapf is the MAPF-MILP constraint-generation engine: it turns
// a graph, an agent set, and cost/timing tensors into a milp.Model,
// solves it (once, or across the dynamic-conflict loop's repeated
// solves), and parses the result back into per-agent timed paths.
package mapf

import (
	"fmt"
	"math"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
)

// VertexVisitPolicy controls the discrete-time builder's dwell
// coupling, per spec.md §4.G.
type VertexVisitPolicy int

const (
	VertexVisitAuto VertexVisitPolicy = iota
	VertexVisitYes
	VertexVisitNo
)

// Config is the configuration record every MAPF solve is built from:
// constructed once per problem, then consumed by exactly one of the
// three builder pipelines (continuous, continuous-dynamic, discrete).
type Config struct {
	Graph *domain.Graph
	Agents *domain.AgentSet

	VertexCost     *domain.VertexTensor
	EdgeCost       *domain.EdgeTensor
	VertexWaitTime *domain.VertexTensor
	EdgeWaitTime   *domain.EdgeTensor

	// Integer forces x/y and the disjunction pointers to be true
	// binaries rather than relaxed into [0,1] continuous variables.
	Integer bool
	// SwapConstraint enables the swap-conflict disjunction for edges
	// whose reverse also exists in the graph.
	SwapConstraint bool
	// BigM upper-bounds any feasible arrival time. Zero means
	// "compute the default": A * |E| * max(edge_wait) + max(departure).
	BigM float64
	// TimeoutSeconds records the caller's time limit (negative means
	// unlimited). The entry points in this package and the dynamic loop
	// do not read it; a solve is bounded only by the ctx passed in.
	TimeoutSeconds float64

	// HeuristicConflict records whether the caller asked for heuristic
	// (slack-comparison) conflict cuts. The dynamic-conflict loop does
	// not read it: every detected conflict gets the binary disjunction.
	HeuristicConflict bool
	// Epsilon is the dynamic loop's numerical safety gap; zero means
	// "compute the default": 1e-4 * min(non-zero edge wait time).
	Epsilon float64
	// MaxDynamicIterations caps the dynamic-conflict loop's
	// solve/detect/mutate cycles.
	MaxDynamicIterations int

	// TimeDuration is the discrete-time builder's horizon T; zero
	// means "default to |E|".
	TimeDuration int
	// VertexBinding switches the discrete builder into the strict
	// "vertex-binding" coupling mode instead of "dwell-allowed".
	VertexBinding bool
	// VertexVisit controls the dwell-payment policy in dwell-allowed
	// mode.
	VertexVisit VertexVisitPolicy
}

// Validate runs the input-validation error taxonomy spec.md §7
// requires before any model construction: mismatched source/target
// counts are already enforced by domain.AgentSet; this checks the
// remaining invariants (non-negative tensors, sane BigM/epsilon).
func (c *Config) Validate() error {
	if c.Graph == nil {
		return apperror.New(apperror.CodeInvalidVertex, "mapf: graph is required")
	}
	if c.Agents == nil || c.Agents.Len() == 0 {
		return apperror.New(apperror.CodeInvalidVertex, "mapf: at least one agent is required")
	}
	if err := c.Agents.ValidateAgainst(c.Graph); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidVertex, "agent references vertex outside graph")
	}

	if v, a, bad := c.VertexCost.ValidateNonNegative(); bad {
		return apperror.New(apperror.CodeTensorRankMismatch, fmt.Sprintf("mapf: negative vertex_cost at vertex %d (agent %d)", v, a))
	}
	if v, a, bad := c.VertexWaitTime.ValidateNonNegative(); bad {
		return apperror.New(apperror.CodeTensorRankMismatch, fmt.Sprintf("mapf: negative vertex_wait_time at vertex %d (agent %d)", v, a))
	}
	if k, a, bad := c.EdgeCost.ValidateNonNegative(); bad {
		return apperror.New(apperror.CodeTensorRankMismatch, fmt.Sprintf("mapf: negative edge_cost at edge %s (agent %d)", k, a))
	}
	if k, a, bad := c.EdgeWaitTime.ValidateNonNegative(); bad {
		return apperror.New(apperror.CodeTensorRankMismatch, fmt.Sprintf("mapf: negative edge_wait_time at edge %s (agent %d)", k, a))
	}

	if c.BigM < 0 {
		return apperror.New(apperror.CodeBigMTooSmall, "mapf: big_M must not be negative")
	}
	return nil
}

// ResolveBigM returns the configured BigM, or the default formula
// A * |E| * max(edge_wait) + max(departure) when unset. Undersizing M
// silently prunes feasible solutions; the design contract requires a
// conservative, documented value, so the default over-estimates rather
// than guesses low.
func (c *Config) ResolveBigM() float64 {
	if c.BigM > 0 {
		return c.BigM
	}

	maxWait := 0.0
	for _, e := range c.Graph.Edges() {
		if w := c.EdgeWaitTime.Get(0, e.From, e.To); w > maxWait {
			maxWait = w
		}
		for a := 0; a < c.Agents.Len(); a++ {
			if w := c.EdgeWaitTime.Get(a, e.From, e.To); w > maxWait {
				maxWait = w
			}
		}
	}

	maxDeparture := 0.0
	for _, agent := range c.Agents.All() {
		if agent.Departure > maxDeparture {
			maxDeparture = agent.Departure
		}
	}

	a := float64(c.Agents.Len())
	e := float64(c.Graph.EdgeCount())
	return a*e*maxWait + maxDeparture
}

// ResolveEpsilon returns the configured Epsilon, or the dynamic loop's
// default: 1e-4 * min(non-zero edge wait time) across the graph, or
// 1e-4 when no edge has a non-zero wait time. Vertex wait times are
// not considered.
func (c *Config) ResolveEpsilon() float64 {
	if c.Epsilon > 0 {
		return c.Epsilon
	}

	minWait := math.Inf(1)
	for _, e := range c.Graph.Edges() {
		for a := 0; a < c.Agents.Len(); a++ {
			w := c.EdgeWaitTime.Get(a, e.From, e.To)
			if w > 0 && w < minWait {
				minWait = w
			}
		}
	}
	if math.IsInf(minWait, 1) {
		return 1e-4
	}
	return 1e-4 * minWait
}

// ResolveTimeDuration returns TimeDuration, or |E| when unset.
func (c *Config) ResolveTimeDuration() int {
	if c.TimeDuration > 0 {
		return c.TimeDuration
	}
	return c.Graph.EdgeCount()
}
