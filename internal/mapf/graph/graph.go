// Package graph is Component A of the MAPF-MILP engine: it takes raw
// vertex/edge/agent input and turns it into a validated domain.Graph and
// domain.AgentSet that the rest of internal/mapf builds constraints against.
package graph

import (
	"fmt"

	"mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
)

// EdgeSpec describes one input edge before canonicalization.
type EdgeSpec struct {
	From          int
	To            int
	Bidirectional bool
}

// AgentSpec describes one input agent before validation.
type AgentSpec struct {
	Source    int
	Target    int
	Departure float64
}

// Build constructs a domain.Graph over 1..n from edges, canonicalizing
// any Bidirectional entry into both (u,v) and (v,u) directed arcs per
// the data model's undirected-graph rule.
func Build(n int, edges []EdgeSpec) (*domain.Graph, error) {
	if n < 1 {
		return nil, apperror.New(apperror.CodeInvalidVertex, "graph must have at least one vertex")
	}

	g := domain.NewGraph(n)
	for _, e := range edges {
		var err error
		if e.Bidirectional {
			err = g.AddUndirectedEdge(e.From, e.To)
		} else {
			err = g.AddEdge(e.From, e.To)
		}
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidVertex, fmt.Sprintf("edge (%d,%d)", e.From, e.To))
		}
	}
	return g, nil
}

// BuildAgents constructs a domain.AgentSet from specs, validating the
// data model's invariants: no duplicated source or target across
// agents, non-negative departures, and every source/target present in
// g. All of this runs before a single MILP variable is created.
func BuildAgents(g *domain.Graph, specs []AgentSpec) (*domain.AgentSet, error) {
	agents := make([]domain.Agent, len(specs))
	for i, s := range specs {
		agents[i] = domain.Agent{Source: s.Source, Target: s.Target, Departure: s.Departure}
	}

	set, err := domain.NewAgentSet(agents)
	if err != nil {
		return nil, classifyAgentError(err)
	}
	if err := set.ValidateAgainst(g); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidVertex, "agent references vertex outside graph")
	}
	return set, nil
}

// classifyAgentError maps the domain package's plain errors onto the
// platform's typed error-code taxonomy so API responses and metrics can
// distinguish "duplicate source" from "duplicate target" from
// "negative departure" without string-matching.
func classifyAgentError(err error) error {
	msg := err.Error()
	switch {
	case containsAny(msg, "share source vertex"):
		return apperror.Wrap(err, apperror.CodeDuplicateAgentSource, "duplicate agent source")
	case containsAny(msg, "share target vertex"):
		return apperror.Wrap(err, apperror.CodeDuplicateAgentTarget, "duplicate agent target")
	case containsAny(msg, "negative departure"):
		return apperror.Wrap(err, apperror.CodeNegativeDeparture, "negative agent departure")
	default:
		return err
	}
}

func containsAny(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
