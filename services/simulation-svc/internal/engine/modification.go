// Package engine implements simulation-svc's scenario analyses — what-if
// perturbation, Monte Carlo uncertainty, parameter sensitivity, and N-1
// resilience — each by re-solving a perturbed mapfnet.SolveRequest through
// solver-svc and comparing the result against a baseline.
package engine

import (
	"fmt"

	"mapfnet/services/simulation-svc/internal/solverclient"
)

// Target names the perturbable numeric parameter of a SolveRequest a
// Modification acts on.
type Target string

const (
	TargetVertexCost     Target = "vertex_cost"
	TargetEdgeCost       Target = "edge_cost"
	TargetVertexWaitTime Target = "vertex_wait_time"
	TargetEdgeWaitTime   Target = "edge_wait_time"
)

// ChangeKind says how a Modification's Value combines with the current
// value of its Target.
type ChangeKind string

const (
	ChangeAbsolute ChangeKind = "absolute" // replace the value outright
	ChangeRelative ChangeKind = "relative" // multiply the current value
	ChangeDelta    ChangeKind = "delta"    // add to the current value
)

// ModificationType says what kind of edit a Modification performs.
type ModificationType string

const (
	ModUpdate        ModificationType = "update"         // perturb a cost/wait-time entry
	ModRemoveEdge    ModificationType = "remove_edge"     // drop one edge entirely
	ModDisableVertex ModificationType = "disable_vertex"  // drop every edge touching a vertex
)

// Modification is one edit applied to a SolveRequest to build a scenario.
type Modification struct {
	Type ModificationType `json:"type"`

	Target Target     `json:"target,omitempty"`
	Kind   ChangeKind `json:"kind,omitempty"`
	Value  float64    `json:"value,omitempty"`

	VertexID int `json:"vertexId,omitempty"`
	EdgeFrom int `json:"edgeFrom,omitempty"`
	EdgeTo   int `json:"edgeTo,omitempty"`
}

// edgeKey formats (from, to) the way solver-svc's wire EdgeCost/EdgeWaitTime
// maps key their entries.
func edgeKey(from, to int) string {
	return fmt.Sprintf("%d:%d", from, to)
}

// ApplyModifications returns a deep copy of req with every modification in
// mods applied in order.
func ApplyModifications(req *solverclient.SolveRequest, mods []Modification) *solverclient.SolveRequest {
	out := solverclient.CloneRequest(req)
	for _, m := range mods {
		switch m.Type {
		case ModUpdate:
			applyUpdate(out, m)
		case ModRemoveEdge:
			removeEdge(out, m.EdgeFrom, m.EdgeTo)
		case ModDisableVertex:
			disableVertex(out, m.VertexID)
		}
	}
	return out
}

func applyUpdate(req *solverclient.SolveRequest, m Modification) {
	switch m.Target {
	case TargetVertexCost:
		if req.VertexCost == nil {
			req.VertexCost = make(map[int]float64)
		}
		req.VertexCost[m.VertexID] = combine(req.VertexCost[m.VertexID], m)
	case TargetVertexWaitTime:
		if req.VertexWaitTime == nil {
			req.VertexWaitTime = make(map[int]float64)
		}
		req.VertexWaitTime[m.VertexID] = combine(req.VertexWaitTime[m.VertexID], m)
	case TargetEdgeCost:
		if req.EdgeCost == nil {
			req.EdgeCost = make(map[string]float64)
		}
		key := edgeKey(m.EdgeFrom, m.EdgeTo)
		req.EdgeCost[key] = combine(req.EdgeCost[key], m)
	case TargetEdgeWaitTime:
		if req.EdgeWaitTime == nil {
			req.EdgeWaitTime = make(map[string]float64)
		}
		key := edgeKey(m.EdgeFrom, m.EdgeTo)
		req.EdgeWaitTime[key] = combine(req.EdgeWaitTime[key], m)
	}
}

func combine(current float64, m Modification) float64 {
	switch m.Kind {
	case ChangeAbsolute:
		return m.Value
	case ChangeRelative:
		return current * m.Value
	case ChangeDelta:
		return current + m.Value
	default:
		return current
	}
}

func removeEdge(req *solverclient.SolveRequest, from, to int) {
	edges := make([]solverclient.EdgeDTO, 0, len(req.Graph.Edges))
	for _, e := range req.Graph.Edges {
		if e.From != from || e.To != to {
			edges = append(edges, e)
		}
	}
	req.Graph.Edges = edges
	delete(req.EdgeCost, edgeKey(from, to))
	delete(req.EdgeWaitTime, edgeKey(from, to))
}

func disableVertex(req *solverclient.SolveRequest, vertex int) {
	edges := make([]solverclient.EdgeDTO, 0, len(req.Graph.Edges))
	for _, e := range req.Graph.Edges {
		if e.From == vertex || e.To == vertex {
			delete(req.EdgeCost, edgeKey(e.From, e.To))
			delete(req.EdgeWaitTime, edgeKey(e.From, e.To))
			continue
		}
		edges = append(edges, e)
	}
	req.Graph.Edges = edges
	delete(req.VertexCost, vertex)
	delete(req.VertexWaitTime, vertex)
}
