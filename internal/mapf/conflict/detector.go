// Package conflict implements Component B: given per-agent timed
// vertex and edge sequences, it reports the first vertex, edge, or
// swap conflict it finds — or the "no conflict" sentinel.
package conflict

import (
	"sort"

	"mapfnet/pkg/domain"
)

// Kind distinguishes a vertex conflict from an edge conflict.
type Kind int

const (
	KindVertex Kind = iota
	KindEdge
)

// Conflict is the detector's structured result record. Vertex is valid
// only when Kind == KindVertex; Edge (and Swap) only when Kind == KindEdge.
type Conflict struct {
	Kind   Kind
	Vertex int
	Edge   domain.EdgeKey
	Agent1 int
	Agent2 int
	Swap   bool
}

// eventKind distinguishes entering a resource from leaving it.
type eventKind int

const (
	eventEnter eventKind = iota
	eventLeave
)

type event struct {
	kind  eventKind
	agent int
	time  float64
	// inverted records, for edge events only, whether this agent
	// traversed the edge in its non-canonical direction — used to spot
	// swaps when two agents' events interleave on the same edge pair.
	inverted bool
}

// DetectVertexConflict builds an event list per vertex across every
// agent's timed vertex sequence and reports the first pair of agents
// whose dwell intervals overlap. eps is subtracted from every leave
// time so zero-length dwells never look like conflicts.
func DetectVertexConflict(paths map[int]*domain.AgentPath, eps float64) (*Conflict, bool) {
	events := make(map[int][]event)

	for a, p := range paths {
		vs := p.Vertices
		for i, tv := range vs {
			enter := tv.Time
			leave := enter
			if i+1 < len(vs) {
				leave = vs[i+1].Time
			} else {
				leave = enter
			}
			if leave-eps <= enter {
				continue
			}
			events[tv.Vertex] = append(events[tv.Vertex], event{kind: eventEnter, agent: a, time: enter})
			events[tv.Vertex] = append(events[tv.Vertex], event{kind: eventLeave, agent: a, time: leave - eps})
		}
	}

	vertices := sortedKeys(events)
	for _, v := range vertices {
		evs := events[v]
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].time < evs[j].time })
		for i := 0; i+1 < len(evs); i++ {
			if evs[i].kind == evs[i+1].kind {
				return &Conflict{Kind: KindVertex, Vertex: v, Agent1: evs[i].agent, Agent2: evs[i+1].agent}, true
			}
		}
	}
	return nil, false
}

// DetectEdgeConflict mirrors DetectVertexConflict over edge occupancy
// intervals. When detectSwap is true, edges are canonicalized to
// ascending endpoints and an "inverted" flag records traversal
// direction; two agents occupying the canonical edge with disagreeing
// inverted flags are reported as a swap.
func DetectEdgeConflict(paths map[int]*domain.AgentPath, eps float64, detectSwap bool) (*Conflict, bool) {
	events := make(map[domain.EdgeKey][]event)

	for a, p := range paths {
		for _, te := range p.Edges {
			key := domain.EdgeKey{From: te.From, To: te.To}
			inverted := false
			if detectSwap && te.From > te.To {
				key = domain.EdgeKey{From: te.To, To: te.From}
				inverted = true
			}
			enter := te.Time
			leave := enter + arrivalOffset(p, te)
			if leave-eps <= enter {
				continue
			}
			events[key] = append(events[key], event{kind: eventEnter, agent: a, time: enter, inverted: inverted})
			events[key] = append(events[key], event{kind: eventLeave, agent: a, time: leave - eps, inverted: inverted})
		}
	}

	keys := sortedEdgeKeys(events)
	for _, key := range keys {
		evs := events[key]
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].time < evs[j].time })
		for i := 0; i+1 < len(evs); i++ {
			if evs[i].kind != evs[i+1].kind {
				continue
			}
			swap := detectSwap && evs[i].inverted != evs[i+1].inverted
			return &Conflict{
				Kind:   KindEdge,
				Edge:   key,
				Agent1: evs[i].agent,
				Agent2: evs[i+1].agent,
				Swap:   swap,
			}, true
		}
	}
	return nil, false
}

// arrivalOffset finds the duration of the edge occupancy starting at
// te by locating the vertex arrival that follows it in the agent's
// path; falls back to zero when the path doesn't carry that vertex
// entry (e.g. a partially-parsed discrete-mode path).
func arrivalOffset(p *domain.AgentPath, te domain.TimedEdge) float64 {
	for _, tv := range p.Vertices {
		if tv.Vertex == te.To && tv.Time >= te.Time {
			return tv.Time - te.Time
		}
	}
	return 0
}

func sortedKeys(m map[int][]event) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedEdgeKeys(m map[domain.EdgeKey][]event) []domain.EdgeKey {
	out := make([]domain.EdgeKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
