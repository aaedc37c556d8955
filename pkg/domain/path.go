package domain

import "fmt"

// Agent is a single path-finding request: travel from source to target,
// departing no earlier than Departure. Identity is the agent's index in
// its owning AgentSet, not a field on the struct.
type Agent struct {
	Source    int
	Target    int
	Departure float64
}

// AgentSet holds the agents of one MAPF configuration and enforces the
// data model's identity invariants: no two agents may share a source,
// and no two may share a target.
type AgentSet struct {
	agents []Agent
}

// NewAgentSet builds an AgentSet, validating duplicate sources/targets
// and non-negative departures up front — per the data model, a
// duplicated source or target is fatal before any MILP is built.
func NewAgentSet(agents []Agent) (*AgentSet, error) {
	sources := make(map[int]int, len(agents))
	targets := make(map[int]int, len(agents))

	for i, a := range agents {
		if a.Departure < 0 {
			return nil, fmt.Errorf("domain: agent %d has negative departure %v", i, a.Departure)
		}
		if prev, dup := sources[a.Source]; dup {
			return nil, fmt.Errorf("domain: agents %d and %d share source vertex %d", prev, i, a.Source)
		}
		if prev, dup := targets[a.Target]; dup {
			return nil, fmt.Errorf("domain: agents %d and %d share target vertex %d", prev, i, a.Target)
		}
		sources[a.Source] = i
		targets[a.Target] = i
	}

	return &AgentSet{agents: append([]Agent(nil), agents...)}, nil
}

// Len returns A, the number of agents.
func (s *AgentSet) Len() int {
	return len(s.agents)
}

// Get returns the agent at index a.
func (s *AgentSet) Get(a int) Agent {
	return s.agents[a]
}

// All returns every agent, in index order.
func (s *AgentSet) All() []Agent {
	return s.agents
}

// ValidateAgainst checks that every agent's source and target vertex
// exists in g. Source or target not in V is a fatal error per the
// connectivity builder's contract.
func (s *AgentSet) ValidateAgainst(g *Graph) error {
	for i, a := range s.agents {
		if !g.HasVertex(a.Source) {
			return fmt.Errorf("domain: agent %d source vertex %d not in graph", i, a.Source)
		}
		if !g.HasVertex(a.Target) {
			return fmt.Errorf("domain: agent %d target vertex %d not in graph", i, a.Target)
		}
	}
	return nil
}

// TimedVertex is one stop of a solved agent path: vertex v, arrival
// time t.
type TimedVertex struct {
	Vertex int
	Time   float64
}

// TimedEdge is one traversal of a solved agent path: edge (u,v),
// entered at time t.
type TimedEdge struct {
	From int
	To   int
	Time float64
}

// AgentPath is the reconstructed route of a single agent, extracted
// from the MILP's 1-valued x/y/t variables by the result parser.
type AgentPath struct {
	Agent    int
	Vertices []TimedVertex
	Edges    []TimedEdge
	Cost     float64
}

// VertexSequence returns the bare vertex sequence of the path, ignoring
// timing — the simple-path shape the solution invariant requires.
func (p *AgentPath) VertexSequence() []int {
	seq := make([]int, len(p.Vertices))
	for i, tv := range p.Vertices {
		seq[i] = tv.Vertex
	}
	return seq
}

// ArrivalAt returns the time the agent reaches target, i.e. the time of
// the path's last timed vertex.
func (p *AgentPath) ArrivalAt() float64 {
	if len(p.Vertices) == 0 {
		return 0
	}
	return p.Vertices[len(p.Vertices)-1].Time
}
