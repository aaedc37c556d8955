package domain

// VertexTensor models vertex_cost[v] / vertex_wait_time[v] or their
// per-agent variants vertex_cost[a, v] / vertex_wait_time[a, v]. Get
// implements the data model's "right-align get": callers always pass
// (a, v); when the tensor only has a shared rank-1 array, the leading
// agent index is discarded.
type VertexTensor struct {
	perAgent bool
	shared   map[int]float64
	byAgent  map[int]map[int]float64
}

// NewSharedVertexTensor builds a rank-1 tensor shared across all agents.
func NewSharedVertexTensor(values map[int]float64) *VertexTensor {
	return &VertexTensor{shared: values}
}

// NewPerAgentVertexTensor builds a rank-2 tensor, one array per agent.
func NewPerAgentVertexTensor(values map[int]map[int]float64) *VertexTensor {
	return &VertexTensor{perAgent: true, byAgent: values}
}

// Get returns the value for agent a at vertex v, right-aligning against
// whichever rank the tensor was built with. Missing entries default to
// zero, matching an unspecified-cost vertex.
func (t *VertexTensor) Get(a, v int) float64 {
	if t == nil {
		return 0
	}
	if t.perAgent {
		if row, ok := t.byAgent[a]; ok {
			return row[v]
		}
		return 0
	}
	return t.shared[v]
}

// EdgeTensor models edge_cost[u, v] / edge_wait_time[u, v] or their
// per-agent variants edge_cost[a, u, v] / edge_wait_time[a, u, v].
type EdgeTensor struct {
	perAgent bool
	shared   map[EdgeKey]float64
	byAgent  map[int]map[EdgeKey]float64
}

// NewSharedEdgeTensor builds a rank-2 tensor shared across all agents.
func NewSharedEdgeTensor(values map[EdgeKey]float64) *EdgeTensor {
	return &EdgeTensor{shared: values}
}

// NewPerAgentEdgeTensor builds a rank-3 tensor, one array per agent.
func NewPerAgentEdgeTensor(values map[int]map[EdgeKey]float64) *EdgeTensor {
	return &EdgeTensor{perAgent: true, byAgent: values}
}

// Get returns the value for agent a on edge (u,v), right-aligning
// against whichever rank the tensor was built with.
func (t *EdgeTensor) Get(a, u, v int) float64 {
	if t == nil {
		return 0
	}
	key := EdgeKey{From: u, To: v}
	if t.perAgent {
		if row, ok := t.byAgent[a]; ok {
			return row[key]
		}
		return 0
	}
	return t.shared[key]
}

// ValidateNonNegative reports the first negative entry found in a
// VertexTensor, or bad=false if every stored value is >= 0 — per the
// data model's invariant that all cost/time values are non-negative.
func (t *VertexTensor) ValidateNonNegative() (v int, agent int, bad bool) {
	if t == nil {
		return 0, 0, false
	}
	if t.perAgent {
		for a, row := range t.byAgent {
			for vertex, val := range row {
				if val < 0 {
					return vertex, a, true
				}
			}
		}
		return 0, 0, false
	}
	for vertex, val := range t.shared {
		if val < 0 {
			return vertex, -1, true
		}
	}
	return 0, 0, false
}

// ValidateNonNegative reports the first negative entry found in an
// EdgeTensor, or bad=false if every value is >= 0.
func (t *EdgeTensor) ValidateNonNegative() (key EdgeKey, agent int, bad bool) {
	if t == nil {
		return EdgeKey{}, 0, false
	}
	if t.perAgent {
		for a, row := range t.byAgent {
			for k, val := range row {
				if val < 0 {
					return k, a, true
				}
			}
		}
		return EdgeKey{}, 0, false
	}
	for k, val := range t.shared {
		if val < 0 {
			return k, -1, true
		}
	}
	return EdgeKey{}, 0, false
}

// SolveStatistics summarizes one MILP solve: how large the model was,
// how long it took, and — for the dynamic-conflict loop — how many
// cutting-plane iterations it needed.
type SolveStatistics struct {
	VertexCount       int
	EdgeCount         int
	AgentCount        int
	VariableCount     int
	ConstraintCount   int
	ObjectiveValue    float64
	DynamicIterations int
	ConflictCutsAdded int
	SolveDurationMS   int64
}
