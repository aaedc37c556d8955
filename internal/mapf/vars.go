package mapf

import (
	"fmt"

	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// edgeVarKey, vertexVarKey, pairVertexKey and pairEdgeKey are the
// registry's lookup keys — plain
// value types so they work as map keys without pointer aliasing
// surprises.
type edgeVarKey struct {
	Agent int
	Edge  domain.EdgeKey
}

type vertexVarKey struct {
	Agent  int
	Vertex int
}

type pairVertexKey struct {
	A1, A2 int
	Vertex int
}

type pairEdgeKey struct {
	A1, A2 int
	Edge   domain.EdgeKey
}

// VarRegistry owns every decision variable installed into a model and
// lets builders look them up by (agent, vertex)/(agent, edge)/(pair,
// vertex-or-edge) instead of re-deriving milp.Var pointers by hand.
// Component D installs x/y; Component E installs t_v/t_e; Component F
// installs the disjunction pointers — all through this shared registry
// so the objective and result-parser builders can find them later.
type VarRegistry struct {
	model *milp.Model

	x map[edgeVarKey]*milp.Var   // x[a, (u,v)]
	y map[vertexVarKey]*milp.Var // y[a, v]

	tv map[vertexVarKey]*milp.Var // t_v[a, v] (continuous mode)
	te map[edgeVarKey]*milp.Var   // t_e[a, (u,v)] (continuous mode)

	deltaV  map[pairVertexKey]*milp.Var // δ^V[a1<a2, v]
	deltaE  map[pairEdgeKey]*milp.Var   // δ^E[a1<a2, (u,v)]
	deltaSw map[pairEdgeKey]*milp.Var   // δ^sw[a1<a2, (u,v)]

	// xt/yt are the discrete-time builder's step-indexed variables,
	// keyed by (agent, vertex-or-edge, step) flattened into a string
	// because the data model adds a third index dimension only in
	// discrete mode.
	xt map[string]*milp.Var
	yt map[string]*milp.Var
}

// NewVarRegistry creates a registry bound to model — every Var it
// creates is installed into model immediately.
func NewVarRegistry(model *milp.Model) *VarRegistry {
	return &VarRegistry{
		model:   model,
		x:       make(map[edgeVarKey]*milp.Var),
		y:       make(map[vertexVarKey]*milp.Var),
		tv:      make(map[vertexVarKey]*milp.Var),
		te:      make(map[edgeVarKey]*milp.Var),
		deltaV:  make(map[pairVertexKey]*milp.Var),
		deltaE:  make(map[pairEdgeKey]*milp.Var),
		deltaSw: make(map[pairEdgeKey]*milp.Var),
		xt:      make(map[string]*milp.Var),
		yt:      make(map[string]*milp.Var),
	}
}

func (r *VarRegistry) selectionKind(integer bool) milp.VarKind {
	if integer {
		return milp.Binary
	}
	return milp.Continuous
}

// X returns x[a,(u,v)], creating it on first use.
func (r *VarRegistry) X(a, u, v int, integer bool) *milp.Var {
	key := edgeVarKey{Agent: a, Edge: domain.EdgeKey{From: u, To: v}}
	if vr, ok := r.x[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("x[%d,(%d,%d)]", a, u, v), r.selectionKind(integer), 0, 1)
	r.x[key] = vr
	return vr
}

// XExists reports whether x[a,(u,v)] has been created.
func (r *VarRegistry) XExists(a, u, v int) (*milp.Var, bool) {
	vr, ok := r.x[edgeVarKey{Agent: a, Edge: domain.EdgeKey{From: u, To: v}}]
	return vr, ok
}

// Y returns y[a,v], creating it on first use.
func (r *VarRegistry) Y(a, v int, integer bool) *milp.Var {
	key := vertexVarKey{Agent: a, Vertex: v}
	if vr, ok := r.y[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("y[%d,%d]", a, v), r.selectionKind(integer), 0, 1)
	r.y[key] = vr
	return vr
}

// TV returns t_v[a,v], creating it on first use.
func (r *VarRegistry) TV(a, v int, bigM float64) *milp.Var {
	key := vertexVarKey{Agent: a, Vertex: v}
	if vr, ok := r.tv[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("t_v[%d,%d]", a, v), milp.Continuous, 0, bigM)
	r.tv[key] = vr
	return vr
}

// TE returns t_e[a,(u,v)], creating it on first use.
func (r *VarRegistry) TE(a, u, v int, bigM float64) *milp.Var {
	key := edgeVarKey{Agent: a, Edge: domain.EdgeKey{From: u, To: v}}
	if vr, ok := r.te[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("t_e[%d,(%d,%d)]", a, u, v), milp.Continuous, 0, bigM)
	r.te[key] = vr
	return vr
}

// DeltaV returns δ^V[a1<a2, v], creating it on first use. Callers pass
// agents in lexicographic order (a1 < a2) per spec.md's tie-break rule.
func (r *VarRegistry) DeltaV(a1, a2, v int) *milp.Var {
	key := pairVertexKey{A1: a1, A2: a2, Vertex: v}
	if vr, ok := r.deltaV[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("deltaV[%d,%d,%d]", a1, a2, v), milp.Binary, 0, 1)
	r.deltaV[key] = vr
	return vr
}

// DeltaE returns δ^E[a1<a2, (u,v)], creating it on first use.
func (r *VarRegistry) DeltaE(a1, a2, u, v int) *milp.Var {
	key := pairEdgeKey{A1: a1, A2: a2, Edge: domain.EdgeKey{From: u, To: v}}
	if vr, ok := r.deltaE[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("deltaE[%d,%d,(%d,%d)]", a1, a2, u, v), milp.Binary, 0, 1)
	r.deltaE[key] = vr
	return vr
}

// DeltaSwap returns δ^sw[a1<a2, (u,v)], creating it on first use.
func (r *VarRegistry) DeltaSwap(a1, a2, u, v int) *milp.Var {
	key := pairEdgeKey{A1: a1, A2: a2, Edge: domain.EdgeKey{From: u, To: v}}
	if vr, ok := r.deltaSw[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("deltaSw[%d,%d,(%d,%d)]", a1, a2, u, v), milp.Binary, 0, 1)
	r.deltaSw[key] = vr
	return vr
}

// stepKey flattens the discrete builder's third index dimension.
func stepKey(a, node1, node2, t int) string {
	return fmt.Sprintf("%d|%d|%d|%d", a, node1, node2, t)
}

// Xt returns x[a,(u,v),t], creating it on first use.
func (r *VarRegistry) Xt(a, u, v, t int, integer bool) *milp.Var {
	key := stepKey(a, u, v, t)
	if vr, ok := r.xt[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("x[%d,(%d,%d),%d]", a, u, v, t), r.selectionKind(integer), 0, 1)
	r.xt[key] = vr
	return vr
}

// Yt returns y[a,v,t], creating it on first use.
func (r *VarRegistry) Yt(a, v, t int, integer bool) *milp.Var {
	key := stepKey(a, v, -1, t)
	if vr, ok := r.yt[key]; ok {
		return vr
	}
	vr := r.model.AddVar(fmt.Sprintf("y[%d,%d,%d]", a, v, t), r.selectionKind(integer), 0, 1)
	r.yt[key] = vr
	return vr
}

// AllX returns every x[a,*] variable created for agent a, keyed by
// edge — used by the result parsers to read back the solved path and
// by the dynamic loop's shared-edge check.
func (r *VarRegistry) AllX(a int) map[domain.EdgeKey]*milp.Var {
	result := make(map[domain.EdgeKey]*milp.Var)
	for key, vr := range r.x {
		if key.Agent == a {
			result[key.Edge] = vr
		}
	}
	return result
}

// AllY returns every y[a,*] variable created for agent a, keyed by
// vertex.
func (r *VarRegistry) AllY(a int) map[int]*milp.Var {
	result := make(map[int]*milp.Var)
	for key, vr := range r.y {
		if key.Agent == a {
			result[key.Vertex] = vr
		}
	}
	return result
}
