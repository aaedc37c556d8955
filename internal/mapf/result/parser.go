// Package result implements Component J: it reads a solved milp.Solution
// back through a *mapf.VarRegistry into per-agent domain.AgentPath
// values.
package result

import (
	"sort"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// ParseContinuous extracts, for every agent, the set of vertices with
// y[a,v] > 0.5 paired with t_v[a,v] (sorted ascending by time) and the
// set of edges with x[a,e] > 0.5 paired with t_e[a,e].
func ParseContinuous(sol *milp.Solution, vars *mapf.VarRegistry, cfg *mapf.Config, bigM float64) map[int]*domain.AgentPath {
	paths := make(map[int]*domain.AgentPath, cfg.Agents.Len())

	for a := range cfg.Agents.All() {
		path := &domain.AgentPath{Agent: a}

		for v, yv := range vars.AllY(a) {
			if sol.Get(yv) <= 0.5 {
				continue
			}
			tv := vars.TV(a, v, bigM)
			path.Vertices = append(path.Vertices, domain.TimedVertex{Vertex: v, Time: sol.Get(tv)})
		}
		sort.Slice(path.Vertices, func(i, j int) bool { return path.Vertices[i].Time < path.Vertices[j].Time })

		for e, xv := range vars.AllX(a) {
			if sol.Get(xv) <= 0.5 {
				continue
			}
			te := vars.TE(a, e.From, e.To, bigM)
			path.Edges = append(path.Edges, domain.TimedEdge{From: e.From, To: e.To, Time: sol.Get(te)})
		}
		sort.Slice(path.Edges, func(i, j int) bool { return path.Edges[i].Time < path.Edges[j].Time })

		if n := len(path.Vertices); n > 0 {
			path.Cost = path.Vertices[n-1].Time
		}
		paths[a] = path
	}
	return paths
}

// ParseDiscrete mirrors ParseContinuous for the step-indexed builder:
// (t, v) and (t, e) pairs are already pre-indexed by step, so the
// sequence is recovered by scanning every step in ascending order
// instead of reading back a continuous t_v/t_e variable.
func ParseDiscrete(sol *milp.Solution, vars *mapf.VarRegistry, cfg *mapf.Config) map[int]*domain.AgentPath {
	paths := make(map[int]*domain.AgentPath, cfg.Agents.Len())
	T := cfg.ResolveTimeDuration()
	g := cfg.Graph

	for a := range cfg.Agents.All() {
		path := &domain.AgentPath{Agent: a}

		for t := 0; t < T; t++ {
			for v := 1; v <= g.VertexCount(); v++ {
				if yv, ok := lookupYt(vars, a, v, t, cfg.Integer); ok && sol.Get(yv) > 0.5 {
					path.Vertices = append(path.Vertices, domain.TimedVertex{Vertex: v, Time: float64(t)})
				}
			}
			for _, e := range g.Edges() {
				if xv, ok := lookupXt(vars, a, e.From, e.To, t, cfg.Integer); ok && sol.Get(xv) > 0.5 {
					path.Edges = append(path.Edges, domain.TimedEdge{From: e.From, To: e.To, Time: float64(t)})
				}
			}
		}

		if n := len(path.Vertices); n > 0 {
			path.Cost = path.Vertices[n-1].Time
		}
		paths[a] = path
	}
	return paths
}

// lookupYt/lookupXt re-derive the step variable through the registry's
// ordinary creation path — harmless since Yt/Xt are idempotent, and
// the discrete builder has already created every in-horizon variable
// during model construction.
func lookupYt(vars *mapf.VarRegistry, a, v, t int, integer bool) (*milp.Var, bool) {
	return vars.Yt(a, v, t, integer), true
}

func lookupXt(vars *mapf.VarRegistry, a, u, v, t int, integer bool) (*milp.Var, bool) {
	return vars.Xt(a, u, v, t, integer), true
}
