package mapf

import (
	"sort"

	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// parseContinuousResult is api.go's in-package mirror of Component J's
// continuous-mode extraction (internal/mapf/result.ParseContinuous):
// kept local to avoid an import cycle, since the result package itself
// depends on this package's VarRegistry/Config types.
func parseContinuousResult(sol *milp.Solution, vars *VarRegistry, cfg *Config, bigM float64) map[int]*domain.AgentPath {
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

// parseDiscreteResult is the step-indexed counterpart.
func parseDiscreteResult(sol *milp.Solution, vars *VarRegistry, cfg *Config) map[int]*domain.AgentPath {
	paths := make(map[int]*domain.AgentPath, cfg.Agents.Len())
	T := cfg.ResolveTimeDuration()
	g := cfg.Graph

	for a := range cfg.Agents.All() {
		path := &domain.AgentPath{Agent: a}

		for t := 0; t < T; t++ {
			for v := 1; v <= g.VertexCount(); v++ {
				yv := vars.Yt(a, v, t, cfg.Integer)
				if sol.Get(yv) > 0.5 {
					path.Vertices = append(path.Vertices, domain.TimedVertex{Vertex: v, Time: float64(t)})
				}
			}
			for _, e := range g.Edges() {
				xv := vars.Xt(a, e.From, e.To, t, cfg.Integer)
				if sol.Get(xv) > 0.5 {
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
