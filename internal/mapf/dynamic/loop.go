// Package dynamic implements Component I, the signature dynamic-conflict
// cutting-plane loop: build connectivity, solve cost-only, and — only
// when agents actually interfere — switch to timing-aware constraints
// and lazily cut conflicts one pair at a time until none remain.
package dynamic

import (
	"context"

	"mapfnet/internal/mapf"
	"mapfnet/internal/mapf/build"
	"mapfnet/internal/mapf/conflict"
	"mapfnet/internal/mapf/result"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// Result bundles the loop's output: parsed paths and the achieved
// objective value.
type Result struct {
	Paths     map[int]*domain.AgentPath
	Objective float64
	Stats     domain.SolveStatistics
}

// Run executes the loop described in spec.md §4.I against cfg, using
// solver to resolve each (re-)solve.
func Run(ctx context.Context, cfg *mapf.Config, solver milp.Solver) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := milp.NewModel()
	vars := mapf.NewVarRegistry(model)

	if err := build.Connectivity(model, vars, cfg); err != nil {
		return nil, err
	}
	if err := build.Objective(model, vars, cfg, false, 0); err != nil {
		return nil, err
	}

	sol, err := solver.Solve(ctx, model, nil)
	if err != nil {
		return nil, err
	}
	if sol.Status != milp.StatusOptimal {
		return nil, mapf.SolveError(sol.Status)
	}

	bigM := cfg.ResolveBigM()
	eps := cfg.ResolveEpsilon()

	if !anySharedVertexOrEdge(vars, cfg, sol) {
		paths := parallelShortestPaths(cfg)
		return &Result{Paths: paths, Objective: sol.Objective, Stats: statsOf(cfg, model, sol, 0)}, nil
	}

	if err := build.Timing(model, vars, cfg, bigM); err != nil {
		return nil, err
	}
	if err := build.Objective(model, vars, cfg, true, bigM); err != nil {
		return nil, err
	}

	var warm *milp.WarmStart
	cutsAdded := 0

	for iter := 0; ; iter++ {
		if cfg.MaxDynamicIterations > 0 && iter >= cfg.MaxDynamicIterations {
			return nil, mapf.IterationBudgetExceeded(iter)
		}

		sol, err = solver.Solve(ctx, model, warm)
		if err != nil {
			return nil, err
		}
		if sol.Status != milp.StatusOptimal {
			return nil, mapf.SolveError(sol.Status)
		}

		paths := result.ParseContinuous(sol, vars, cfg, bigM)

		if vc, ok := conflict.DetectVertexConflict(paths, eps); ok {
			installVertexOrdering(model, vars, cfg, sol, vc, eps, bigM)
			warm = warmStartFrom(sol)
			cutsAdded++
			continue
		}
		if ec, ok := conflict.DetectEdgeConflict(paths, eps, cfg.SwapConstraint); ok {
			installEdgeOrdering(model, vars, cfg, sol, ec, eps, bigM)
			warm = warmStartFrom(sol)
			cutsAdded++
			continue
		}

		return &Result{Paths: paths, Objective: sol.Objective, Stats: statsOf(cfg, model, sol, cutsAdded)}, nil
	}
}

func statsOf(cfg *mapf.Config, model *milp.Model, sol *milp.Solution, cuts int) domain.SolveStatistics {
	return domain.SolveStatistics{
		VertexCount:       cfg.Graph.VertexCount(),
		EdgeCount:         cfg.Graph.EdgeCount(),
		AgentCount:        cfg.Agents.Len(),
		VariableCount:     len(model.Vars),
		ConstraintCount:   len(model.Constraints),
		ObjectiveValue:    sol.Objective,
		DynamicIterations: cuts,
		ConflictCutsAdded: cuts,
	}
}

func warmStartFrom(sol *milp.Solution) *milp.WarmStart {
	values := make(map[*milp.Var]float64, len(sol.Values))
	for v, val := range sol.Values {
		values[v] = val
	}
	return &milp.WarmStart{Values: values}
}

// anySharedVertexOrEdge reports whether the cost-only solution has any
// two agents selecting the same vertex or edge at all — the loop skips
// timing entirely when agents are already vertex/edge-disjoint.
func anySharedVertexOrEdge(vars *mapf.VarRegistry, cfg *mapf.Config, sol *milp.Solution) bool {
	vertexOwners := make(map[int]int)
	for a := range cfg.Agents.All() {
		for v, yv := range vars.AllY(a) {
			if sol.Get(yv) <= 0.5 {
				continue
			}
			if _, taken := vertexOwners[v]; taken {
				return true
			}
			vertexOwners[v] = a
		}
	}

	edgeOwners := make(map[domain.EdgeKey]int)
	for a := range cfg.Agents.All() {
		for e, xv := range vars.AllX(a) {
			if sol.Get(xv) <= 0.5 {
				continue
			}
			if _, taken := edgeOwners[e]; taken {
				return true
			}
			edgeOwners[e] = a
		}
	}
	return false
}

// parallelShortestPaths computes each agent's path independently via
// BFS (unit-hop — agents don't conflict, so any shortest route works)
// and stamps arrival times from departure plus the configured wait
// parameters.
func parallelShortestPaths(cfg *mapf.Config) map[int]*domain.AgentPath {
	paths := make(map[int]*domain.AgentPath, cfg.Agents.Len())

	for a, agent := range cfg.Agents.All() {
		bfs := domain.BFS(cfg.Graph, agent.Source)
		path := &domain.AgentPath{Agent: a}

		if !bfs.Visited[agent.Target] {
			paths[a] = path
			continue
		}

		seq := []int{agent.Target}
		cur := agent.Target
		for cur != agent.Source {
			cur = bfs.Parent[cur]
			seq = append([]int{cur}, seq...)
		}

		t := agent.Departure
		for i, v := range seq {
			path.Vertices = append(path.Vertices, domain.TimedVertex{Vertex: v, Time: t})
			if i+1 < len(seq) {
				w := seq[i+1]
				t += cfg.VertexWaitTime.Get(a, v)
				path.Edges = append(path.Edges, domain.TimedEdge{From: v, To: w, Time: t})
				t += cfg.EdgeWaitTime.Get(a, v, w)
			}
		}
		path.Cost = t
		paths[a] = path
	}
	return paths
}

// installVertexOrdering installs the lazy vertex-ordering disjunction
// from spec.md §4.I for a detected conflict at vc.Vertex between
// vc.Agent1 and vc.Agent2.
func installVertexOrdering(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, sol *milp.Solution, vc *conflict.Conflict, eps, bigM float64) {
	i, j, v := vc.Agent1, vc.Agent2, vc.Vertex
	g := cfg.Graph

	ei, okI := selectedOutbound(vars, g, sol, i, v, cfg.Integer)
	ej, okJ := selectedOutbound(vars, g, sol, j, v, cfg.Integer)

	tvI := vars.TV(i, v, bigM)
	tvJ := vars.TV(j, v, bigM)

	switch {
	case okI && okJ:
		delta := vars.DeltaV(minAgent(i, j), maxAgent(i, j), v)
		teJ := vars.TE(j, ej[0], ej[1], bigM)
		teI := vars.TE(i, ei[0], ei[1], bigM)

		exprI := milp.NewExpr(
			milp.Term{Var: tvI, Coef: 1},
			milp.Term{Var: teJ, Coef: -1},
			milp.Term{Var: delta, Coef: bigM},
		)
		model.AddConstraint("dyn_vorder_i", exprI, milp.GE, eps)

		exprJ := milp.NewExpr(
			milp.Term{Var: tvJ, Coef: 1},
			milp.Term{Var: teI, Coef: -1},
			milp.Term{Var: delta, Coef: -bigM},
		)
		model.AddConstraint("dyn_vorder_j", exprJ, milp.GE, eps-bigM)

	case !okI && okJ:
		teJ := vars.TE(j, ej[0], ej[1], bigM)
		expr := milp.NewExpr(milp.Term{Var: tvI, Coef: 1}, milp.Term{Var: teJ, Coef: -1})
		model.AddConstraint("dyn_vorder_i_unconditional", expr, milp.GE, eps)

	case okI && !okJ:
		teI := vars.TE(i, ei[0], ei[1], bigM)
		expr := milp.NewExpr(milp.Term{Var: tvJ, Coef: 1}, milp.Term{Var: teI, Coef: -1})
		model.AddConstraint("dyn_vorder_j_unconditional", expr, milp.GE, eps)
	}
}

// installEdgeOrdering mirrors installVertexOrdering for edge (and
// swap) conflicts.
func installEdgeOrdering(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, sol *milp.Solution, ec *conflict.Conflict, eps, bigM float64) {
	i, j := ec.Agent1, ec.Agent2
	u, v := ec.Edge.From, ec.Edge.To

	teI := vars.TE(i, u, v, bigM)
	teJ := vars.TE(j, u, v, bigM)
	if ec.Swap {
		teJ = vars.TE(j, v, u, bigM)
	}

	tvJ := vars.TV(j, v, bigM)
	tvI := vars.TV(i, u, bigM)
	if ec.Swap {
		tvI = vars.TV(i, v, bigM)
	}

	delta := vars.DeltaE(minAgent(i, j), maxAgent(i, j), u, v)
	if ec.Swap {
		delta = vars.DeltaSwap(minAgent(i, j), maxAgent(i, j), u, v)
	}

	exprI := milp.NewExpr(
		milp.Term{Var: teI, Coef: 1},
		milp.Term{Var: tvJ, Coef: -1},
		milp.Term{Var: delta, Coef: bigM},
	)
	model.AddConstraint("dyn_eorder_i", exprI, milp.GE, eps)

	exprJ := milp.NewExpr(
		milp.Term{Var: teJ, Coef: 1},
		milp.Term{Var: tvI, Coef: -1},
		milp.Term{Var: delta, Coef: -bigM},
	)
	model.AddConstraint("dyn_eorder_j", exprJ, milp.GE, eps-bigM)
}

// selectedOutbound returns the (v, w) edge agent a actually selected
// out of v in the current solution, per x[a,(v,w)] >= 0.5.
func selectedOutbound(vars *mapf.VarRegistry, g *domain.Graph, sol *milp.Solution, a, v int, integer bool) ([2]int, bool) {
	for _, w := range g.Out(v) {
		x, ok := vars.XExists(a, v, w)
		if !ok {
			x = vars.X(a, v, w, integer)
		}
		if sol.Get(x) >= 0.5 {
			return [2]int{v, w}, true
		}
	}
	return [2]int{}, false
}

func minAgent(i, j int) int {
	if i < j {
		return i
	}
	return j
}

func maxAgent(i, j int) int {
	if i < j {
		return j
	}
	return i
}
