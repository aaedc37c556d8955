package build

import (
	"fmt"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
	"mapfnet/pkg/domain"
)

// ConflictContinuousStatic installs Component F: the full pairwise
// static conflict disjunctions (vertex, edge, and — when enabled —
// swap) for every ordered agent pair i<j. This is the "all pairs up
// front" variant; the dynamic-conflict loop (Component I) instead
// installs these lazily, one pair at a time, as conflicts are found.
func ConflictContinuousStatic(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, bigM float64) error {
	g := cfg.Graph
	n := cfg.Agents.Len()

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := installVertexConflicts(model, vars, g, i, j, bigM); err != nil {
				return err
			}
			if err := installEdgeConflicts(model, vars, cfg, i, j, bigM); err != nil {
				return err
			}
		}
	}
	return nil
}

func installVertexConflicts(model *milp.Model, vars *mapf.VarRegistry, g *domain.Graph, i, j int, bigM float64) error {
	for v := 1; v <= g.VertexCount(); v++ {
		out := g.Out(v)
		if len(out) == 0 {
			continue
		}
		delta := vars.DeltaV(i, j, v)
		tvI := vars.TV(i, v, bigM)
		tvJ := vars.TV(j, v, bigM)

		for _, w := range out {
			teJ := vars.TE(j, v, w, bigM)
			// t_v[i,v] >= t_e[j,(v,w)] - M*delta
			exprI := milp.NewExpr(
				milp.Term{Var: tvI, Coef: 1},
				milp.Term{Var: teJ, Coef: -1},
				milp.Term{Var: delta, Coef: bigM},
			)
			model.AddConstraint(fmt.Sprintf("vconflict_i[%d,%d,%d,(%d,%d)]", i, j, v, v, w), exprI, milp.GE, 0)

			teI := vars.TE(i, v, w, bigM)
			// t_v[j,v] >= t_e[i,(v,w)] - M*(1-delta)
			exprJ := milp.NewExpr(
				milp.Term{Var: tvJ, Coef: 1},
				milp.Term{Var: teI, Coef: -1},
				milp.Term{Var: delta, Coef: -bigM},
			)
			model.AddConstraint(fmt.Sprintf("vconflict_j[%d,%d,%d,(%d,%d)]", i, j, v, v, w), exprJ, milp.GE, -bigM)
		}
	}
	return nil
}

func installEdgeConflicts(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, i, j int, bigM float64) error {
	g := cfg.Graph
	for _, e := range g.Edges() {
		u, v := e.From, e.To
		delta := vars.DeltaE(i, j, u, v)
		teI := vars.TE(i, u, v, bigM)
		teJ := vars.TE(j, u, v, bigM)
		tvJ := vars.TV(j, v, bigM)
		tvI := vars.TV(i, v, bigM)

		// t_e[i,(u,v)] >= t_v[j,v] - M*delta
		exprI := milp.NewExpr(
			milp.Term{Var: teI, Coef: 1},
			milp.Term{Var: tvJ, Coef: -1},
			milp.Term{Var: delta, Coef: bigM},
		)
		model.AddConstraint(fmt.Sprintf("econflict_i[%d,%d,(%d,%d)]", i, j, u, v), exprI, milp.GE, 0)

		// t_e[j,(u,v)] >= t_v[i,v] - M*(1-delta)
		exprJ := milp.NewExpr(
			milp.Term{Var: teJ, Coef: 1},
			milp.Term{Var: tvI, Coef: -1},
			milp.Term{Var: delta, Coef: -bigM},
		)
		model.AddConstraint(fmt.Sprintf("econflict_j[%d,%d,(%d,%d)]", i, j, u, v), exprJ, milp.GE, -bigM)

		if cfg.SwapConstraint && g.HasReverseEdge(u, v) {
			deltaSw := vars.DeltaSwap(i, j, u, v)
			teIrev := vars.TE(i, u, v, bigM)
			tvJu := vars.TV(j, u, bigM)
			// t_e[i,(u,v)] >= t_v[j,u] - M*deltaSw
			exprSwI := milp.NewExpr(
				milp.Term{Var: teIrev, Coef: 1},
				milp.Term{Var: tvJu, Coef: -1},
				milp.Term{Var: deltaSw, Coef: bigM},
			)
			model.AddConstraint(fmt.Sprintf("swap_i[%d,%d,(%d,%d)]", i, j, u, v), exprSwI, milp.GE, 0)

			teJrev := vars.TE(j, v, u, bigM)
			// t_e[j,(v,u)] >= t_v[i,v] - M*(1-deltaSw)
			exprSwJ := milp.NewExpr(
				milp.Term{Var: teJrev, Coef: 1},
				milp.Term{Var: tvI, Coef: -1},
				milp.Term{Var: deltaSw, Coef: -bigM},
			)
			model.AddConstraint(fmt.Sprintf("swap_j[%d,%d,(%d,%d)]", i, j, u, v), exprSwJ, milp.GE, -bigM)
		}
	}
	return nil
}
