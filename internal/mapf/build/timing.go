package build

import (
	"fmt"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
)

// Timing installs Component E: the continuous-mode departure anchor
// and the big-M linearization linking t_v and t_e across every edge.
func Timing(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, bigM float64) error {
	g := cfg.Graph

	for a, agent := range cfg.Agents.All() {
		// 1. Departure anchor: t_v[a, source] = departure_a.
		tvSource := vars.TV(a, agent.Source, bigM)
		model.AddConstraint(fmt.Sprintf("departure[%d]", a), milp.NewExpr(milp.Term{Var: tvSource, Coef: 1}), milp.EQ, agent.Departure)

		for v := 1; v <= g.VertexCount(); v++ {
			tv := vars.TV(a, v, bigM)
			y := vars.Y(a, v, cfg.Integer)
			wait := cfg.VertexWaitTime.Get(a, v)

			// 2. Arrival at edge start: t_e[a,(v,w)] >= t_v[a,v] + y[a,v]*(wait+M) - M.
			for _, w := range g.Out(v) {
				te := vars.TE(a, v, w, bigM)
				// te - tv - (wait+M)*y >= -M
				expr := milp.NewExpr(
					milp.Term{Var: te, Coef: 1},
					milp.Term{Var: tv, Coef: -1},
					milp.Term{Var: y, Coef: -(wait + bigM)},
				)
				model.AddConstraint(fmt.Sprintf("edge_start[%d,(%d,%d)]", a, v, w), expr, milp.GE, -bigM)
			}

			// 3. Arrival at edge end: t_v[a,v] >= t_e[a,(u,v)] + x[a,(u,v)]*(travel+M) - M.
			for _, u := range g.In(v) {
				te := vars.TE(a, u, v, bigM)
				x := vars.X(a, u, v, cfg.Integer)
				travel := cfg.EdgeWaitTime.Get(a, u, v)
				expr := milp.NewExpr(
					milp.Term{Var: tv, Coef: 1},
					milp.Term{Var: te, Coef: -1},
					milp.Term{Var: x, Coef: -(travel + bigM)},
				)
				model.AddConstraint(fmt.Sprintf("edge_end[%d,(%d,%d)]", a, u, v), expr, milp.GE, -bigM)
			}
		}
	}

	return nil
}
