package build

import (
	"fmt"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
)

// Discrete installs Component G: the step-indexed discrete-time
// builder, horizon T = cfg.ResolveTimeDuration(). Supports both the
// default "dwell-allowed" mode and the stricter "vertex-binding" mode,
// plus the per-vertex visit policy (:auto/:yes/:no).
func Discrete(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config) error {
	g := cfg.Graph
	T := cfg.ResolveTimeDuration()

	for a, agent := range cfg.Agents.All() {
		dep := int(agent.Departure)

		// Source leaves eventually.
		sourceExpr := milp.Expr{}
		for t := dep; t < T; t++ {
			for _, w := range g.Out(agent.Source) {
				sourceExpr = sourceExpr.Plus(vars.Xt(a, agent.Source, w, t, cfg.Integer), 1)
			}
			for _, u := range g.In(agent.Source) {
				sourceExpr = sourceExpr.Plus(vars.Xt(a, u, agent.Source, t, cfg.Integer), -1)
			}
		}
		if len(sourceExpr.Terms) > 0 {
			model.AddConstraint(fmt.Sprintf("discrete_src_leave[%d]", a), sourceExpr, milp.EQ, 1)
		}

		// Target reached eventually.
		targetExpr := milp.Expr{}
		for t := dep; t < T; t++ {
			for _, u := range g.In(agent.Target) {
				targetExpr = targetExpr.Plus(vars.Xt(a, u, agent.Target, t, cfg.Integer), 1)
			}
			for _, w := range g.Out(agent.Target) {
				targetExpr = targetExpr.Plus(vars.Xt(a, agent.Target, w, t, cfg.Integer), 1)
			}
		}
		if len(targetExpr.Terms) > 0 {
			model.AddConstraint(fmt.Sprintf("discrete_tgt_reach[%d]", a), targetExpr, milp.EQ, 1)
		}

		for v := 1; v <= g.VertexCount(); v++ {
			visit := resolveVertexVisit(cfg, v)

			for t := dep; t <= T-1; t++ {
				if cfg.VertexBinding {
					installVertexBinding(model, vars, cfg, g, a, v, t)
					continue
				}

				if t <= T-2 {
					installDwellAllowed(model, vars, cfg, g, a, v, t)
				}
				if visit == mapf.VertexVisitYes || (visit == mapf.VertexVisitAuto && cfg.VertexCost.Get(a, v) > 0) {
					installDwellPayment(model, vars, cfg, g, a, v, t)
				}
			}
		}

		// Exclusivity per step.
		for t := dep; t <= T-1; t++ {
			expr := milp.Expr{}
			for v := 1; v <= g.VertexCount(); v++ {
				expr = expr.Plus(vars.Yt(a, v, t, cfg.Integer), 1)
			}
			for _, e := range g.Edges() {
				expr = expr.Plus(vars.Xt(a, e.From, e.To, t, cfg.Integer), 1)
			}
			if cfg.VertexBinding {
				model.AddConstraint(fmt.Sprintf("discrete_exclusive_binding[%d,%d]", a, t), expr, milp.LE, 1)
			} else {
				model.AddConstraint(fmt.Sprintf("discrete_exclusive[%d,%d]", a, t), expr, milp.EQ, 1)
			}
		}
	}

	// Conflict constraints per step.
	T = cfg.ResolveTimeDuration()
	for t := 0; t < T; t++ {
		for v := 1; v <= g.VertexCount(); v++ {
			expr := milp.Expr{}
			for a := 0; a < cfg.Agents.Len(); a++ {
				expr = expr.Plus(vars.Yt(a, v, t, cfg.Integer), 1)
				for _, u := range g.In(v) {
					expr = expr.Plus(vars.Xt(a, u, v, t, cfg.Integer), 1)
				}
			}
			if len(expr.Terms) > 0 {
				model.AddConstraint(fmt.Sprintf("discrete_vconflict[%d,%d]", v, t), expr, milp.LE, 1)
			}
		}
		for _, e := range g.Edges() {
			expr := milp.Expr{}
			for a := 0; a < cfg.Agents.Len(); a++ {
				expr = expr.Plus(vars.Xt(a, e.From, e.To, t, cfg.Integer), 1)
			}
			model.AddConstraint(fmt.Sprintf("discrete_econflict[(%d,%d),%d]", e.From, e.To, t), expr, milp.LE, 1)

			if cfg.SwapConstraint && g.HasReverseEdge(e.From, e.To) {
				swapExpr := milp.Expr{}
				for a := 0; a < cfg.Agents.Len(); a++ {
					swapExpr = swapExpr.Plus(vars.Xt(a, e.From, e.To, t, cfg.Integer), 1)
					swapExpr = swapExpr.Plus(vars.Xt(a, e.To, e.From, t, cfg.Integer), 1)
				}
				model.AddConstraint(fmt.Sprintf("discrete_swap[(%d,%d),%d]", e.From, e.To, t), swapExpr, milp.LE, 1)
			}
		}
	}

	return nil
}

func resolveVertexVisit(cfg *mapf.Config, v int) mapf.VertexVisitPolicy {
	return cfg.VertexVisit
}

// installDwellAllowed installs the default per-step flow balance:
// y[a,v,t] + sum_u x[a,(u,v),t] = y[a,v,t+1] + sum_w x[a,(v,w),t+1].
func installDwellAllowed(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, g interface {
	Out(int) []int
	In(int) []int
}, a, v, t int) {
	expr := milp.NewExpr(
		milp.Term{Var: vars.Yt(a, v, t, cfg.Integer), Coef: 1},
		milp.Term{Var: vars.Yt(a, v, t+1, cfg.Integer), Coef: -1},
	)
	for _, u := range g.In(v) {
		expr = expr.Plus(vars.Xt(a, u, v, t, cfg.Integer), 1)
	}
	for _, w := range g.Out(v) {
		expr = expr.Plus(vars.Xt(a, v, w, t+1, cfg.Integer), -1)
	}
	model.AddConstraint(fmt.Sprintf("discrete_balance[%d,%d,%d]", a, v, t), expr, milp.EQ, 0)
}

// installDwellPayment installs the mandatory-dwell coupling
// y[a,v,t+1] >= sum_u x[a,(u,v),t] for vertices the visit policy
// requires payment on.
func installDwellPayment(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, g interface{ In(int) []int }, a, v, t int) {
	expr := milp.NewExpr(milp.Term{Var: vars.Yt(a, v, t+1, cfg.Integer), Coef: 1})
	for _, u := range g.In(v) {
		expr = expr.Plus(vars.Xt(a, u, v, t, cfg.Integer), -1)
	}
	model.AddConstraint(fmt.Sprintf("discrete_dwell_required[%d,%d,%d]", a, v, t), expr, milp.GE, 0)
}

// installVertexBinding installs the alternative strict-coupling mode:
// y[a,v,t] = sum_u x[a,(u,v),t-1] and sum_w x[a,(v,w),t] = sum_u x[a,(u,v),t-1].
func installVertexBinding(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, g interface {
	Out(int) []int
	In(int) []int
}, a, v, t int) {
	if t == 0 {
		return
	}
	inflow := milp.Expr{}
	for _, u := range g.In(v) {
		inflow = inflow.Plus(vars.Xt(a, u, v, t-1, cfg.Integer), 1)
	}

	yExpr := milp.NewExpr(milp.Term{Var: vars.Yt(a, v, t, cfg.Integer), Coef: 1})
	yExpr.Terms = append(yExpr.Terms, negateTerms(inflow.Terms)...)
	model.AddConstraint(fmt.Sprintf("discrete_binding_y[%d,%d,%d]", a, v, t), yExpr, milp.EQ, 0)

	outflow := milp.Expr{}
	for _, w := range g.Out(v) {
		outflow = outflow.Plus(vars.Xt(a, v, w, t, cfg.Integer), 1)
	}
	outflow.Terms = append(outflow.Terms, negateTerms(inflow.Terms)...)
	model.AddConstraint(fmt.Sprintf("discrete_binding_x[%d,%d,%d]", a, v, t), outflow, milp.EQ, 0)
}

func negateTerms(terms []milp.Term) []milp.Term {
	out := make([]milp.Term, len(terms))
	for i, t := range terms {
		out[i] = milp.Term{Var: t.Var, Coef: -t.Coef}
	}
	return out
}
