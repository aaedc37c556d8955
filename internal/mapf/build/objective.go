package build

import (
	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
)

// Objective installs Component H. The base form is the additive
// selection cost Σ_a Σ_e Ec·x[a,e] + Σ_a Σ_v Vc·y[a,v]; when timing is
// enabled the tight sum-of-arrival-times term Σ_a t_v[a, target_a] is
// added to it — one variable per agent, which keeps the LP relaxation
// tighter than summing every t_v/t_e term would.
func Objective(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config, timingEnabled bool, bigM float64) error {
	expr := milp.Expr{}
	for a := range cfg.Agents.All() {
		for _, e := range cfg.Graph.Edges() {
			cost := cfg.EdgeCost.Get(a, e.From, e.To)
			if cost == 0 {
				continue
			}
			x := vars.X(a, e.From, e.To, cfg.Integer)
			expr = expr.Plus(x, cost)
		}
		for v := 1; v <= cfg.Graph.VertexCount(); v++ {
			cost := cfg.VertexCost.Get(a, v)
			if cost == 0 {
				continue
			}
			y := vars.Y(a, v, cfg.Integer)
			expr = expr.Plus(y, cost)
		}
	}
	if timingEnabled {
		for a, agent := range cfg.Agents.All() {
			expr = expr.Plus(vars.TV(a, agent.Target, bigM), 1)
		}
	}
	model.SetObjective(expr, true)
	return nil
}

// ObjectiveDiscrete installs the discrete-time builder's objective: the
// same additive selection cost, summed over every step t instead of a
// single selection variable per edge/vertex.
func ObjectiveDiscrete(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config) error {
	expr := milp.Expr{}
	T := cfg.ResolveTimeDuration()

	for a := range cfg.Agents.All() {
		for t := 0; t < T; t++ {
			for _, e := range cfg.Graph.Edges() {
				cost := cfg.EdgeCost.Get(a, e.From, e.To)
				if cost == 0 {
					continue
				}
				x := vars.Xt(a, e.From, e.To, t, cfg.Integer)
				expr = expr.Plus(x, cost)
			}
			for v := 1; v <= cfg.Graph.VertexCount(); v++ {
				cost := cfg.VertexCost.Get(a, v)
				if cost == 0 {
					continue
				}
				y := vars.Yt(a, v, t, cfg.Integer)
				expr = expr.Plus(y, cost)
			}
		}
	}
	model.SetObjective(expr, true)
	return nil
}
