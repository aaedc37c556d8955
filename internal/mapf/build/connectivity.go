// Package build holds the MAPF-MILP constraint installers: component D
// (connectivity), E (timing), F (static conflicts), G (discrete-time),
// and H (objective). Each takes a *mapf.VarRegistry bound to the model
// under construction and installs rows into it; none of them solve.
package build

import (
	"fmt"

	"mapfnet/internal/mapf"
	"mapfnet/internal/milp"
)

// Connectivity installs Component D: per-agent flow-conservation
// constraints that force a selected (x, y) assignment to be a simple
// path from source to target.
func Connectivity(model *milp.Model, vars *mapf.VarRegistry, cfg *mapf.Config) error {
	g := cfg.Graph
	agents := cfg.Agents.All()

	for a, agent := range agents {
		if !g.HasVertex(agent.Source) || !g.HasVertex(agent.Target) {
			return fmt.Errorf("mapf: agent %d source/target not in graph", a)
		}

		// 1. y[a, source] = 1, y[a, target] = 1.
		ySrc := vars.Y(a, agent.Source, cfg.Integer)
		model.AddConstraint(fmt.Sprintf("anchor_src[%d]", a), milp.NewExpr(milp.Term{Var: ySrc, Coef: 1}), milp.EQ, 1)
		yTgt := vars.Y(a, agent.Target, cfg.Integer)
		model.AddConstraint(fmt.Sprintf("anchor_tgt[%d]", a), milp.NewExpr(milp.Term{Var: yTgt, Coef: 1}), milp.EQ, 1)

		// 2. Outflow at source minus inflow at source = 1.
		outflowExpr := milp.Expr{}
		for _, w := range g.Out(agent.Source) {
			outflowExpr = outflowExpr.Plus(vars.X(a, agent.Source, w, cfg.Integer), 1)
		}
		for _, u := range g.In(agent.Source) {
			outflowExpr = outflowExpr.Plus(vars.X(a, u, agent.Source, cfg.Integer), -1)
		}
		model.AddConstraint(fmt.Sprintf("outflow_src[%d]", a), outflowExpr, milp.EQ, 1)

		// 3. Inflow at target plus outflow at target = 1 (canonical
		// published form — see spec's note on this constraint's sign).
		inflowExpr := milp.Expr{}
		for _, u := range g.In(agent.Target) {
			inflowExpr = inflowExpr.Plus(vars.X(a, u, agent.Target, cfg.Integer), 1)
		}
		for _, w := range g.Out(agent.Target) {
			inflowExpr = inflowExpr.Plus(vars.X(a, agent.Target, w, cfg.Integer), 1)
		}
		model.AddConstraint(fmt.Sprintf("inflow_tgt[%d]", a), inflowExpr, milp.EQ, 1)

		// 4. Flow conservation at every internal vertex.
		for v := 1; v <= g.VertexCount(); v++ {
			if v == agent.Source || v == agent.Target {
				continue
			}
			expr := milp.Expr{}
			for _, w := range g.Out(v) {
				expr = expr.Plus(vars.X(a, v, w, cfg.Integer), 1)
			}
			for _, u := range g.In(v) {
				expr = expr.Plus(vars.X(a, u, v, cfg.Integer), -1)
			}
			if len(expr.Terms) == 0 {
				continue
			}
			model.AddConstraint(fmt.Sprintf("conservation[%d,%d]", a, v), expr, milp.EQ, 0)
		}

		// 5. Edge-implies-vertex for every non-source vertex.
		for v := 1; v <= g.VertexCount(); v++ {
			if v == agent.Source {
				continue
			}
			y := vars.Y(a, v, cfg.Integer)
			expr := milp.NewExpr(milp.Term{Var: y, Coef: 1})
			hasInbound := false
			for _, u := range g.In(v) {
				expr = expr.Plus(vars.X(a, u, v, cfg.Integer), -1)
				hasInbound = true
			}
			if !hasInbound {
				// y[a,v] = 0 when v has no inbound edge at all.
				model.AddConstraint(fmt.Sprintf("edge_implies_vertex[%d,%d]", a, v), milp.NewExpr(milp.Term{Var: y, Coef: 1}), milp.EQ, 0)
				continue
			}
			model.AddConstraint(fmt.Sprintf("edge_implies_vertex[%d,%d]", a, v), expr, milp.EQ, 0)
		}
	}

	return nil
}
