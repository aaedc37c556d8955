package milp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// standardForm is a model translated into gonum's lp.Simplex shape:
// minimize c^T x subject to A x = b, x >= 0. Every Model variable maps
// to one shifted column (x = LB + x'); every LE/GE constraint gets a
// slack column; every upper-bounded variable gets an explicit bound
// row, since lp.Simplex only knows the implicit x' >= 0 lower bound.
type standardForm struct {
	c         []float64
	a         *mat.Dense
	b         []float64
	nVars     int // number of original (shifted) variable columns
	objConst  float64
	varColumn map[*Var]int
}

func buildStandardForm(m *Model) (*standardForm, error) {
	nVars := len(m.Vars)
	varColumn := make(map[*Var]int, nVars)
	for i, v := range m.Vars {
		if v.UB < v.LB {
			return nil, fmt.Errorf("milp: variable %s has UB < LB", v.Name)
		}
		varColumn[v] = i
	}

	// Count extra rows: one per constraint, plus one per finite-UB
	// variable (explicit x' <= UB-LB row).
	extraBoundRows := 0
	for _, v := range m.Vars {
		if !isUnbounded(v.UB) {
			extraBoundRows++
		}
	}

	rows := make([][]float64, 0, len(m.Constraints)+extraBoundRows)
	bs := make([]float64, 0, len(m.Constraints)+extraBoundRows)

	slackCols := 0
	rowSpecs := make([]struct {
		coeffs map[int]float64
		rhs    float64
		sense  Sense
	}, 0, len(m.Constraints)+extraBoundRows)

	objConst := 0.0
	c := make([]float64, nVars)
	for _, t := range m.Objective.Terms {
		col, ok := varColumn[t.Var]
		if !ok {
			return nil, fmt.Errorf("milp: objective references variable not in model: %s", t.Var.Name)
		}
		c[col] += t.Coef
		objConst += t.Coef * t.Var.LB
	}
	objConst += m.Objective.Constant
	if !m.Minimize {
		for i := range c {
			c[i] = -c[i]
		}
		objConst = -objConst
	}

	addRow := func(coeffs map[int]float64, sense Sense, rhs float64) {
		rowSpecs = append(rowSpecs, struct {
			coeffs map[int]float64
			rhs    float64
			sense  Sense
		}{coeffs, rhs, sense})
	}

	for _, cons := range m.Constraints {
		coeffs := make(map[int]float64, len(cons.Expr.Terms))
		rhs := cons.RHS - cons.Expr.Constant
		for _, t := range cons.Expr.Terms {
			col, ok := varColumn[t.Var]
			if !ok {
				return nil, fmt.Errorf("milp: constraint %s references variable not in model: %s", cons.Name, t.Var.Name)
			}
			coeffs[col] += t.Coef
			rhs -= t.Coef * t.Var.LB
		}
		addRow(coeffs, cons.Sense, rhs)
	}

	for _, v := range m.Vars {
		if isUnbounded(v.UB) {
			continue
		}
		col := varColumn[v]
		addRow(map[int]float64{col: 1}, LE, v.UB-v.LB)
	}

	for _, spec := range rowSpecs {
		switch spec.sense {
		case LE:
			slackCols++
		case GE:
			slackCols++
		}
	}

	totalCols := nVars + slackCols
	slackIdx := nVars
	for _, spec := range rowSpecs {
		row := make([]float64, totalCols)
		for col, coef := range spec.coeffs {
			row[col] = coef
		}
		rhs := spec.rhs
		switch spec.sense {
		case LE:
			row[slackIdx] = 1
			slackIdx++
		case GE:
			row[slackIdx] = -1
			slackIdx++
		case EQ:
			// no slack column
		}
		if rhs < 0 {
			for i := range row {
				row[i] = -row[i]
			}
			rhs = -rhs
		}
		rows = append(rows, row)
		bs = append(bs, rhs)
	}

	cFull := make([]float64, totalCols)
	copy(cFull, c)

	a := mat.NewDense(len(rows), totalCols, nil)
	for i, row := range rows {
		a.SetRow(i, row)
	}

	return &standardForm{
		c:         cFull,
		a:         a,
		b:         bs,
		nVars:     nVars,
		objConst:  objConst,
		varColumn: varColumn,
	}, nil
}

func isUnbounded(ub float64) bool {
	return ub >= 1e18
}

// solveRelaxation solves the LP relaxation of m (ignoring any
// Binary/Integer variable kind) via gonum's primal simplex.
func solveRelaxation(m *Model) (*Solution, error) {
	if len(m.Vars) == 0 {
		return &Solution{Status: StatusOptimal, Values: map[*Var]float64{}}, nil
	}

	sf, err := buildStandardForm(m)
	if err != nil {
		return nil, err
	}

	if sf.a.RawMatrix().Rows == 0 {
		// No constraints at all: every variable sits at its lower
		// bound (simplex has nothing to push against).
		values := make(map[*Var]float64, len(m.Vars))
		for v := range sf.varColumn {
			values[v] = v.LB
		}
		return &Solution{Status: StatusOptimal, Values: values}, nil
	}

	optF, x, err := lp.Simplex(nil, sf.c, sf.a, sf.b, 0)
	if err != nil {
		return &Solution{Status: StatusInfeasible}, nil
	}

	objective := optF + sf.objConst
	if !m.Minimize {
		objective = -objective
	}

	values := make(map[*Var]float64, len(m.Vars))
	for v, col := range sf.varColumn {
		values[v] = v.LB + x[col]
	}

	return &Solution{Status: StatusOptimal, Objective: objective, Values: values}, nil
}
