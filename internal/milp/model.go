// Package milp is the platform's in-process mixed-integer linear
// program backend: LP relaxation via gonum's simplex implementation,
// wrapped in a branch-and-bound driver for the integer/binary
// variables the MAPF-MILP builders install. It exists because no
// external solver (HiGHS, Gurobi, CPLEX) can be assumed to be present
// on `import` the way a Python/Julia notebook would; callers wanting
// one of those swap out the Solver interface instead.
package milp

import "fmt"

// VarKind distinguishes continuous variables from the binary/integer
// ones branch-and-bound has to split on.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
	Integer
)

// Var is a single decision variable. Identity is pointer identity —
// callers hold onto the *Var returned by AddVar to read back its value
// from a Solution.
type Var struct {
	Name string
	Kind VarKind
	LB   float64
	UB   float64

	col int
}

// Term is one coef*var addend of a linear expression.
type Term struct {
	Var  *Var
	Coef float64
}

// Expr is a linear expression: a sum of Terms plus an optional constant.
type Expr struct {
	Terms    []Term
	Constant float64
}

// NewExpr builds an expression from terms.
func NewExpr(terms ...Term) Expr {
	return Expr{Terms: terms}
}

// Plus appends coef*v to the expression and returns it, for fluent
// construction of the builders' constraint expressions.
func (e Expr) Plus(v *Var, coef float64) Expr {
	e.Terms = append(e.Terms, Term{Var: v, Coef: coef})
	return e
}

// PlusConst adds a constant to the expression.
func (e Expr) PlusConst(c float64) Expr {
	e.Constant += c
	return e
}

// Sense is a constraint's relational operator.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

// Constraint is one row of the model: Expr <sense> RHS.
type Constraint struct {
	Name  string
	Expr  Expr
	Sense Sense
	RHS   float64
}

// Model is a MILP instance built incrementally by internal/mapf's
// builders: variables and constraints are added in a single build
// phase (continuous/discrete modes) or incrementally across solves
// (the dynamic-conflict loop, which only ever appends).
type Model struct {
	Vars        []*Var
	Constraints []*Constraint
	Objective   Expr
	Minimize    bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Minimize: true}
}

// AddVar installs a new variable and returns a handle to it.
func (m *Model) AddVar(name string, kind VarKind, lb, ub float64) *Var {
	v := &Var{Name: name, Kind: kind, LB: lb, UB: ub, col: len(m.Vars)}
	m.Vars = append(m.Vars, v)
	return v
}

// AddConstraint installs a new constraint row. In the dynamic-conflict
// loop this is called between solves to append a fresh disjunction
// without touching any prior row — warm-starting relies on that.
func (m *Model) AddConstraint(name string, expr Expr, sense Sense, rhs float64) *Constraint {
	c := &Constraint{Name: name, Expr: expr, Sense: sense, RHS: rhs}
	m.Constraints = append(m.Constraints, c)
	return c
}

// SetObjective installs the model's objective.
func (m *Model) SetObjective(expr Expr, minimize bool) {
	m.Objective = expr
	m.Minimize = minimize
}

// String renders a short summary, useful in logs around build/solve
// milestones.
func (m *Model) String() string {
	return fmt.Sprintf("milp.Model{vars=%d, constraints=%d}", len(m.Vars), len(m.Constraints))
}
