package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	feasTol    = 1e-6
	integerTol = 1e-6
	simplexTol = 1e-9
)

// Fixing is the branching state of one variable at a node.
type Fixing int8

const (
	Free      Fixing = -1
	FixedZero Fixing = 0
	FixedOne  Fixing = 1
)

// Relaxation is the bound a Relaxer computed for one node.
type Relaxation struct {
	// Infeasible prunes the node.
	Infeasible bool
	// Bound is an upper bound on the objective of every completion of the node.
	Bound float64
	// X is the relaxed point, or nil when only a bound is available. An
	// integral X that satisfies every row and reaches Bound solves the node.
	X []float64
	// Branch is a preferred free variable to branch on, or -1.
	Branch int
}

// Relaxer bounds a node of the search. fixed must not be modified.
type Relaxer interface {
	Relax(p *Problem, fixed []Fixing) Relaxation
}

// simplexRelaxer solves the LP relaxation with gonum's simplex.
type simplexRelaxer struct{}

// residual returns the row's rhs after substituting fixed variables, and the
// terms that still involve free variables.
func residual(row Constraint, fixed []Fixing) (float64, []Term) {
	rhs := row.RHS
	var terms []Term
	for _, t := range row.Terms {
		switch fixed[t.Var] {
		case FixedOne:
			rhs -= t.Coef
		case Free:
			if t.Coef != 0 {
				terms = append(terms, t)
			}
		}
	}
	return rhs, terms
}

// propagate fixes variables to zero where a nonnegative row leaves no room for
// them, and detects rows that can no longer be satisfied. It returns false when
// the node is infeasible.
func propagate(p *Problem, fixed []Fixing) bool {
	for changed := true; changed; {
		changed = false
		for _, row := range p.Constraints {
			rhs, terms := residual(row, fixed)
			if len(terms) == 0 {
				if row.Sense == LessEqual && rhs < -feasTol {
					return false
				}
				if row.Sense == Equal && math.Abs(rhs) > feasTol {
					return false
				}
				continue
			}
			nonNeg := true
			for _, t := range terms {
				if t.Coef < 0 {
					nonNeg = false
					break
				}
			}
			if !nonNeg {
				continue
			}
			if rhs < -feasTol {
				return false
			}
			var room float64
			for _, t := range terms {
				if t.Coef > rhs+feasTol {
					fixed[t.Var] = FixedZero
					changed = true
					continue
				}
				room += t.Coef
			}
			if row.Sense == Equal && room < rhs-feasTol {
				return false
			}
		}
	}
	return true
}

// fixedValue sums the objective over variables fixed to one.
func fixedValue(p *Problem, fixed []Fixing) float64 {
	var v float64
	for i, f := range fixed {
		if f == FixedOne {
			v += p.Objective[i]
		}
	}
	return v
}

// trivialBound is fixed value plus every positive free objective coefficient.
func trivialBound(p *Problem, fixed []Fixing) float64 {
	v := fixedValue(p, fixed)
	for i, f := range fixed {
		if f == Free && p.Objective[i] > 0 {
			v += p.Objective[i]
		}
	}
	return v
}

// Relax solves the LP relaxation of the node described by fixed.
//
// Standard form for lp.Simplex is min c·y, A·y = b, y >= 0. Every <= row gets
// a slack column, rows are negated so b >= 0, and x <= 1 rows are added only
// for variables no nonnegative row already caps at one.
func (simplexRelaxer) Relax(p *Problem, fixed []Fixing) Relaxation {
	col := make([]int, p.NumVars)
	var freeVars []int
	for i, f := range fixed {
		col[i] = -1
		if f == Free {
			col[i] = len(freeVars)
			freeVars = append(freeVars, i)
		}
	}
	base := fixedValue(p, fixed)
	if len(freeVars) == 0 {
		return Relaxation{Bound: base, X: fixedPoint(fixed), Branch: -1}
	}

	type stdRow struct {
		terms []Term
		slack bool
		rhs   float64
	}
	var rows []stdRow
	capped := make([]bool, p.NumVars)
	for _, row := range p.Constraints {
		rhs, terms := residual(row, fixed)
		if len(terms) == 0 {
			continue
		}
		nonNeg := rhs >= 0
		for _, t := range terms {
			if t.Coef < 0 {
				nonNeg = false
				break
			}
		}
		if nonNeg {
			for _, t := range terms {
				if rhs/t.Coef <= 1+feasTol {
					capped[t.Var] = true
				}
			}
		}
		rows = append(rows, stdRow{terms: terms, slack: row.Sense == LessEqual, rhs: rhs})
	}
	for _, v := range freeVars {
		if !capped[v] {
			rows = append(rows, stdRow{terms: []Term{{Var: v, Coef: 1}}, slack: true, rhs: 1})
		}
	}

	nCols := len(freeVars)
	for _, r := range rows {
		if r.slack {
			nCols++
		}
	}
	if nCols < len(rows) {
		return Relaxation{Bound: trivialBound(p, fixed), Branch: -1}
	}

	A := mat.NewDense(len(rows), nCols, nil)
	b := make([]float64, len(rows))
	slackCol := len(freeVars)
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		for _, t := range r.terms {
			A.Set(i, col[t.Var], A.At(i, col[t.Var])+sign*t.Coef)
		}
		if r.slack {
			A.Set(i, slackCol, sign)
			slackCol++
		}
		b[i] = sign * r.rhs
	}

	c := make([]float64, nCols)
	for j, v := range freeVars {
		c[j] = -p.Objective[v]
	}

	optF, optX, err := lp.Simplex(c, A, b, simplexTol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return Relaxation{Infeasible: true}
		}
		return Relaxation{Bound: trivialBound(p, fixed), Branch: -1}
	}

	x := fixedPoint(fixed)
	for j, v := range freeVars {
		x[v] = optX[j]
	}
	return Relaxation{Bound: base - optF, X: x, Branch: -1}
}

// fixedPoint expands fixed variables into a float vector; free entries are 0.
func fixedPoint(fixed []Fixing) []float64 {
	x := make([]float64, len(fixed))
	for i, f := range fixed {
		if f == FixedOne {
			x[i] = 1
		}
	}
	return x
}
