// Package solver implements a small binary integer program solver: depth-first
// branch-and-bound over relaxations. Nodes are bounded with gonum's simplex
// unless the caller supplies a problem-specific Relaxer.
//
// Problems are stated as: maximize c·x subject to linear rows (<= or =) with
// every x in {0, 1}. The solver is exact given enough time; the caller bounds
// it with a context deadline and receives the best incumbent on expiry.
package solver

import (
	"errors"
	"fmt"
	"math"
)

// Sense is the relation of a constraint row.
type Sense int

const (
	LessEqual Sense = iota
	Equal
)

func (s Sense) String() string {
	if s == Equal {
		return "="
	}
	return "<="
}

// Term is one coefficient of a constraint row.
type Term struct {
	Var  int
	Coef float64
}

// Constraint is a named linear row.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Problem is a binary program to maximize Objective·x.
type Problem struct {
	NumVars     int
	Objective   []float64
	Constraints []Constraint
}

// ErrMalformed is returned for problems that cannot be solved as stated.
var ErrMalformed = errors.New("solver: malformed problem")

// NewProblem returns a problem with n variables and a zero objective.
func NewProblem(n int) *Problem {
	return &Problem{NumVars: n, Objective: make([]float64, n)}
}

// Add appends a constraint row.
func (p *Problem) Add(name string, terms []Term, sense Sense, rhs float64) {
	p.Constraints = append(p.Constraints, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})
}

// Validate checks dimensions and finiteness.
func (p *Problem) Validate() error {
	if p.NumVars <= 0 {
		return fmt.Errorf("%w: no variables", ErrMalformed)
	}
	if len(p.Objective) != p.NumVars {
		return fmt.Errorf("%w: objective has %d entries for %d variables", ErrMalformed, len(p.Objective), p.NumVars)
	}
	for i, c := range p.Objective {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: objective[%d] is not finite", ErrMalformed, i)
		}
	}
	for _, row := range p.Constraints {
		if math.IsNaN(row.RHS) || math.IsInf(row.RHS, 0) {
			return fmt.Errorf("%w: row %q has non-finite rhs", ErrMalformed, row.Name)
		}
		for _, t := range row.Terms {
			if t.Var < 0 || t.Var >= p.NumVars {
				return fmt.Errorf("%w: row %q references variable %d", ErrMalformed, row.Name, t.Var)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%w: row %q has non-finite coefficient", ErrMalformed, row.Name)
			}
		}
	}
	return nil
}

// Satisfied reports whether a 0/1 assignment meets every row within tolerance.
func (p *Problem) Satisfied(x []bool) bool {
	for _, row := range p.Constraints {
		var lhs float64
		for _, t := range row.Terms {
			if x[t.Var] {
				lhs += t.Coef
			}
		}
		switch row.Sense {
		case LessEqual:
			if lhs > row.RHS+feasTol {
				return false
			}
		case Equal:
			if math.Abs(lhs-row.RHS) > feasTol {
				return false
			}
		}
	}
	return true
}

// Value evaluates the objective at a 0/1 assignment.
func (p *Problem) Value(x []bool) float64 {
	var v float64
	for i, on := range x {
		if on {
			v += p.Objective[i]
		}
	}
	return v
}
