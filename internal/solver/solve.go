package solver

import (
	"context"
	"math"
)

// Status is the outcome of a solve.
type Status int

const (
	// StatusOptimal means the incumbent is proven optimal.
	StatusOptimal Status = iota
	// StatusInfeasible means no 0/1 assignment satisfies every row.
	StatusInfeasible
	// StatusTimedOut means the search stopped early; Values holds the best
	// incumbent when HasIncumbent is set.
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimedOut:
		return "timed_out"
	}
	return "unknown"
}

// Solution is the result of Solve.
type Solution struct {
	Status       Status
	Values       []bool
	Objective    float64
	HasIncumbent bool
	Nodes        int
}

type config struct {
	nodeLimit int
	gapTol    float64
	relaxer   Relaxer
	incumbent []bool
}

// Option configures Solve.
type Option func(*config)

// WithNodeLimit stops the search after n nodes, reported as StatusTimedOut.
func WithNodeLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.nodeLimit = n
		}
	}
}

// WithPruneTolerance sets how much better than the incumbent a node's bound
// must be to be explored.
func WithPruneTolerance(tol float64) Option {
	return func(c *config) {
		if tol >= 0 {
			c.gapTol = tol
		}
	}
}

// WithRelaxer replaces the simplex relaxation used to bound nodes.
func WithRelaxer(r Relaxer) Option {
	return func(c *config) {
		if r != nil {
			c.relaxer = r
		}
	}
}

// WithIncumbent starts the search from a known assignment. It is ignored
// unless it has one entry per variable and satisfies every row.
func WithIncumbent(x []bool) Option {
	return func(c *config) {
		c.incumbent = x
	}
}

type node struct {
	fixed []Fixing
}

// Solve maximizes p.Objective over binary x subject to p.Constraints.
// It returns an error only for malformed problems; running out of time or nodes
// is reported through Status. The context bounds the wall clock, including a
// relaxation in progress.
func Solve(ctx context.Context, p *Problem, opts ...Option) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg := config{gapTol: 1e-9, relaxer: simplexRelaxer{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	sol := &Solution{Status: StatusInfeasible, Objective: math.Inf(-1)}
	if len(cfg.incumbent) == p.NumVars && p.Satisfied(cfg.incumbent) {
		sol.Values = append([]bool(nil), cfg.incumbent...)
		sol.Objective = p.Value(sol.Values)
		sol.HasIncumbent = true
	}

	root := make([]Fixing, p.NumVars)
	for i := range root {
		root[i] = Free
	}
	stack := []node{{fixed: root}}

	for len(stack) > 0 {
		if ctx.Err() != nil || (cfg.nodeLimit > 0 && sol.Nodes >= cfg.nodeLimit) {
			sol.Status = StatusTimedOut
			return finish(sol), nil
		}

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sol.Nodes++

		if !propagate(p, n.fixed) {
			continue
		}
		r, ok := relaxWithin(ctx, cfg.relaxer, p, n.fixed)
		if !ok {
			sol.Status = StatusTimedOut
			return finish(sol), nil
		}
		if r.Infeasible {
			continue
		}
		if sol.HasIncumbent && r.Bound <= sol.Objective+cfg.gapTol {
			continue
		}

		branchVar := -1
		if r.X != nil {
			branchVar = mostFractional(r.X, n.fixed)
			if branchVar < 0 {
				x := roundPoint(r.X)
				if p.Satisfied(x) {
					v := p.Value(x)
					if !sol.HasIncumbent || v > sol.Objective {
						sol.Values, sol.Objective, sol.HasIncumbent = x, v, true
					}
					if v >= r.Bound-cfg.gapTol {
						continue
					}
				}
			}
		}
		if branchVar < 0 && r.Branch >= 0 && r.Branch < p.NumVars && n.fixed[r.Branch] == Free {
			branchVar = r.Branch
		}
		if branchVar < 0 {
			branchVar = firstFree(n.fixed)
		}
		if branchVar < 0 {
			// Fully fixed node.
			x := make([]bool, len(n.fixed))
			for i, f := range n.fixed {
				x[i] = f == FixedOne
			}
			if p.Satisfied(x) {
				if v := p.Value(x); !sol.HasIncumbent || v > sol.Objective {
					sol.Values, sol.Objective, sol.HasIncumbent = x, v, true
				}
			}
			continue
		}

		down := append([]Fixing(nil), n.fixed...)
		down[branchVar] = FixedZero
		up := append([]Fixing(nil), n.fixed...)
		up[branchVar] = FixedOne
		stack = append(stack, node{fixed: down}, node{fixed: up})
	}

	if sol.HasIncumbent {
		sol.Status = StatusOptimal
	}
	return finish(sol), nil
}

// relaxWithin runs one relaxation and gives up when ctx ends first. The
// abandoned relaxation finishes in the background and its result is dropped.
func relaxWithin(ctx context.Context, r Relaxer, p *Problem, fixed []Fixing) (Relaxation, bool) {
	done := make(chan Relaxation, 1)
	go func() {
		done <- r.Relax(p, fixed)
	}()
	select {
	case res := <-done:
		return res, true
	case <-ctx.Done():
		return Relaxation{}, false
	}
}

func finish(sol *Solution) *Solution {
	if !sol.HasIncumbent {
		sol.Objective = 0
		sol.Values = nil
	}
	return sol
}

// mostFractional picks the free variable whose LP value is closest to 0.5.
// It returns -1 when every free variable is integral.
func mostFractional(x []float64, fixed []Fixing) int {
	best, bestDist := -1, 0.5
	for i, f := range fixed {
		if f != Free {
			continue
		}
		frac := x[i] - math.Floor(x[i])
		if frac < integerTol || frac > 1-integerTol {
			continue
		}
		if d := math.Abs(frac - 0.5); d < bestDist || best < 0 {
			best, bestDist = i, d
		}
	}
	return best
}

func firstFree(fixed []Fixing) int {
	for i, f := range fixed {
		if f == Free {
			return i
		}
	}
	return -1
}

func roundPoint(x []float64) []bool {
	out := make([]bool, len(x))
	for i, v := range x {
		out[i] = v > 0.5
	}
	return out
}
