package logic

import (
	"math"

	"github.com/jclfantasy/optimizer-api/internal/solver"
)

const (
	budgetTol       = 1e-6
	lambdaDoublings = 60
	lambdaBisects   = 24
)

// hungarian solves a rectangular min-cost assignment of rows to distinct
// columns, rows <= cols. cost returns +Inf for forbidden pairs. ok is false
// when no assignment covers every row. Runs in O(rows²·cols).
func hungarian(rows, cols int, cost func(r, c int) float64) (assign []int, total float64, ok bool) {
	if rows == 0 {
		return nil, 0, true
	}
	if rows > cols {
		return nil, 0, false
	}
	inf := math.Inf(1)
	u := make([]float64, rows+1)
	v := make([]float64, cols+1)
	owner := make([]int, cols+1) // row matched to column j, 1-based; 0 is free
	way := make([]int, cols+1)
	minv := make([]float64, cols+1)
	used := make([]bool, cols+1)

	for i := 1; i <= rows; i++ {
		owner[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := owner[j0]
			delta, j1 := inf, 0
			for j := 1; j <= cols; j++ {
				if used[j] {
					continue
				}
				cur := cost(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta, j1 = minv[j], j
				}
			}
			if math.IsInf(delta, 1) {
				return nil, 0, false
			}
			for j := 0; j <= cols; j++ {
				if used[j] {
					u[owner[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if owner[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			owner[j0] = owner[j1]
			j0 = j1
		}
	}

	assign = make([]int, rows)
	for j := 1; j <= cols; j++ {
		if owner[j] != 0 {
			r := owner[j] - 1
			assign[r] = j - 1
			total += cost(r, j-1)
		}
	}
	return assign, total, true
}

// assignmentRelaxer bounds branch-and-bound nodes of an assignment problem
// without an LP. The budget row is moved into the objective with a multiplier
// λ >= 0, leaving a max-weight matching of open slots to unused candidates:
//
//	L(λ) = λ·B + max Σ (objective - λ·salary)
//
// Every L(λ) is an upper bound on the node. λ is searched by doubling and
// bisection for the smallest bound. Bench caps are left out of the bound and
// enforced by branching.
type assignmentRelaxer struct {
	nSlots  int
	nCands  int
	varAt   [][]int // [slot][candidate] -> variable, -1 when ineligible
	pairs   []pairVar
	salary  []float64
	budget  float64
	maxFill bool
}

func newAssignmentRelaxer(ap *assignmentProblem, spec problemSpec) *assignmentRelaxer {
	r := &assignmentRelaxer{
		nSlots:  len(ap.slots),
		nCands:  len(ap.candidates),
		varAt:   ap.varIndex(),
		pairs:   ap.vars,
		salary:  make([]float64, len(ap.vars)),
		budget:  spec.Budget,
		maxFill: spec.MaxFill,
	}
	for v, pv := range ap.vars {
		r.salary[v] = ap.candidates[pv.cand].Salary()
	}
	return r
}

// matching is one evaluated λ.
type matching struct {
	vars   []int // chosen free variables
	weight float64
	spend  float64
}

func (r *assignmentRelaxer) Relax(p *solver.Problem, fixed []solver.Fixing) solver.Relaxation {
	usedSlot := make([]bool, r.nSlots)
	usedCand := make([]bool, r.nCands)
	var base, spent float64
	for v, f := range fixed {
		if f != solver.FixedOne {
			continue
		}
		pv := r.pairs[v]
		if usedSlot[pv.slot] || usedCand[pv.cand] {
			return solver.Relaxation{Infeasible: true}
		}
		usedSlot[pv.slot], usedCand[pv.cand] = true, true
		base += p.Objective[v]
		spent += r.salary[v]
	}
	room := r.budget - spent
	if room < -budgetTol {
		return solver.Relaxation{Infeasible: true}
	}

	var slots, cands []int
	for s, used := range usedSlot {
		if !used {
			slots = append(slots, s)
		}
	}
	for c, used := range usedCand {
		if used {
			continue
		}
		for _, s := range slots {
			if v := r.varAt[s][c]; v >= 0 && fixed[v] == solver.Free {
				cands = append(cands, c)
				break
			}
		}
	}
	if len(slots) == 0 {
		return solver.Relaxation{Bound: base, X: r.point(fixed, nil), Branch: -1}
	}
	cols := len(cands)
	if r.maxFill {
		// One zero-weight column per slot stands for leaving it empty.
		cols += len(slots)
	} else if cols < len(slots) {
		return solver.Relaxation{Infeasible: true}
	}

	solve := func(weight func(v int) float64) (matching, bool) {
		assign, _, ok := hungarian(len(slots), cols, func(i, j int) float64 {
			if j >= len(cands) {
				return 0
			}
			v := r.varAt[slots[i]][cands[j]]
			if v < 0 || fixed[v] != solver.Free {
				return math.Inf(1)
			}
			return -weight(v)
		})
		if !ok {
			return matching{}, false
		}
		var m matching
		for i, j := range assign {
			if j >= len(cands) {
				continue
			}
			v := r.varAt[slots[i]][cands[j]]
			m.vars = append(m.vars, v)
			m.weight += p.Objective[v]
			m.spend += r.salary[v]
		}
		return m, true
	}
	lagrangian := func(lambda float64) (matching, float64, bool) {
		m, ok := solve(func(v int) float64 { return p.Objective[v] - lambda*r.salary[v] })
		if !ok {
			return m, 0, false
		}
		return m, lambda*room + m.weight - lambda*m.spend, true
	}

	free, bound, ok := lagrangian(0)
	if !ok {
		return solver.Relaxation{Infeasible: true}
	}
	if free.spend <= room+budgetTol {
		x := r.point(fixed, free.vars)
		return solver.Relaxation{Bound: base + bound, X: x, Branch: r.violated(p, fixed, x)}
	}

	cheapest, ok := solve(func(v int) float64 { return -r.salary[v] })
	if !ok || cheapest.spend > room+budgetTol {
		return solver.Relaxation{Infeasible: true}
	}

	lo, hi := 0.0, 1.0
	below, above := free, cheapest
	found := false
	for i := 0; i < lambdaDoublings; i++ {
		m, l, ok := lagrangian(hi)
		if !ok {
			return solver.Relaxation{Infeasible: true}
		}
		bound = math.Min(bound, l)
		if m.spend <= room+budgetTol {
			above, found = m, true
			break
		}
		below, lo = m, hi
		hi *= 4
	}
	if found {
		for i := 0; i < lambdaBisects; i++ {
			mid := (lo + hi) / 2
			m, l, ok := lagrangian(mid)
			if !ok {
				break
			}
			bound = math.Min(bound, l)
			if m.spend <= room+budgetTol {
				above, hi = m, mid
			} else {
				below, lo = m, mid
			}
		}
	}

	x := r.point(fixed, above.vars)
	branch := r.violated(p, fixed, x)
	if branch < 0 {
		branch = dearestDifference(below.vars, above.vars, r.salary)
	}
	return solver.Relaxation{Bound: base + bound, X: x, Branch: branch}
}

// point is the 0/1 vector with fixed-one variables and chosen set.
func (r *assignmentRelaxer) point(fixed []solver.Fixing, chosen []int) []float64 {
	x := make([]float64, len(fixed))
	for v, f := range fixed {
		if f == solver.FixedOne {
			x[v] = 1
		}
	}
	for _, v := range chosen {
		x[v] = 1
	}
	return x
}

// violated returns a free variable set in x that sits in a broken row, or -1.
func (r *assignmentRelaxer) violated(p *solver.Problem, fixed []solver.Fixing, x []float64) int {
	for _, row := range p.Constraints {
		var lhs float64
		pick := -1
		for _, t := range row.Terms {
			if x[t.Var] > 0.5 {
				lhs += t.Coef
				if pick < 0 && fixed[t.Var] == solver.Free {
					pick = t.Var
				}
			}
		}
		if lhs > row.RHS+budgetTol && pick >= 0 {
			return pick
		}
	}
	return -1
}

// dearestDifference is the most expensive variable the over-budget matching
// uses and the within-budget one drops, or -1.
func dearestDifference(over, within []int, salary []float64) int {
	in := make(map[int]bool, len(within))
	for _, v := range within {
		in[v] = true
	}
	best := -1
	for _, v := range over {
		if in[v] {
			continue
		}
		if best < 0 || salary[v] > salary[best] {
			best = v
		}
	}
	return best
}
