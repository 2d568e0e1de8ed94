package logic

import (
	"fmt"

	"github.com/jclfantasy/optimizer-api/internal/models"
	"github.com/jclfantasy/optimizer-api/internal/solver"
)

// Candidate is a scored free agent offered to the optimizer.
type Candidate struct {
	Player *models.Player
	Gain   float64
}

// Salary is the cost charged against the budget.
func (c Candidate) Salary() float64 {
	return c.Player.AdjustedSalary
}

// OpenSlot is a slot the optimizer must fill.
type OpenSlot struct {
	Slot models.RosterSlot
	Side SlotSide
}

// BenchCaps limits how many bench slots each kind may take when one solve
// covers hitters and pitchers together.
type BenchCaps struct {
	Hitters  int
	Pitchers int
}

// pairVar is one binary decision: candidate c placed in slot s.
type pairVar struct {
	cand int
	slot int
}

// assignmentProblem is the binary program for one optimization, together with
// the mapping back from variables to (candidate, slot) pairs.
type assignmentProblem struct {
	candidates []Candidate
	slots      []OpenSlot
	vars       []pairVar
	program    *solver.Problem
}

// problemSpec parameterizes buildAssignmentProblem.
type problemSpec struct {
	Budget float64
	Caps   *BenchCaps
	// MaxFill relaxes slot rows to <= 1 and maximizes the number of filled
	// slots. Used to explain infeasible requests.
	MaxFill bool
}

// buildAssignmentProblem states the roster assignment as a binary program.
// Hitting-only, pitching-only and combined runs all come through here; the
// candidate and slot lists carry their own kind tags.
func buildAssignmentProblem(cands []Candidate, slots []OpenSlot, spec problemSpec) (*assignmentProblem, error) {
	ap := &assignmentProblem{candidates: cands, slots: slots}
	for ci, c := range cands {
		for si, s := range slots {
			if IsEligible(s.Slot.Kind, c.Player) {
				ap.vars = append(ap.vars, pairVar{cand: ci, slot: si})
			}
		}
	}
	if len(ap.vars) == 0 {
		return nil, fmt.Errorf("no eligible candidate-slot pairs")
	}

	p := solver.NewProblem(len(ap.vars))
	budget := make([]solver.Term, 0, len(ap.vars))
	bySlot := make([][]solver.Term, len(slots))
	byCand := make([][]solver.Term, len(cands))
	var benchHitters, benchPitchers []solver.Term

	for v, pv := range ap.vars {
		c := cands[pv.cand]
		if spec.MaxFill {
			p.Objective[v] = 1
		} else {
			p.Objective[v] = c.Gain
		}
		budget = append(budget, solver.Term{Var: v, Coef: c.Salary()})
		bySlot[pv.slot] = append(bySlot[pv.slot], solver.Term{Var: v, Coef: 1})
		byCand[pv.cand] = append(byCand[pv.cand], solver.Term{Var: v, Coef: 1})

		if slots[pv.slot].Side == SideAny {
			switch c.Player.Kind {
			case models.KindHitter:
				benchHitters = append(benchHitters, solver.Term{Var: v, Coef: 1})
			case models.KindPitcher:
				benchPitchers = append(benchPitchers, solver.Term{Var: v, Coef: 1})
			}
		}
	}

	p.Add("budget", budget, solver.LessEqual, spec.Budget)

	slotSense := solver.Equal
	if spec.MaxFill {
		slotSense = solver.LessEqual
	}
	for si, terms := range bySlot {
		p.Add("slot:"+slots[si].Slot.Label, terms, slotSense, 1)
	}
	for ci, terms := range byCand {
		if len(terms) > 0 {
			p.Add(fmt.Sprintf("candidate:%d", cands[ci].Player.ID), terms, solver.LessEqual, 1)
		}
	}
	if spec.Caps != nil {
		if len(benchHitters) > 0 {
			p.Add("bench:hitters", benchHitters, solver.LessEqual, float64(spec.Caps.Hitters))
		}
		if len(benchPitchers) > 0 {
			p.Add("bench:pitchers", benchPitchers, solver.LessEqual, float64(spec.Caps.Pitchers))
		}
	}

	ap.program = p
	return ap, nil
}

// varIndex maps [slot][candidate] to its variable, or -1 when the candidate
// cannot fill the slot.
func (ap *assignmentProblem) varIndex() [][]int {
	idx := make([][]int, len(ap.slots))
	for s := range idx {
		idx[s] = make([]int, len(ap.candidates))
		for c := range idx[s] {
			idx[s][c] = -1
		}
	}
	for v, pv := range ap.vars {
		idx[pv.slot][pv.cand] = v
	}
	return idx
}

// pick is one extracted (candidate, slot) decision.
type pick struct {
	Candidate Candidate
	Slot      OpenSlot
}

// extract turns a 0/1 solution back into picks in slot order.
func (ap *assignmentProblem) extract(values []bool) []pick {
	bySlot := make([]*pick, len(ap.slots))
	for v, on := range values {
		if !on {
			continue
		}
		pv := ap.vars[v]
		bySlot[pv.slot] = &pick{Candidate: ap.candidates[pv.cand], Slot: ap.slots[pv.slot]}
	}
	var out []pick
	for _, p := range bySlot {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// unfilled lists labels of slots with no pick.
func (ap *assignmentProblem) unfilled(values []bool) []string {
	filled := make([]bool, len(ap.slots))
	for v, on := range values {
		if on {
			filled[ap.vars[v].slot] = true
		}
	}
	var out []string
	for si, ok := range filled {
		if !ok {
			out = append(out, ap.slots[si].Slot.Label)
		}
	}
	return out
}

// slotsWithoutCandidates lists slots no candidate in the pool may fill.
func slotsWithoutCandidates(cands []Candidate, slots []OpenSlot) []string {
	var out []string
	for _, s := range slots {
		found := false
		for _, c := range cands {
			if IsEligible(s.Slot.Kind, c.Player) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, s.Slot.Label)
		}
	}
	return out
}

// reduceCandidates drops candidates that cannot appear in some optimal
// assignment. Candidate d dominates c when both are the same kind, d scores at
// least as well, costs no more, and fits every open slot c fits (ties broken
// by pool order). Any c with at least len(slots) dominators can always be
// swapped for an unused dominator without losing value, so it is removed.
func reduceCandidates(cands []Candidate, slots []OpenSlot, weight func(Candidate) float64) []Candidate {
	n := len(slots)
	elig := make([][]bool, len(cands))
	for ci, c := range cands {
		elig[ci] = make([]bool, n)
		for si, s := range slots {
			elig[ci][si] = IsEligible(s.Slot.Kind, c.Player)
		}
	}

	superset := func(a, b []bool) (ok, strict bool) {
		for i := range a {
			if b[i] && !a[i] {
				return false, false
			}
			if a[i] && !b[i] {
				strict = true
			}
		}
		return true, strict
	}

	kept := make([]Candidate, 0, len(cands))
	for ci, c := range cands {
		if !anyTrue(elig[ci]) {
			continue
		}
		wc, sc := weight(c), c.Salary()
		dominators := 0
		for di, d := range cands {
			if di == ci || d.Player.Kind != c.Player.Kind {
				continue
			}
			wd, sd := weight(d), d.Salary()
			if wd < wc || sd > sc {
				continue
			}
			ok, strictSet := superset(elig[di], elig[ci])
			if !ok {
				continue
			}
			if wd > wc || sd < sc || strictSet || di < ci {
				dominators++
				if dominators >= n {
					break
				}
			}
		}
		if dominators < n {
			kept = append(kept, c)
		}
	}
	return kept
}

func anyTrue(b []bool) bool {
	for _, v := range b {
		if v {
			return true
		}
	}
	return false
}
