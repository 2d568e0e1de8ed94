package logic

import (
	"math"
	"sort"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// seedAssignment builds a feasible starting assignment for the solver, or nil
// when the heuristic finds none. The search only has to beat it, so a large
// pool that runs out of time still returns a full roster.
func seedAssignment(ap *assignmentProblem, spec problemSpec) []bool {
	if spec.MaxFill {
		return seedMaxFill(ap, spec)
	}
	varAt := ap.varIndex()
	allowed := benchKinds(ap.slots, spec.Caps)
	fits := func(s, c int) bool {
		return varAt[s][c] >= 0 && allowed(s, ap.candidates[c].Player)
	}

	// Cheapest full roster first, then trade up while the budget allows.
	assign, spend, ok := hungarian(len(ap.slots), len(ap.candidates), func(s, c int) float64 {
		if !fits(s, c) {
			return math.Inf(1)
		}
		return ap.candidates[c].Salary()
	})
	if !ok || spend > spec.Budget+budgetTol {
		return nil
	}

	inUse := make([]bool, len(ap.candidates))
	for _, c := range assign {
		inUse[c] = true
	}
	for round := 0; round < 10*len(ap.slots); round++ {
		bestDelta, bestSlot, bestCand := 1e-9, -1, -1
		for s, cur := range assign {
			curCand := ap.candidates[cur]
			for c, cand := range ap.candidates {
				if inUse[c] || !fits(s, c) {
					continue
				}
				if spend-curCand.Salary()+cand.Salary() > spec.Budget+budgetTol {
					continue
				}
				if d := cand.Gain - curCand.Gain; d > bestDelta {
					bestDelta, bestSlot, bestCand = d, s, c
				}
			}
		}
		if bestSlot < 0 {
			break
		}
		old := assign[bestSlot]
		spend += ap.candidates[bestCand].Salary() - ap.candidates[old].Salary()
		inUse[old], inUse[bestCand] = false, true
		assign[bestSlot] = bestCand
	}

	values := make([]bool, len(ap.vars))
	for s, c := range assign {
		values[varAt[s][c]] = true
	}
	return values
}

// seedMaxFill fills the most constrained slots first with the cheapest
// affordable candidate.
func seedMaxFill(ap *assignmentProblem, spec problemSpec) []bool {
	varAt := ap.varIndex()
	allowed := benchKinds(ap.slots, spec.Caps)
	order := make([]int, len(ap.slots))
	options := make([]int, len(ap.slots))
	for s := range ap.slots {
		order[s] = s
		for c := range ap.candidates {
			if varAt[s][c] >= 0 {
				options[s]++
			}
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return options[order[i]] < options[order[j]] })

	values := make([]bool, len(ap.vars))
	inUse := make([]bool, len(ap.candidates))
	left := spec.Budget
	for _, s := range order {
		best := -1
		for c, cand := range ap.candidates {
			if inUse[c] || varAt[s][c] < 0 || !allowed(s, cand.Player) || cand.Salary() > left+budgetTol {
				continue
			}
			if best < 0 || cand.Salary() < ap.candidates[best].Salary() {
				best = c
			}
		}
		if best < 0 {
			continue
		}
		inUse[best] = true
		left -= ap.candidates[best].Salary()
		values[varAt[s][best]] = true
	}
	return values
}

// benchKinds reserves the first Caps.Hitters open bench slots for hitters and
// the next Caps.Pitchers for pitchers. Bench slots are interchangeable, so a
// full assignment within the caps can always be reordered to fit this split.
func benchKinds(slots []OpenSlot, caps *BenchCaps) func(s int, p *models.Player) bool {
	if caps == nil {
		return func(int, *models.Player) bool { return true }
	}
	kinds := make([]models.PlayerKind, len(slots))
	n := 0
	for s, slot := range slots {
		if slot.Side != SideAny {
			continue
		}
		switch {
		case n < caps.Hitters:
			kinds[s] = models.KindHitter
		case n < caps.Hitters+caps.Pitchers:
			kinds[s] = models.KindPitcher
		}
		n++
	}
	return func(s int, p *models.Player) bool {
		return kinds[s] == "" || p.Kind == kinds[s]
	}
}
