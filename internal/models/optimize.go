package models

import "time"

// Scope selects which side of the roster an optimization fills.
type Scope string

const (
	ScopeHitting  Scope = "hitting"
	ScopePitching Scope = "pitching"
	ScopeBoth     Scope = "both"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeHitting || s == ScopePitching || s == ScopeBoth
}

// OptimizationRequest is the body of POST /teams/{id}/optimize.
type OptimizationRequest struct {
	TeamID     int64      `json:"-"`
	ModelID    int64      `json:"model_id" validate:"required,gt=0"`
	Budget     *FlexFloat `json:"budget" validate:"required,gte=0"`
	Scope      Scope      `json:"scope" validate:"required,oneof=hitting pitching both"`
	BenchQuota int        `json:"bench_quota" validate:"gte=0"`
	Apply      bool       `json:"apply"`
}

// BudgetValue returns the budget, or 0 when unset.
func (r *OptimizationRequest) BudgetValue() float64 {
	if r.Budget == nil {
		return 0
	}
	return float64(*r.Budget)
}

// SolveStatus reports how a solve ended.
type SolveStatus string

const (
	StatusOptimal    SolveStatus = "optimal"
	StatusSuboptimal SolveStatus = "suboptimal"
	StatusInfeasible SolveStatus = "infeasible"
	StatusTimedOut   SolveStatus = "timed_out"
)

// Assignment is one free agent placed in one slot.
type Assignment struct {
	PlayerID         int64      `json:"player_id"`
	Name             string     `json:"name"`
	Kind             PlayerKind `json:"kind"`
	Slot             string     `json:"slot"`
	SlotID           int64      `json:"slot_id"`
	OriginalPosition string     `json:"original_position"`
	Salary           float64    `json:"salary"`
	StandardGain     float64    `json:"standard_gain"`
}

// SolverStats describes the size and effort of a solve.
type SolverStats struct {
	Candidates        int           `json:"candidates"`
	ReducedCandidates int           `json:"reduced_candidates"`
	Variables         int           `json:"variables"`
	Constraints       int           `json:"constraints"`
	Nodes             int           `json:"nodes"`
	Duration          time.Duration `json:"duration_ns"`
}

// OptimizationResult is a successful (optimal or flagged suboptimal) solve.
type OptimizationResult struct {
	RunID       string       `json:"run_id"`
	TeamID      int64        `json:"team_id"`
	ModelID     int64        `json:"model_id"`
	Scope       Scope        `json:"scope"`
	Status      SolveStatus  `json:"status"`
	Optimal     bool         `json:"optimal"`
	Applied     bool         `json:"applied"`
	Assignments []Assignment `json:"assignments"`
	TotalCost   float64      `json:"total_cost"`
	TotalGain   float64      `json:"total_standard_gain"`
	Gaps        StatLine     `json:"gaps"`
	Current     StatLine     `json:"current_aggregates"`
	Projected   StatLine     `json:"projected_aggregates"`
	Stats       SolverStats  `json:"solver"`
}

// OptimizationRun is the history record of one optimize call.
type OptimizationRun struct {
	RunID      string    `json:"run_id"`
	TeamID     int64     `json:"team_id"`
	ModelID    int64     `json:"model_id"`
	Scope      string    `json:"scope"`
	Budget     float64   `json:"budget"`
	Status     string    `json:"status"`
	TotalCost  float64   `json:"total_cost"`
	TotalGain  float64   `json:"total_standard_gain"`
	Assigned   uint32    `json:"assigned"`
	Variables  uint32    `json:"variables"`
	Nodes      uint32    `json:"nodes"`
	DurationMs float64   `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunStat is one group of a run-history summary.
type RunStat struct {
	Label         string  `json:"label"`
	Runs          uint64  `json:"runs"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
	AvgGain       float64 `json:"avg_standard_gain"`
	AvgCost       float64 `json:"avg_cost"`
}
