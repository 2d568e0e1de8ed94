package logic

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/models"
	"github.com/jclfantasy/optimizer-api/internal/solver"
)

// Prometheus metrics
var (
	optimizerRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fantasy_optimizer_runs_total",
		Help: "Optimizer runs by outcome",
	}, []string{"status"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fantasy_optimizer_solve_duration_seconds",
		Help:    "Wall time spent in the branch-and-bound solver",
		Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
	})

	solveNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fantasy_optimizer_nodes",
		Help:    "Branch-and-bound nodes explored per solve",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// DefaultSolveTimeout bounds a single optimization when no timeout is configured.
const DefaultSolveTimeout = 30 * time.Second

// DefaultLPLimit is the largest problem, in variables, bounded with the simplex
// relaxation. Larger pools use the Lagrangian matching bound.
const DefaultLPLimit = 150

// SelectOpenSlots picks the slots one optimization must fill.
//
// benchQuota is the number of open bench slots reserved for hitters; pitchers
// get the rest. Hitting runs fill hitter slots plus the first benchQuota open
// bench slots, pitching runs fill pitcher slots plus the remaining bench slots,
// and combined runs fill everything with per-kind bench caps.
func SelectOpenSlots(team *models.Team, scope models.Scope, benchQuota int) ([]OpenSlot, *BenchCaps, error) {
	if !scope.Valid() {
		return nil, nil, invalidf("unknown scope %q", scope)
	}
	var hitters, pitchers, bench []OpenSlot
	for _, s := range team.Slots {
		if !s.IsOpen() {
			continue
		}
		side, ok := SideOf(s.Kind)
		if !ok {
			continue
		}
		open := OpenSlot{Slot: s, Side: side}
		switch side {
		case SideHitter:
			hitters = append(hitters, open)
		case SidePitcher:
			pitchers = append(pitchers, open)
		case SideAny:
			bench = append(bench, open)
		}
	}
	if benchQuota < 0 || benchQuota > len(bench) {
		return nil, nil, invalidf("bench quota %d outside 0..%d open bench slots", benchQuota, len(bench))
	}

	switch scope {
	case models.ScopeHitting:
		return append(hitters, bench[:benchQuota]...), nil, nil
	case models.ScopePitching:
		return append(pitchers, bench[benchQuota:]...), nil, nil
	default:
		all := append(append(hitters, pitchers...), bench...)
		return all, &BenchCaps{Hitters: benchQuota, Pitchers: len(bench) - benchQuota}, nil
	}
}

// OptimizeInput is everything one solve needs.
type OptimizeInput struct {
	Candidates []Candidate
	Slots      []OpenSlot
	Budget     float64
	Caps       *BenchCaps
}

// OptimizeOutput is an accepted assignment.
type OptimizeOutput struct {
	Status    models.SolveStatus
	Picks     []pick
	TotalCost float64
	TotalGain float64
	Stats     models.SolverStats
}

// Optimizer assigns scored candidates to open slots under a budget.
type Optimizer struct {
	timeout    time.Duration
	lpLimit    int
	solverOpts []solver.Option
	logger     *zap.SugaredLogger
}

// OptimizerOption configures an Optimizer.
type OptimizerOption func(*Optimizer)

// WithSolverOptions passes extra options to every solve, after the defaults.
func WithSolverOptions(opts ...solver.Option) OptimizerOption {
	return func(o *Optimizer) {
		o.solverOpts = append(o.solverOpts, opts...)
	}
}

// WithLPLimit sets the variable count above which nodes are bounded by the
// matching relaxation instead of the simplex. Zero always uses the matching.
func WithLPLimit(n int) OptimizerOption {
	return func(o *Optimizer) {
		if n >= 0 {
			o.lpLimit = n
		}
	}
}

// NewOptimizer returns an optimizer bounded by timeout per solve.
func NewOptimizer(timeout time.Duration, logger *zap.Logger, opts ...OptimizerOption) *Optimizer {
	if timeout <= 0 {
		timeout = DefaultSolveTimeout
	}
	o := &Optimizer{timeout: timeout, lpLimit: DefaultLPLimit, logger: logger.Sugar()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// solve runs branch-and-bound seeded with a heuristic assignment.
func (o *Optimizer) solve(ctx context.Context, ap *assignmentProblem, spec problemSpec) (*solver.Solution, error) {
	var opts []solver.Option
	if seed := seedAssignment(ap, spec); seed != nil {
		opts = append(opts, solver.WithIncumbent(seed))
	}
	if ap.program.NumVars > o.lpLimit {
		opts = append(opts, solver.WithRelaxer(newAssignmentRelaxer(ap, spec)))
	}
	return solver.Solve(ctx, ap.program, append(opts, o.solverOpts...)...)
}

// Optimize returns the value-maximizing assignment, or an *AssignmentError when
// none can be produced. A result whose Status is suboptimal is the best
// incumbent found before the deadline.
func (o *Optimizer) Optimize(ctx context.Context, in OptimizeInput) (*OptimizeOutput, error) {
	start := time.Now()
	out := &OptimizeOutput{Status: models.StatusOptimal}
	out.Stats.Candidates = len(in.Candidates)

	if len(in.Slots) == 0 {
		optimizerRuns.WithLabelValues(string(models.StatusOptimal)).Inc()
		return out, nil
	}
	if in.Budget < 0 || !isFinite(in.Budget) {
		return nil, invalidf("budget must be a finite, non-negative number")
	}
	for _, c := range in.Candidates {
		if !isFinite(c.Salary()) || !isFinite(c.Gain) {
			return nil, invalidf("player %d has a non-finite salary or gain", c.Player.ID)
		}
	}
	if missing := slotsWithoutCandidates(in.Candidates, in.Slots); len(missing) > 0 {
		optimizerRuns.WithLabelValues(string(models.StatusInfeasible)).Inc()
		return nil, &AssignmentError{UnfilledSlots: missing}
	}

	reduced := reduceCandidates(in.Candidates, in.Slots, func(c Candidate) float64 { return c.Gain })
	out.Stats.ReducedCandidates = len(reduced)

	spec := problemSpec{Budget: in.Budget, Caps: in.Caps}
	ap, err := buildAssignmentProblem(reduced, in.Slots, spec)
	if err != nil {
		return nil, fmt.Errorf("build assignment problem: %w", err)
	}
	out.Stats.Variables = ap.program.NumVars
	out.Stats.Constraints = len(ap.program.Constraints)

	solveCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	sol, err := o.solve(solveCtx, ap, spec)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	out.Stats.Nodes = sol.Nodes
	out.Stats.Duration = time.Since(start)
	solveDuration.Observe(out.Stats.Duration.Seconds())
	solveNodes.Observe(float64(sol.Nodes))

	switch {
	case sol.Status == solver.StatusOptimal:
		out.Status = models.StatusOptimal
	case sol.Status == solver.StatusTimedOut && sol.HasIncumbent:
		out.Status = models.StatusSuboptimal
		o.logger.Warnw("Solver deadline reached, returning incumbent",
			"nodes", sol.Nodes, "objective", sol.Objective, "timeout", o.timeout)
	case sol.Status == solver.StatusTimedOut:
		optimizerRuns.WithLabelValues(string(models.StatusTimedOut)).Inc()
		labels := make([]string, len(in.Slots))
		for i, s := range in.Slots {
			labels[i] = s.Slot.Label
		}
		return nil, &AssignmentError{UnfilledSlots: labels, TimedOut: true}
	default:
		optimizerRuns.WithLabelValues(string(models.StatusInfeasible)).Inc()
		return nil, &AssignmentError{UnfilledSlots: o.explainInfeasible(solveCtx, reduced, in)}
	}

	optimizerRuns.WithLabelValues(string(out.Status)).Inc()
	out.Picks = ap.extract(sol.Values)
	for _, p := range out.Picks {
		out.TotalCost += p.Candidate.Salary()
		out.TotalGain += p.Candidate.Gain
	}
	return out, nil
}

// explainInfeasible solves the max-fill variant of the same problem and
// reports the slots it still leaves empty. If that solve cannot finish, every
// open slot is reported.
func (o *Optimizer) explainInfeasible(ctx context.Context, reduced []Candidate, in OptimizeInput) []string {
	all := make([]string, len(in.Slots))
	for i, s := range in.Slots {
		all[i] = s.Slot.Label
	}

	fillPool := reduceCandidates(in.Candidates, in.Slots, func(Candidate) float64 { return 1 })
	spec := problemSpec{Budget: in.Budget, Caps: in.Caps, MaxFill: true}
	ap, err := buildAssignmentProblem(fillPool, in.Slots, spec)
	if err != nil {
		return all
	}
	sol, err := o.solve(ctx, ap, spec)
	if err != nil || !sol.HasIncumbent {
		o.logger.Warnw("Could not explain infeasible assignment", "error", err, "candidates", len(reduced))
		return all
	}
	if missing := ap.unfilled(sol.Values); len(missing) > 0 {
		return missing
	}
	return all
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
