package logic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// OptimizerDeps wires an OptimizerService.
type OptimizerDeps struct {
	Rosters    RosterStore
	Thresholds ThresholdStore
	Scores     ScoreStore
	Recorder   RunRecorder // optional
	History    RunHistory  // optional
	Optimizer  *Optimizer
	Scorer     *Scorer
	Logger     *zap.Logger
}

type optimizerService struct {
	rosters    RosterStore
	thresholds ThresholdStore
	scores     ScoreStore
	recorder   RunRecorder
	history    RunHistory
	optimizer  *Optimizer
	scorer     *Scorer
	logger     *zap.SugaredLogger
}

func NewOptimizerService(deps OptimizerDeps) OptimizerService {
	if deps.Scorer == nil {
		deps.Scorer = NewScorer()
	}
	if deps.Optimizer == nil {
		deps.Optimizer = NewOptimizer(DefaultSolveTimeout, deps.Logger)
	}
	return &optimizerService{
		rosters:    deps.Rosters,
		thresholds: deps.Thresholds,
		scores:     deps.Scores,
		recorder:   deps.Recorder,
		history:    deps.History,
		optimizer:  deps.Optimizer,
		scorer:     deps.Scorer,
		logger:     deps.Logger.Sugar(),
	}
}

func validateOptimization(req *models.OptimizationRequest) error {
	switch {
	case req == nil:
		return invalidf("missing request")
	case req.TeamID <= 0:
		return invalidf("team id must be positive")
	case req.ModelID <= 0:
		return invalidf("model id must be positive")
	case req.Budget == nil:
		return invalidf("budget is required")
	case math.IsInf(req.BudgetValue(), 0) || math.IsNaN(req.BudgetValue()):
		return invalidf("budget must be a finite number")
	case req.BudgetValue() < 0:
		return invalidf("budget must not be negative")
	case !req.Scope.Valid():
		return invalidf("scope must be one of hitting, pitching, both")
	case req.BenchQuota < 0:
		return invalidf("bench quota must not be negative")
	}
	return nil
}

// scopeKind is the free-agent kind a scope draws from; empty means both.
func scopeKind(scope models.Scope) models.PlayerKind {
	switch scope {
	case models.ScopeHitting:
		return models.KindHitter
	case models.ScopePitching:
		return models.KindPitcher
	}
	return ""
}

// Optimize scores the free-agent pool against the team's gaps and assigns the
// best affordable set to the team's open slots.
func (s *optimizerService) Optimize(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
	if err := validateOptimization(req); err != nil {
		return nil, err
	}
	start := time.Now()
	runID := uuid.NewString()

	var (
		team       *models.Team
		roster     []*models.Player
		model      *models.ThresholdModel
		freeAgents []*models.Player
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.rosters.GetTeam(gctx, req.TeamID)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = s.rosters.GetRoster(gctx, req.TeamID)
		return err
	})
	g.Go(func() error {
		var err error
		model, err = s.thresholds.GetModel(gctx, req.ModelID)
		return err
	})
	g.Go(func() error {
		var err error
		freeAgents, err = s.rosters.ListFreeAgents(gctx, FreeAgentFilter{Kind: scopeKind(req.Scope)})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(model.Targets) == 0 {
		return nil, invalidf("threshold model %d has no targets", model.ID)
	}

	hitters, pitchers := splitByKind(roster)
	current := AggregateStats(hitters, pitchers)
	gaps := ComputeGaps(current, model.Targets)

	slots, caps, err := SelectOpenSlots(team, req.Scope, req.BenchQuota)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(freeAgents))
	scored := make([]models.ScoredPlayer, 0, len(freeAgents))
	for _, p := range freeAgents {
		if !p.IsFreeAgent() {
			continue
		}
		gain := s.scorer.StandardGain(p, current, gaps)
		p.StandardGain = gain
		candidates = append(candidates, Candidate{Player: p, Gain: gain})
		scored = append(scored, models.ScoredPlayer{PlayerID: p.ID, Name: p.Name, Kind: p.Kind, StandardGain: gain})
	}
	rankScores(scored)
	if err := s.scores.SaveScores(ctx, req.TeamID, scored); err != nil {
		s.logger.Warnw("Failed to persist standard gain", "team", req.TeamID, "run", runID, "error", err)
	}

	out, err := s.optimizer.Optimize(ctx, OptimizeInput{
		Candidates: candidates,
		Slots:      slots,
		Budget:     req.BudgetValue(),
		Caps:       caps,
	})
	if err != nil {
		if errors.Is(err, ErrNoFeasibleAssignment) {
			s.record(req, runID, statusOf(err), nil, start)
		}
		return nil, err
	}

	result := &models.OptimizationResult{
		RunID:       runID,
		TeamID:      req.TeamID,
		ModelID:     req.ModelID,
		Scope:       req.Scope,
		Status:      out.Status,
		Optimal:     out.Status == models.StatusOptimal,
		Assignments: make([]models.Assignment, 0, len(out.Picks)),
		TotalCost:   out.TotalCost,
		TotalGain:   out.TotalGain,
		Gaps:        gaps,
		Current:     current,
		Stats:       out.Stats,
	}
	projectedHitters := append([]*models.Player(nil), hitters...)
	projectedPitchers := append([]*models.Player(nil), pitchers...)
	updates := make([]SlotAssignment, 0, len(out.Picks))
	for _, pk := range out.Picks {
		p := pk.Candidate.Player
		result.Assignments = append(result.Assignments, models.Assignment{
			PlayerID:         p.ID,
			Name:             p.Name,
			Kind:             p.Kind,
			Slot:             pk.Slot.Slot.Label,
			SlotID:           pk.Slot.Slot.ID,
			OriginalPosition: p.PositionString(),
			Salary:           pk.Candidate.Salary(),
			StandardGain:     pk.Candidate.Gain,
		})
		updates = append(updates, SlotAssignment{SlotID: pk.Slot.Slot.ID, PlayerID: p.ID})
		if p.Kind == models.KindHitter {
			projectedHitters = append(projectedHitters, p)
		} else {
			projectedPitchers = append(projectedPitchers, p)
		}
	}
	result.Projected = AggregateStats(projectedHitters, projectedPitchers)

	if req.Apply && len(updates) > 0 {
		if err := s.rosters.AssignSlots(ctx, req.TeamID, updates); err != nil {
			return nil, fmt.Errorf("apply assignment: %w", err)
		}
		result.Applied = true
	}

	s.record(req, runID, out.Status, out, start)
	s.logger.Infow("Optimization complete",
		"run", runID, "team", req.TeamID, "scope", req.Scope, "status", out.Status,
		"assigned", len(result.Assignments), "cost", result.TotalCost, "gain", result.TotalGain)
	return result, nil
}

func statusOf(err error) models.SolveStatus {
	if errors.Is(err, ErrSolverTimeout) {
		return models.StatusTimedOut
	}
	return models.StatusInfeasible
}

// rankScores orders scores best first and numbers them from 1.
func rankScores(scored []models.ScoredPlayer) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].StandardGain != scored[j].StandardGain {
			return scored[i].StandardGain > scored[j].StandardGain
		}
		return scored[i].PlayerID < scored[j].PlayerID
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
}

func (s *optimizerService) record(req *models.OptimizationRequest, runID string, status models.SolveStatus, out *OptimizeOutput, start time.Time) {
	if s.recorder == nil {
		return
	}
	run := &models.OptimizationRun{
		RunID:      runID,
		TeamID:     req.TeamID,
		ModelID:    req.ModelID,
		Scope:      string(req.Scope),
		Budget:     req.BudgetValue(),
		Status:     string(status),
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
		CreatedAt:  time.Now().UTC(),
	}
	if out != nil {
		run.TotalCost = out.TotalCost
		run.TotalGain = out.TotalGain
		run.Assigned = uint32(len(out.Picks))
		run.Variables = uint32(out.Stats.Variables)
		run.Nodes = uint32(out.Stats.Nodes)
	}
	if !s.recorder.Record(run) {
		s.logger.Warnw("Run history queue full, dropping run", "run", runID)
	}
}

func (s *optimizerService) TopScores(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error) {
	if !kind.Valid() {
		return nil, invalidf("kind must be hitter or pitcher")
	}
	if _, err := s.rosters.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return s.scores.TopScores(ctx, teamID, kind, limit)
}

func (s *optimizerService) RecentRuns(ctx context.Context, q RunQuery) ([]models.OptimizationRun, error) {
	if s.history == nil {
		return []models.OptimizationRun{}, nil
	}
	return s.history.RecentRuns(ctx, q)
}

func (s *optimizerService) RunStats(ctx context.Context, q RunQuery, dimension string) ([]models.RunStat, error) {
	if s.history == nil {
		return []models.RunStat{}, nil
	}
	return s.history.RunStats(ctx, q, dimension)
}
