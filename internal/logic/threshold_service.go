package logic

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

type thresholdService struct {
	store  ThresholdStore
	logger *zap.SugaredLogger
}

func NewThresholdService(store ThresholdStore, logger *zap.Logger) ThresholdService {
	return &thresholdService{store: store, logger: logger.Sugar()}
}

func (s *thresholdService) ListModels(ctx context.Context) ([]models.ThresholdSummary, error) {
	list, err := s.store.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.ThresholdSummary{}
	}
	return list, nil
}

func (s *thresholdService) GetModel(ctx context.Context, modelID int64) (*models.ThresholdModel, error) {
	if modelID <= 0 {
		return nil, invalidf("model id must be positive")
	}
	return s.store.GetModel(ctx, modelID)
}

// CreateModel stores a model built from explicit targets.
func (s *thresholdService) CreateModel(ctx context.Context, req *models.CreateThresholdRequest) (*models.ThresholdModel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	if len(req.Targets) == 0 {
		return nil, invalidf("at least one target is required")
	}
	targets := make(models.StatLine, len(req.Targets))
	for cat, v := range req.Targets {
		if !cat.Valid() {
			return nil, invalidf("unknown category %q", cat)
		}
		if v < 0 {
			return nil, invalidf("target for %s must not be negative", cat)
		}
		targets[cat] = v
	}

	m := &models.ThresholdModel{Name: name, Description: req.Description, Targets: targets}
	if _, err := s.store.CreateModel(ctx, m, nil); err != nil {
		return nil, err
	}
	s.logger.Infow("Threshold model created", "model", m.ID, "name", m.Name, "targets", len(targets))
	return m, nil
}

// UploadSeasons builds a model from a league-history CSV: benchmarks over the
// playoff teams, correlations over all teams, targets at the playoff means.
func (s *thresholdService) UploadSeasons(ctx context.Context, name, description string, csv io.Reader) (*models.UploadSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unnamed Model"
	}
	seasons, err := ParseTeamSeasons(csv)
	if err != nil {
		return nil, err
	}
	analysis, err := AnalyzeSeasons(seasons)
	if err != nil {
		return nil, err
	}

	m := &models.ThresholdModel{
		Name:         name,
		Description:  description,
		Targets:      analysis.Targets,
		Benchmarks:   analysis.Benchmarks,
		Correlations: analysis.Correlations,
	}
	id, err := s.store.CreateModel(ctx, m, seasons)
	if err != nil {
		return nil, err
	}

	summary := &models.UploadSummary{ModelID: id, Teams: len(seasons)}
	years := make(map[int]struct{})
	for _, season := range seasons {
		years[season.SeasonYear] = struct{}{}
		if season.MadePlayoffs {
			summary.PlayoffTeams++
		}
	}
	summary.Seasons = len(years)

	s.logger.Infow("Threshold model built from upload",
		"model", id, "teams", summary.Teams, "seasons", summary.Seasons, "playoff_teams", summary.PlayoffTeams)
	return summary, nil
}

func (s *thresholdService) DeleteModel(ctx context.Context, modelID int64) error {
	if modelID <= 0 {
		return invalidf("model id must be positive")
	}
	return s.store.DeleteModel(ctx, modelID)
}

// WhatIf extrapolates a model's benchmarks from the given adjustments.
func (s *thresholdService) WhatIf(ctx context.Context, modelID int64, adjustments map[models.Category]float64) (*models.WhatIfResult, error) {
	if len(adjustments) == 0 {
		return nil, invalidf("at least one adjustment is required")
	}
	m, err := s.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if len(m.Benchmarks) == 0 {
		return nil, invalidf("threshold model %d has no benchmarks", modelID)
	}
	results, err := WhatIf(m.Benchmarks, m.Correlations, adjustments)
	if err != nil {
		return nil, err
	}
	return &models.WhatIfResult{ModelID: modelID, Results: results}, nil
}
