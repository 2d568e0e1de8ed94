package handlers

import (
	"context"
	"io"

	"github.com/jclfantasy/optimizer-api/internal/logic"
	"github.com/jclfantasy/optimizer-api/internal/models"
)

// MockOptimizerService
type MockOptimizerService struct {
	OptimizeFunc   func(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error)
	TopScoresFunc  func(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error)
	RecentRunsFunc func(ctx context.Context, q logic.RunQuery) ([]models.OptimizationRun, error)
	RunStatsFunc   func(ctx context.Context, q logic.RunQuery, dimension string) ([]models.RunStat, error)
}

func (m *MockOptimizerService) Optimize(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
	if m.OptimizeFunc != nil {
		return m.OptimizeFunc(ctx, req)
	}
	return &models.OptimizationResult{TeamID: req.TeamID, Status: models.StatusOptimal, Optimal: true}, nil
}

func (m *MockOptimizerService) TopScores(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error) {
	if m.TopScoresFunc != nil {
		return m.TopScoresFunc(ctx, teamID, kind, limit)
	}
	return nil, nil
}

func (m *MockOptimizerService) RecentRuns(ctx context.Context, q logic.RunQuery) ([]models.OptimizationRun, error) {
	if m.RecentRunsFunc != nil {
		return m.RecentRunsFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockOptimizerService) RunStats(ctx context.Context, q logic.RunQuery, dimension string) ([]models.RunStat, error) {
	if m.RunStatsFunc != nil {
		return m.RunStatsFunc(ctx, q, dimension)
	}
	return nil, nil
}

// MockRosterService
type MockRosterService struct {
	GetTeamOverviewFunc func(ctx context.Context, teamID int64) (*models.TeamOverview, error)
	ListFreeAgentsFunc  func(ctx context.Context, kind models.PlayerKind, slotLabel string) ([]*models.Player, error)
}

func (m *MockRosterService) GetTeamOverview(ctx context.Context, teamID int64) (*models.TeamOverview, error) {
	if m.GetTeamOverviewFunc != nil {
		return m.GetTeamOverviewFunc(ctx, teamID)
	}
	return &models.TeamOverview{}, nil
}

func (m *MockRosterService) ListFreeAgents(ctx context.Context, kind models.PlayerKind, slotLabel string) ([]*models.Player, error) {
	if m.ListFreeAgentsFunc != nil {
		return m.ListFreeAgentsFunc(ctx, kind, slotLabel)
	}
	return nil, nil
}

// MockThresholdService
type MockThresholdService struct {
	ListModelsFunc    func(ctx context.Context) ([]models.ThresholdSummary, error)
	GetModelFunc      func(ctx context.Context, modelID int64) (*models.ThresholdModel, error)
	CreateModelFunc   func(ctx context.Context, req *models.CreateThresholdRequest) (*models.ThresholdModel, error)
	UploadSeasonsFunc func(ctx context.Context, name, description string, csv io.Reader) (*models.UploadSummary, error)
	DeleteModelFunc   func(ctx context.Context, modelID int64) error
	WhatIfFunc        func(ctx context.Context, modelID int64, adjustments map[models.Category]float64) (*models.WhatIfResult, error)
}

func (m *MockThresholdService) ListModels(ctx context.Context) ([]models.ThresholdSummary, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []models.ThresholdSummary{}, nil
}

func (m *MockThresholdService) GetModel(ctx context.Context, modelID int64) (*models.ThresholdModel, error) {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(ctx, modelID)
	}
	return &models.ThresholdModel{ID: modelID}, nil
}

func (m *MockThresholdService) CreateModel(ctx context.Context, req *models.CreateThresholdRequest) (*models.ThresholdModel, error) {
	if m.CreateModelFunc != nil {
		return m.CreateModelFunc(ctx, req)
	}
	return &models.ThresholdModel{ID: 1, Name: req.Name}, nil
}

func (m *MockThresholdService) UploadSeasons(ctx context.Context, name, description string, csv io.Reader) (*models.UploadSummary, error) {
	if m.UploadSeasonsFunc != nil {
		return m.UploadSeasonsFunc(ctx, name, description, csv)
	}
	return &models.UploadSummary{ModelID: 1}, nil
}

func (m *MockThresholdService) DeleteModel(ctx context.Context, modelID int64) error {
	if m.DeleteModelFunc != nil {
		return m.DeleteModelFunc(ctx, modelID)
	}
	return nil
}

func (m *MockThresholdService) WhatIf(ctx context.Context, modelID int64, adjustments map[models.Category]float64) (*models.WhatIfResult, error) {
	if m.WhatIfFunc != nil {
		return m.WhatIfFunc(ctx, modelID, adjustments)
	}
	return &models.WhatIfResult{ModelID: modelID}, nil
}

// MockRunQueue
type MockRunQueue struct {
	Depth int
}

func (m *MockRunQueue) QueueDepth() int { return m.Depth }
