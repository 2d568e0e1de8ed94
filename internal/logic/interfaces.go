package logic

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// ===== STORES =====

// FreeAgentFilter narrows a free-agent query. Zero values mean no filter.
type FreeAgentFilter struct {
	Kind      models.PlayerKind
	Positions []models.Position
}

// SlotAssignment places a player in a team slot.
type SlotAssignment struct {
	SlotID   int64
	PlayerID int64
}

// RosterStore reads and writes teams, slots and players.
type RosterStore interface {
	GetTeam(ctx context.Context, teamID int64) (*models.Team, error)
	GetRoster(ctx context.Context, teamID int64) ([]*models.Player, error)
	ListFreeAgents(ctx context.Context, filter FreeAgentFilter) ([]*models.Player, error)
	AssignSlots(ctx context.Context, teamID int64, assignments []SlotAssignment) error
}

// ThresholdStore persists threshold models and the analysis behind them.
type ThresholdStore interface {
	ListModels(ctx context.Context) ([]models.ThresholdSummary, error)
	GetModel(ctx context.Context, modelID int64) (*models.ThresholdModel, error)
	CreateModel(ctx context.Context, model *models.ThresholdModel, seasons []models.TeamSeason) (int64, error)
	DeleteModel(ctx context.Context, modelID int64) error
}

// ScoreStore keeps the latest standard-gain score per team and player.
type ScoreStore interface {
	SaveScores(ctx context.Context, teamID int64, scores []models.ScoredPlayer) error
	TopScores(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error)
}

// RunRecorder queues optimization runs for the history sink.
type RunRecorder interface {
	Record(run *models.OptimizationRun) bool
}

// RunHistory reads recorded optimization runs.
type RunHistory interface {
	RecentRuns(ctx context.Context, q RunQuery) ([]models.OptimizationRun, error)
	RunStats(ctx context.Context, q RunQuery, dimension string) ([]models.RunStat, error)
}

// ===== SERVICES =====

// OptimizerService runs the scoring and assignment pipeline for a team.
type OptimizerService interface {
	Optimize(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error)
	TopScores(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error)
	RecentRuns(ctx context.Context, q RunQuery) ([]models.OptimizationRun, error)
	RunStats(ctx context.Context, q RunQuery, dimension string) ([]models.RunStat, error)
}

// RosterService serves roster lookups.
type RosterService interface {
	GetTeamOverview(ctx context.Context, teamID int64) (*models.TeamOverview, error)
	ListFreeAgents(ctx context.Context, kind models.PlayerKind, slotLabel string) ([]*models.Player, error)
}

// ThresholdService manages threshold models.
type ThresholdService interface {
	ListModels(ctx context.Context) ([]models.ThresholdSummary, error)
	GetModel(ctx context.Context, modelID int64) (*models.ThresholdModel, error)
	CreateModel(ctx context.Context, req *models.CreateThresholdRequest) (*models.ThresholdModel, error)
	UploadSeasons(ctx context.Context, name, description string, csv io.Reader) (*models.UploadSummary, error)
	DeleteModel(ctx context.Context, modelID int64) error
	WhatIf(ctx context.Context, modelID int64, adjustments map[models.Category]float64) (*models.WhatIfResult, error)
}
