package logic

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// MockRosterStore
type MockRosterStore struct {
	GetTeamFunc        func(ctx context.Context, teamID int64) (*models.Team, error)
	GetRosterFunc      func(ctx context.Context, teamID int64) ([]*models.Player, error)
	ListFreeAgentsFunc func(ctx context.Context, filter FreeAgentFilter) ([]*models.Player, error)
	AssignSlotsFunc    func(ctx context.Context, teamID int64, assignments []SlotAssignment) error
}

func (m *MockRosterStore) GetTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(ctx, teamID)
	}
	return &models.Team{ID: teamID}, nil
}

func (m *MockRosterStore) GetRoster(ctx context.Context, teamID int64) ([]*models.Player, error) {
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockRosterStore) ListFreeAgents(ctx context.Context, filter FreeAgentFilter) ([]*models.Player, error) {
	if m.ListFreeAgentsFunc != nil {
		return m.ListFreeAgentsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockRosterStore) AssignSlots(ctx context.Context, teamID int64, assignments []SlotAssignment) error {
	if m.AssignSlotsFunc != nil {
		return m.AssignSlotsFunc(ctx, teamID, assignments)
	}
	return nil
}

// MockThresholdStore
type MockThresholdStore struct {
	ListModelsFunc  func(ctx context.Context) ([]models.ThresholdSummary, error)
	GetModelFunc    func(ctx context.Context, modelID int64) (*models.ThresholdModel, error)
	CreateModelFunc func(ctx context.Context, model *models.ThresholdModel, seasons []models.TeamSeason) (int64, error)
	DeleteModelFunc func(ctx context.Context, modelID int64) error
}

func (m *MockThresholdStore) ListModels(ctx context.Context) ([]models.ThresholdSummary, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return nil, nil
}

func (m *MockThresholdStore) GetModel(ctx context.Context, modelID int64) (*models.ThresholdModel, error) {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(ctx, modelID)
	}
	return nil, notFoundf("threshold model %d", modelID)
}

func (m *MockThresholdStore) CreateModel(ctx context.Context, model *models.ThresholdModel, seasons []models.TeamSeason) (int64, error) {
	if m.CreateModelFunc != nil {
		return m.CreateModelFunc(ctx, model, seasons)
	}
	model.ID = 1
	return 1, nil
}

func (m *MockThresholdStore) DeleteModel(ctx context.Context, modelID int64) error {
	if m.DeleteModelFunc != nil {
		return m.DeleteModelFunc(ctx, modelID)
	}
	return nil
}

// MockScoreStore
type MockScoreStore struct {
	SaveScoresFunc func(ctx context.Context, teamID int64, scores []models.ScoredPlayer) error
	TopScoresFunc  func(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error)
}

func (m *MockScoreStore) SaveScores(ctx context.Context, teamID int64, scores []models.ScoredPlayer) error {
	if m.SaveScoresFunc != nil {
		return m.SaveScoresFunc(ctx, teamID, scores)
	}
	return nil
}

func (m *MockScoreStore) TopScores(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error) {
	if m.TopScoresFunc != nil {
		return m.TopScoresFunc(ctx, teamID, kind, limit)
	}
	return nil, nil
}

// MockRecorder keeps every recorded run.
type MockRecorder struct {
	mu   sync.Mutex
	Runs []*models.OptimizationRun
	Full bool
}

func (m *MockRecorder) Record(run *models.OptimizationRun) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Full {
		return false
	}
	m.Runs = append(m.Runs, run)
	return true
}

// MockPgPool
type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockPgRow{Err: pgx.ErrNoRows}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockPgPool) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }

// MockPgRow
type MockPgRow struct {
	Err error
}

func (m *MockPgRow) Scan(dest ...any) error { return m.Err }

// MockPgRows serves fixed rows; each row's values are copied into Scan's
// destinations by position.
type MockPgRows struct {
	pgx.Rows
	Data  [][]any
	index int
}

func (m *MockPgRows) Next() bool {
	m.index++
	return m.index <= len(m.Data)
}

func (m *MockPgRows) Scan(dest ...any) error {
	row := m.Data[m.index-1]
	for i, v := range row {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *string:
			*d = v.(string)
		case *float64:
			*d = v.(float64)
		}
	}
	return nil
}

func (m *MockPgRows) Close()     {}
func (m *MockPgRows) Err() error { return nil }

// MockRedis is an in-memory sorted-set store. Writes only happen through
// TxPipelined and apply all at once.
type MockRedis struct {
	mu      sync.Mutex
	Sets    map[string][]redis.Z
	TTLs    map[string]time.Duration
	ReadErr error
	FailAdd bool
	Reads   int
	Execs   int
}

func NewMockRedis() *MockRedis {
	return &MockRedis{Sets: map[string][]redis.Z{}, TTLs: map[string]time.Duration{}}
}

func (m *MockRedis) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.ReadErr != nil {
		return redis.NewZSliceCmdResult(nil, m.ReadErr)
	}
	set := append([]redis.Z(nil), m.Sets[key]...)
	// Members are added best first in these tests; keep a stable descending order.
	for i := 1; i < len(set); i++ {
		for j := i; j > 0 && set[j].Score > set[j-1].Score; j-- {
			set[j], set[j-1] = set[j-1], set[j]
		}
	}
	if int(start) >= len(set) {
		return redis.NewZSliceCmdResult([]redis.Z{}, nil)
	}
	end := int(stop) + 1
	if stop < 0 || end > len(set) {
		end = len(set)
	}
	return redis.NewZSliceCmdResult(set[start:end], nil)
}

func (m *MockRedis) TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	pipe := &mockTx{}
	if err := fn(pipe); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Execs++
	if pipe.zadd && m.FailAdd {
		return nil, errMockRedisDown
	}
	for _, op := range pipe.ops {
		op(m)
	}
	return nil, nil
}

// mockTx queues the commands the score store sends in a transaction. Any
// other Pipeliner method panics through the nil embedded interface.
type mockTx struct {
	redis.Pipeliner
	ops  []func(*MockRedis)
	zadd bool
}

func (p *mockTx) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	p.ops = append(p.ops, func(m *MockRedis) {
		for _, k := range keys {
			delete(m.Sets, k)
		}
	})
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (p *mockTx) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	p.zadd = true
	p.ops = append(p.ops, func(m *MockRedis) {
		m.Sets[key] = append(m.Sets[key], members...)
	})
	return redis.NewIntResult(int64(len(members)), nil)
}

func (p *mockTx) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	p.ops = append(p.ops, func(m *MockRedis) {
		m.TTLs[key] = expiration
	})
	return redis.NewBoolResult(true, nil)
}
