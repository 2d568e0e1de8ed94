package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/logic"
)

// MaxBodySize limits the size of JSON request bodies to 1MB
const MaxBodySize = 1048576

// RunQueue is the run history worker pool as seen by the readiness check.
type RunQueue interface {
	QueueDepth() int
}

type Config struct {
	WorkerPool RunQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger

	DefaultTopN    int
	MaxUploadBytes int64

	// Services
	Optimizer  logic.OptimizerService
	Rosters    logic.RosterService
	Thresholds logic.ThresholdService
}

type Handler struct {
	pool      RunQueue
	pg        *pgxpool.Pool
	ch        driver.Conn
	redis     *redis.Client
	logger    *zap.SugaredLogger
	validator *validator.Validate

	defaultTopN    int
	maxUploadBytes int64

	optimizer  logic.OptimizerService
	rosters    logic.RosterService
	thresholds logic.ThresholdService
}

func New(cfg Config) *Handler {
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 25
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	return &Handler{
		pool:           cfg.WorkerPool,
		pg:             cfg.Postgres,
		ch:             cfg.ClickHouse,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		validator:      validator.New(),
		defaultTopN:    cfg.DefaultTopN,
		maxUploadBytes: cfg.MaxUploadBytes,
		optimizer:      cfg.Optimizer,
		rosters:        cfg.Rosters,
		thresholds:     cfg.Thresholds,
	}
}
