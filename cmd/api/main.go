package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jclfantasy/optimizer-api/docs"
	"github.com/jclfantasy/optimizer-api/internal/config"
	"github.com/jclfantasy/optimizer-api/internal/handlers"
	"github.com/jclfantasy/optimizer-api/internal/logic"
	"github.com/jclfantasy/optimizer-api/internal/models"
	"github.com/jclfantasy/optimizer-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Sugar().Fatalw("Server exited with error", "error", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ===== Connections =====

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	pg, err := pgxpool.New(connectCtx, cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	defer pg.Close()
	if err := pg.Ping(connectCtx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}

	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		return fmt.Errorf("clickhouse dsn: %w", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		return fmt.Errorf("clickhouse open: %w", err)
	}
	defer ch.Close()
	if err := ch.Ping(connectCtx); err != nil {
		return fmt.Errorf("clickhouse ping: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(connectCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	// ===== Run history worker =====

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Logger:        logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	// ===== Services =====

	var scorerOpts []logic.ScorerOption
	if len(cfg.Scarcity) > 0 {
		table := make(map[models.Position]float64, len(cfg.Scarcity))
		for pos, w := range cfg.Scarcity {
			table[models.Position(pos)] = w
		}
		scorerOpts = append(scorerOpts, logic.WithScarcity(table))
	}

	rosterStore := logic.NewRosterStore(pg)
	thresholdStore := logic.NewThresholdStore(pg)

	h := handlers.New(handlers.Config{
		WorkerPool:     pool,
		Postgres:       pg,
		ClickHouse:     ch,
		Redis:          rdb,
		Logger:         logger,
		DefaultTopN:    cfg.DefaultTopN,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Optimizer: logic.NewOptimizerService(logic.OptimizerDeps{
			Rosters:    rosterStore,
			Thresholds: thresholdStore,
			Scores:     logic.NewScoreStore(pg, rdb, cfg.ScoreCacheTTL, logger),
			Recorder:   pool,
			History:    logic.NewRunHistory(ch),
			Optimizer:  logic.NewOptimizer(cfg.SolverTimeout, logger),
			Scorer:     logic.NewScorer(scorerOpts...),
			Logger:     logger,
		}),
		Rosters:    logic.NewRosterService(rosterStore),
		Thresholds: logic.NewThresholdService(thresholdStore, logger),
	})

	// ===== HTTP =====

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Routes(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		// Leave room for the solver deadline.
		WriteTimeout: cfg.SolverTimeout + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("HTTP server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
