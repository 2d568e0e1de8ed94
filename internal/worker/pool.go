// Package worker implements the buffered worker pool that ships optimization
// run records to ClickHouse. Requests enqueue and return; workers batch the
// inserts, shed load when the queue is full and flush on shutdown.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// Prometheus metrics
var (
	runsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fantasy_runs_queued_total",
		Help: "Optimization runs queued for the history sink",
	})

	runsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fantasy_runs_written_total",
		Help: "Optimization runs written to ClickHouse",
	})

	runsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fantasy_runs_failed_total",
		Help: "Optimization runs lost to failed batch inserts",
	})

	runsShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fantasy_runs_load_shed_total",
		Help: "Optimization runs dropped because the queue was full or stopped",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fantasy_worker_queue_depth",
		Help: "Current depth of the run history queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fantasy_batch_insert_duration_seconds",
		Help:    "Duration of run history batch inserts",
		Buckets: prometheus.DefBuckets,
	})
)

const insertRuns = `
	INSERT INTO fantasy.optimization_runs (
		run_id, team_id, model_id, scope, budget, status,
		total_cost, total_gain, assigned, variables, nodes, duration_ms, created_at
	)`

// Job is one queued run record.
type Job struct {
	Run      *models.OptimizationRun
	Enqueued time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool batches run records into ClickHouse.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop refuses new records, drains the queue and waits for the final flush.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")

	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.jobQueue)
	}
	p.mu.Unlock()

	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Worker pool stopped")
}

// Record queues a run without blocking. It returns false when the record was
// shed because the queue is full or the pool has stopped.
func (p *Pool) Record(run *models.OptimizationRun) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		runsShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- Job{Run: run, Enqueued: time.Now()}:
		runsQueued.Inc()
		return true
	default:
		runsShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker collects jobs into batches and flushes on size, on the ticker, and
// when the queue closes.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			runsFailed.Add(float64(len(batch)))
		} else {
			runsWritten.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes one batch of runs. It runs on its own deadline so the
// final flush still completes after the parent context is cancelled.
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.config.WriteTimeout)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertRuns)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, job := range batch {
		run := job.Run
		created := run.CreatedAt
		if created.IsZero() {
			created = job.Enqueued.UTC()
		}
		err := chBatch.Append(
			run.RunID,
			run.TeamID,
			run.ModelID,
			run.Scope,
			run.Budget,
			run.Status,
			run.TotalCost,
			run.TotalGain,
			run.Assigned,
			run.Variables,
			run.Nodes,
			run.DurationMs,
			created,
		)
		if err != nil {
			p.logger.Warnw("Failed to append run to batch", "error", err, "run", run.RunID)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
