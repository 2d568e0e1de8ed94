package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

type runHistory struct {
	ch driver.Conn
}

// NewRunHistory reads optimization runs back from ClickHouse.
func NewRunHistory(ch driver.Conn) RunHistory {
	return &runHistory{ch: ch}
}

func (r *runHistory) RecentRuns(ctx context.Context, q RunQuery) ([]models.OptimizationRun, error) {
	query, args, err := BuildRunsQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("run history query failed: %w", err)
	}
	defer rows.Close()

	runs := []models.OptimizationRun{}
	for rows.Next() {
		var run models.OptimizationRun
		if err := rows.Scan(
			&run.RunID, &run.TeamID, &run.ModelID, &run.Scope, &run.Budget, &run.Status,
			&run.TotalCost, &run.TotalGain, &run.Assigned, &run.Variables, &run.Nodes,
			&run.DurationMs, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run row iteration failed: %w", err)
	}
	return runs, nil
}

func (r *runHistory) RunStats(ctx context.Context, q RunQuery, dimension string) ([]models.RunStat, error) {
	query, args, err := BuildRunStatsQuery(q, dimension)
	if err != nil {
		return nil, err
	}
	rows, err := r.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("run stats query failed: %w", err)
	}
	defer rows.Close()

	stats := []models.RunStat{}
	for rows.Next() {
		var s models.RunStat
		if err := rows.Scan(&s.Label, &s.Runs, &s.AvgDurationMs, &s.AvgGain, &s.AvgCost); err != nil {
			return nil, fmt.Errorf("failed to scan run stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run stat iteration failed: %w", err)
	}
	return stats, nil
}
