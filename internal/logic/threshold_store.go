package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

type thresholdStore struct {
	pg PgPool
}

// NewThresholdStore returns a Postgres-backed ThresholdStore.
func NewThresholdStore(pg PgPool) ThresholdStore {
	return &thresholdStore{pg: pg}
}

func (s *thresholdStore) ListModels(ctx context.Context) ([]models.ThresholdSummary, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, name, description, created_at
		FROM threshold_models
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("model list query failed: %w", err)
	}
	defer rows.Close()

	var out []models.ThresholdSummary
	for rows.Next() {
		var m models.ThresholdSummary
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("model row iteration failed: %w", err)
	}
	return out, nil
}

func (s *thresholdStore) GetModel(ctx context.Context, modelID int64) (*models.ThresholdModel, error) {
	m := &models.ThresholdModel{Targets: models.StatLine{}}
	err := s.pg.QueryRow(ctx, `
		SELECT id, name, description, created_at
		FROM threshold_models WHERE id = $1`, modelID,
	).Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundf("threshold model %d", modelID)
	}
	if err != nil {
		return nil, fmt.Errorf("model query failed: %w", err)
	}

	// Targets
	rows, err := s.pg.Query(ctx, `SELECT category, value FROM threshold_targets WHERE model_id = $1`, modelID)
	if err != nil {
		return nil, fmt.Errorf("target query failed: %w", err)
	}
	for rows.Next() {
		var cat string
		var v float64
		if err := rows.Scan(&cat, &v); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		m.Targets[models.Category(cat)] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("target row iteration failed: %w", err)
	}

	// Benchmarks
	rows, err = s.pg.Query(ctx, `
		SELECT category, mean_value, median_value, std_dev, min_value, max_value
		FROM benchmarks WHERE model_id = $1 ORDER BY category`, modelID)
	if err != nil {
		return nil, fmt.Errorf("benchmark query failed: %w", err)
	}
	for rows.Next() {
		var b models.Benchmark
		var cat string
		if err := rows.Scan(&cat, &b.Mean, &b.Median, &b.StdDev, &b.Min, &b.Max); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		b.Category = models.Category(cat)
		m.Benchmarks = append(m.Benchmarks, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("benchmark row iteration failed: %w", err)
	}

	// Correlations
	rows, err = s.pg.Query(ctx, `
		SELECT category1, category2, coefficient
		FROM correlations WHERE model_id = $1 ORDER BY category1, category2`, modelID)
	if err != nil {
		return nil, fmt.Errorf("correlation query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Correlation
		var c1, c2 string
		if err := rows.Scan(&c1, &c2, &c.Coefficient); err != nil {
			return nil, fmt.Errorf("failed to scan correlation: %w", err)
		}
		c.Category1, c.Category2 = models.Category(c1), models.Category(c2)
		m.Correlations = append(m.Correlations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("correlation row iteration failed: %w", err)
	}
	return m, nil
}

// CreateModel stores a model with its targets, source seasons, benchmarks and
// correlations in one transaction.
func (s *thresholdStore) CreateModel(ctx context.Context, m *models.ThresholdModel, seasons []models.TeamSeason) (int64, error) {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO threshold_models (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at`, m.Name, m.Description,
	).Scan(&id, &m.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert model failed: %w", err)
	}

	for cat, v := range m.Targets {
		if _, err := tx.Exec(ctx,
			`INSERT INTO threshold_targets (model_id, category, value) VALUES ($1, $2, $3)`,
			id, string(cat), v); err != nil {
			return 0, fmt.Errorf("insert target %s failed: %w", cat, err)
		}
	}

	for _, season := range seasons {
		var seasonID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO team_seasons (model_id, team_name, season_year, made_playoffs, wins, losses, ties)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			id, season.TeamName, season.SeasonYear, season.MadePlayoffs, season.Wins, season.Losses, season.Ties,
		).Scan(&seasonID)
		if err != nil {
			return 0, fmt.Errorf("insert team season failed: %w", err)
		}
		for cat, v := range season.Stats {
			if _, err := tx.Exec(ctx,
				`INSERT INTO team_season_stats (team_season_id, category, value) VALUES ($1, $2, $3)`,
				seasonID, string(cat), v); err != nil {
				return 0, fmt.Errorf("insert season stat failed: %w", err)
			}
		}
	}

	for _, b := range m.Benchmarks {
		if _, err := tx.Exec(ctx, `
			INSERT INTO benchmarks (model_id, category, mean_value, median_value, std_dev, min_value, max_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, string(b.Category), b.Mean, b.Median, b.StdDev, b.Min, b.Max); err != nil {
			return 0, fmt.Errorf("insert benchmark failed: %w", err)
		}
	}

	for _, c := range m.Correlations {
		if _, err := tx.Exec(ctx, `
			INSERT INTO correlations (model_id, category1, category2, coefficient)
			VALUES ($1, $2, $3, $4)`,
			id, string(c.Category1), string(c.Category2), c.Coefficient); err != nil {
			return 0, fmt.Errorf("insert correlation failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit failed: %w", err)
	}
	m.ID = id
	return id, nil
}

func (s *thresholdStore) DeleteModel(ctx context.Context, modelID int64) error {
	tag, err := s.pg.Exec(ctx, `DELETE FROM threshold_models WHERE id = $1`, modelID)
	if err != nil {
		return fmt.Errorf("delete model failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundf("threshold model %d", modelID)
	}
	return nil
}
