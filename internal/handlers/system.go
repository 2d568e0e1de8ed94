package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/jclfantasy/optimizer-api/migrations"
)

// InstallDatabase installs the Postgres and ClickHouse schemas
// @Summary Install Database Schema
// @Description Executes the embedded SQL migrations for PostgreSQL and ClickHouse. Statements are idempotent.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /system/install [post]
func (h *Handler) InstallDatabase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results := make(map[string]string)
	hasError := false

	if err := h.executePostgresSQL(ctx, migrations.PostgresSchema); err != nil {
		results["postgres"] = "failed: " + err.Error()
		hasError = true
	} else {
		results["postgres"] = "success"
	}

	if err := h.executeClickHouseSQL(ctx, migrations.ClickHouseSchema); err != nil {
		results["clickhouse"] = "failed: " + err.Error()
		hasError = true
	} else {
		results["clickhouse"] = "success"
	}

	statusCode := http.StatusOK
	if hasError {
		statusCode = http.StatusInternalServerError
	}

	h.jsonResponse(w, statusCode, map[string]interface{}{
		"status":  "completed",
		"results": results,
		"error":   hasError,
	})
}

func (h *Handler) executePostgresSQL(ctx context.Context, path string) error {
	content, err := migrations.FS.ReadFile(path)
	if err != nil {
		h.logger.Errorw("failed to read schema file", "db", "PostgreSQL", "path", path, "error", err)
		return err
	}

	if _, err := h.pg.Exec(ctx, string(content)); err != nil {
		h.logger.Errorw("failed to execute schema", "db", "PostgreSQL", "error", err)
		return err
	}

	h.logger.Infow("successfully installed schema", "db", "PostgreSQL")
	return nil
}

func (h *Handler) executeClickHouseSQL(ctx context.Context, path string) error {
	content, err := migrations.FS.ReadFile(path)
	if err != nil {
		h.logger.Errorw("failed to read schema file", "db", "ClickHouse", "path", path, "error", err)
		return err
	}

	// ClickHouse takes one statement per query.
	for _, stmt := range strings.Split(string(content), ";") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if err := h.ch.Exec(ctx, trimmed); err != nil {
			h.logger.Warnw("statement execution failed", "db", "ClickHouse", "error", err, "statement", trimmed[:min(len(trimmed), 50)]+"...")
			return err
		}
	}

	h.logger.Infow("successfully installed schema", "db", "ClickHouse")
	return nil
}
