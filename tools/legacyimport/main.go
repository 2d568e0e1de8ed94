// Command legacyimport copies the Hitters and Pitchers tables of the legacy
// league MySQL database into the players table. Rows are upserted on
// (kind, legacy_id), so the import can be rerun after every legacy update.
// Roster membership is left alone; it belongs to the API.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// legacyTable describes one legacy player table and where its stat columns land.
type legacyTable struct {
	kind     models.PlayerKind
	table    string
	idColumn string
	stats    []string // legacy column names
	columns  []string // players columns, same order
}

var legacyTables = []legacyTable{
	{
		kind:     models.KindHitter,
		table:    "Hitters",
		idColumn: "HittingPlayerId",
		stats:    []string{"AB", "H", "R", "HR", "RBI", "SB", "AVG"},
		columns:  []string{"ab", "h", "r", "hr", "rbi", "sb", "avg"},
	},
	{
		kind:     models.KindPitcher,
		table:    "Pitchers",
		idColumn: "PitchingPlayerId",
		stats:    []string{"IP", "W", "QS", "SO", "SV", "HLD", "SVH", "ERA", "WHIP"},
		columns:  []string{"ip", "w", "qs", "so", "sv", "hld", "svh", "era", "whip"},
	},
}

// baseColumns precede the stat columns in both queries.
var baseColumns = []string{"legacy_id", "kind", "name", "mlb_team", "positions", "status",
	"original_salary", "adjusted_salary", "auction_salary"}

func (t legacyTable) selectQuery() string {
	cols := append([]string{t.idColumn, "PlayerName", "Team", "Position", "Status",
		"OriginalSalary", "AdjustedSalary", "AuctionSalary"}, t.stats...)
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), t.table)
}

func (t legacyTable) upsertQuery() string {
	cols := append(append([]string{}, baseColumns...), t.columns...)
	params := make([]string, len(cols))
	for i := range cols {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	var updates []string
	for _, c := range cols {
		if c == "legacy_id" || c == "kind" {
			continue
		}
		updates = append(updates, c+" = EXCLUDED."+c)
	}
	return fmt.Sprintf("INSERT INTO players (%s) VALUES (%s) ON CONFLICT (kind, legacy_id) DO UPDATE SET %s",
		strings.Join(cols, ", "), strings.Join(params, ", "), strings.Join(updates, ", "))
}

// normalizePositions rewrites legacy eligibility ("ss/2b", "OF, DH") to the
// comma format the API parses.
func normalizePositions(raw string) string {
	p := &models.Player{Positions: models.ParsePositions(strings.ReplaceAll(raw, "/", ","))}
	return p.PositionString()
}

func main() {
	mysqlDSN := flag.String("mysql", os.Getenv("LEGACY_MYSQL_DSN"), "legacy MySQL DSN (user:pass@tcp(host:3306)/league)")
	postgresURL := flag.String("postgres", os.Getenv("POSTGRES_URL"), "target Postgres URL")
	dryRun := flag.Bool("dry-run", false, "read and count rows without writing")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	if *mysqlDSN == "" || *postgresURL == "" {
		log.Fatal("Both -mysql and -postgres (or LEGACY_MYSQL_DSN and POSTGRES_URL) are required")
	}

	src, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		log.Fatalw("Failed to open legacy database", "error", err)
	}
	defer src.Close()

	dst, err := sql.Open("postgres", *postgresURL)
	if err != nil {
		log.Fatalw("Failed to open Postgres", "error", err)
	}
	defer dst.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, t := range legacyTables {
		n, err := importTable(ctx, src, dst, t, *dryRun)
		if err != nil {
			log.Fatalw("Import failed", "table", t.table, "error", err)
		}
		log.Infow("Imported legacy players", "table", t.table, "kind", t.kind, "rows", n, "dry_run", *dryRun)
	}
}

// importTable copies one legacy table inside a single Postgres transaction.
func importTable(ctx context.Context, src, dst *sql.DB, t legacyTable, dryRun bool) (int, error) {
	rows, err := src.QueryContext(ctx, t.selectQuery())
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", t.table, err)
	}
	defer rows.Close()

	tx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, t.upsertQuery())
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	var (
		id                     int64
		name                   string
		team, position, status sql.NullString
		orig, adj, auction     sql.NullFloat64
		count                  int
	)
	stats := make([]sql.NullFloat64, len(t.stats))
	dest := []any{&id, &name, &team, &position, &status, &orig, &adj, &auction}
	for i := range stats {
		dest = append(dest, &stats[i])
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return count, fmt.Errorf("scan %s row: %w", t.table, err)
		}
		count++
		if dryRun {
			continue
		}
		args := []any{id, string(t.kind), name, team, normalizePositions(position.String), status,
			orig.Float64, adj.Float64, auction.Float64}
		for _, s := range stats {
			args = append(args, s)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return count, fmt.Errorf("upsert %s %d: %w", t.kind, id, err)
		}
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("iterate %s: %w", t.table, err)
	}
	if dryRun {
		return count, nil
	}
	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("commit: %w", err)
	}
	return count, nil
}
