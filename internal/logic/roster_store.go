package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

const playerColumns = `
	id, name, kind, COALESCE(mlb_team, ''), positions, COALESCE(status, ''), team_id,
	original_salary, adjusted_salary, auction_salary,
	ab, h, r, hr, rbi, sb, avg,
	ip, w, qs, so, sv, hld, svh, era, whip`

type rosterStore struct {
	pg PgPool
}

// NewRosterStore returns a Postgres-backed RosterStore.
func NewRosterStore(pg PgPool) RosterStore {
	return &rosterStore{pg: pg}
}

func (s *rosterStore) GetTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	team := &models.Team{}
	err := s.pg.QueryRow(ctx,
		`SELECT id, name, owner, salary_cap FROM teams WHERE id = $1`, teamID,
	).Scan(&team.ID, &team.Name, &team.Owner, &team.SalaryCap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundf("team %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("team query failed: %w", err)
	}

	rows, err := s.pg.Query(ctx, `
		SELECT id, label, player_id
		FROM roster_slots
		WHERE team_id = $1
		ORDER BY slot_order, id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("slot query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot models.RosterSlot
		if err := rows.Scan(&slot.ID, &slot.Label, &slot.PlayerID); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slot.Kind, _ = models.ParseSlotKind(slot.Label)
		team.Slots = append(team.Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slot row iteration failed: %w", err)
	}
	return team, nil
}

func (s *rosterStore) GetRoster(ctx context.Context, teamID int64) ([]*models.Player, error) {
	rows, err := s.pg.Query(ctx, `SELECT `+playerColumns+`
		FROM players
		WHERE team_id = $1
		ORDER BY kind, id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("roster query failed: %w", err)
	}
	return collectPlayers(rows)
}

func (s *rosterStore) ListFreeAgents(ctx context.Context, filter FreeAgentFilter) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE team_id IS NULL`
	var args []any
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if len(filter.Positions) > 0 {
		tags := make([]string, len(filter.Positions))
		for i, p := range filter.Positions {
			tags[i] = string(p)
		}
		args = append(args, tags)
		query += fmt.Sprintf(" AND string_to_array(replace(upper(positions), ' ', ''), ',') && $%d::text[]", len(args))
	}
	query += " ORDER BY id"

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("free agent query failed: %w", err)
	}
	return collectPlayers(rows)
}

// AssignSlots claims free agents for a team's open slots in one transaction.
// It fails with ErrConflict if any slot was filled or any player signed
// elsewhere since the roster was read.
func (s *rosterStore) AssignSlots(ctx context.Context, teamID int64, assignments []SlotAssignment) error {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		tag, err := tx.Exec(ctx, `
			UPDATE players SET team_id = $1
			WHERE id = $2 AND team_id IS NULL`, teamID, a.PlayerID)
		if err != nil {
			return fmt.Errorf("claim player %d failed: %w", a.PlayerID, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("%w: player %d is no longer a free agent", ErrConflict, a.PlayerID)
		}

		tag, err = tx.Exec(ctx, `
			UPDATE roster_slots SET player_id = $1
			WHERE id = $2 AND team_id = $3 AND player_id IS NULL`, a.PlayerID, a.SlotID, teamID)
		if err != nil {
			return fmt.Errorf("fill slot %d failed: %w", a.SlotID, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("%w: slot %d is no longer open", ErrConflict, a.SlotID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func collectPlayers(rows pgx.Rows) ([]*models.Player, error) {
	defer rows.Close()
	var players []*models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("player row iteration failed: %w", err)
	}
	return players, nil
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var (
		p         models.Player
		kind      string
		positions string
		h         models.HittingLine
		pl        models.PitchingLine
	)
	err := row.Scan(
		&p.ID, &p.Name, &kind, &p.MLBTeam, &positions, &p.Status, &p.TeamID,
		&p.OriginalSalary, &p.AdjustedSalary, &p.AuctionSalary,
		&h.AB, &h.H, &h.R, &h.HR, &h.RBI, &h.SB, &h.AVG,
		&pl.IP, &pl.W, &pl.QS, &pl.SO, &pl.SV, &pl.HLD, &pl.SVH, &pl.ERA, &pl.WHIP,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	p.Kind = models.PlayerKind(kind)
	p.Positions = models.ParsePositions(positions)
	switch p.Kind {
	case models.KindHitter:
		p.Hitting = &h
	case models.KindPitcher:
		p.Pitching = &pl
	}
	return &p, nil
}
