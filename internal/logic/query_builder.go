package logic

import (
	"fmt"
	"time"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// RunQuery filters optimization history. Zero values mean no filter.
type RunQuery struct {
	TeamID int64     `json:"team_id"`
	Status string    `json:"status"` // optimal, suboptimal, infeasible, timed_out
	Scope  string    `json:"scope"`  // hitting, pitching, both
	Since  time.Time `json:"since"`
	Until  time.Time `json:"until"`
	Limit  int       `json:"limit"`
}

// allowedDimensions maps API grouping names to ClickHouse columns
var allowedDimensions = map[string]string{
	"status": "status",
	"scope":  "scope",
	"model":  "toString(model_id)",
	"day":    "toString(toDate(created_at))",
}

var knownStatuses = map[string]bool{
	string(models.StatusOptimal):    true,
	string(models.StatusSuboptimal): true,
	string(models.StatusInfeasible): true,
	string(models.StatusTimedOut):   true,
}

func (q RunQuery) validate() error {
	if q.TeamID <= 0 {
		return invalidf("team id must be positive")
	}
	if q.Status != "" && !knownStatuses[q.Status] {
		return invalidf("unknown status %q", q.Status)
	}
	if q.Scope != "" && !models.Scope(q.Scope).Valid() {
		return invalidf("unknown scope %q", q.Scope)
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Until.Before(q.Since) {
		return invalidf("until is before since")
	}
	return nil
}

// where renders the shared filter clause and its arguments.
func (q RunQuery) where() (string, []interface{}) {
	clause := " WHERE team_id = ?"
	args := []interface{}{q.TeamID}

	if q.Status != "" {
		clause += " AND status = ?"
		args = append(args, q.Status)
	}
	if q.Scope != "" {
		clause += " AND scope = ?"
		args = append(args, q.Scope)
	}
	if !q.Since.IsZero() {
		clause += " AND created_at >= ?"
		args = append(args, q.Since)
	}
	if !q.Until.IsZero() {
		clause += " AND created_at <= ?"
		args = append(args, q.Until)
	}
	return clause, args
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 || limit > max {
		return fallback
	}
	return limit
}

// BuildRunsQuery constructs the run listing query, newest first.
func BuildRunsQuery(q RunQuery) (string, []interface{}, error) {
	if err := q.validate(); err != nil {
		return "", nil, err
	}
	where, args := q.where()
	query := `SELECT run_id, team_id, model_id, scope, budget, status,
		total_cost, total_gain, assigned, variables, nodes, duration_ms, created_at
		FROM fantasy.optimization_runs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", clampLimit(q.Limit, 20, 1000))
	return query, args, nil
}

// BuildRunStatsQuery constructs a grouped summary of runs. dimension must be
// one of status, scope, model or day.
func BuildRunStatsQuery(q RunQuery, dimension string) (string, []interface{}, error) {
	groupByCol, ok := allowedDimensions[dimension]
	if !ok {
		return "", nil, invalidf("invalid dimension: %s", dimension)
	}
	if err := q.validate(); err != nil {
		return "", nil, err
	}
	where, args := q.where()
	query := fmt.Sprintf(`SELECT %s AS label, count() AS runs,
		avg(duration_ms) AS avg_duration_ms, avg(total_gain) AS avg_gain, avg(total_cost) AS avg_cost
		FROM fantasy.optimization_runs`, groupByCol) + where +
		fmt.Sprintf(" GROUP BY label ORDER BY runs DESC LIMIT %d", clampLimit(q.Limit, 100, 1000))
	return query, args, nil
}
