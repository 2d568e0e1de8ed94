package handlers

import (
	"net/http"
	"time"

	"github.com/jclfantasy/optimizer-api/internal/logic"
	"github.com/jclfantasy/optimizer-api/internal/models"
)

// ============================================================================
// OPTIMIZATION ENDPOINTS
// ============================================================================

// OptimizeTeam runs scoring and slot assignment for a team
// @Summary Optimize Roster
// @Description Scores free agents against the team's gaps to a threshold model and assigns the best affordable set to open slots.
// @Tags Optimizer
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body models.OptimizationRequest true "Optimization request"
// @Success 200 {object} models.OptimizationResult
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Team or model not found"
// @Failure 409 {object} ErrorResponse "Roster changed while applying"
// @Failure 422 {object} ErrorResponse "No feasible assignment"
// @Failure 500 {object} ErrorResponse "Internal Error"
// @Router /api/v1/teams/{id}/optimize [post]
func (h *Handler) OptimizeTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.OptimizationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	req.TeamID = teamID

	result, err := h.optimizer.Optimize(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err, "optimize roster")
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// GetTopScores returns the best stored standard-gain scores for a team
// @Summary Top Standard Gain
// @Tags Optimizer
// @Produce json
// @Param id path int true "Team ID"
// @Param kind query string true "hitter or pitcher"
// @Param limit query int false "Max rows"
// @Success 200 {array} models.ScoredPlayer
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Router /api/v1/teams/{id}/scores/top [get]
func (h *Handler) GetTopScores(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	kind := models.PlayerKind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "kind must be hitter or pitcher", Kind: "InvalidRequest"})
		return
	}
	limit, err := queryLimit(r, h.defaultTopN, 500)
	if err != nil {
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "InvalidRequest"})
		return
	}

	scores, err := h.optimizer.TopScores(r.Context(), teamID, kind, limit)
	if err != nil {
		h.serviceError(w, err, "get top scores")
		return
	}
	if scores == nil {
		scores = []models.ScoredPlayer{}
	}
	h.jsonResponse(w, http.StatusOK, scores)
}

// GetRuns lists recent optimization runs for a team
// @Summary Optimization History
// @Tags Optimizer
// @Produce json
// @Param id path int true "Team ID"
// @Param status query string false "optimal, suboptimal, infeasible or timed_out"
// @Param scope query string false "hitting, pitching or both"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Max rows"
// @Success 200 {array} models.OptimizationRun
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /api/v1/teams/{id}/runs [get]
func (h *Handler) GetRuns(w http.ResponseWriter, r *http.Request) {
	q, ok := h.runQuery(w, r, 20, 200)
	if !ok {
		return
	}

	runs, err := h.optimizer.RecentRuns(r.Context(), q)
	if err != nil {
		h.serviceError(w, err, "get optimization runs")
		return
	}
	if runs == nil {
		runs = []models.OptimizationRun{}
	}
	h.jsonResponse(w, http.StatusOK, runs)
}

// GetRunStats summarizes a team's optimization history
// @Summary Optimization History Summary
// @Description Groups runs by status, scope, model or day with counts and averages.
// @Tags Optimizer
// @Produce json
// @Param id path int true "Team ID"
// @Param by query string false "status (default), scope, model or day"
// @Param status query string false "Status filter"
// @Param scope query string false "Scope filter"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Success 200 {array} models.RunStat
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /api/v1/teams/{id}/runs/stats [get]
func (h *Handler) GetRunStats(w http.ResponseWriter, r *http.Request) {
	q, ok := h.runQuery(w, r, 100, 1000)
	if !ok {
		return
	}
	dimension := r.URL.Query().Get("by")
	if dimension == "" {
		dimension = "status"
	}

	stats, err := h.optimizer.RunStats(r.Context(), q, dimension)
	if err != nil {
		h.serviceError(w, err, "get run stats")
		return
	}
	if stats == nil {
		stats = []models.RunStat{}
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// runQuery reads the team id and history filters shared by the run endpoints.
func (h *Handler) runQuery(w http.ResponseWriter, r *http.Request, fallback, max int) (logic.RunQuery, bool) {
	teamID, ok := h.pathID(w, r, "id")
	if !ok {
		return logic.RunQuery{}, false
	}
	limit, err := queryLimit(r, fallback, max)
	if err != nil {
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "InvalidRequest"})
		return logic.RunQuery{}, false
	}

	params := r.URL.Query()
	q := logic.RunQuery{
		TeamID: teamID,
		Status: params.Get("status"),
		Scope:  params.Get("scope"),
		Limit:  limit,
	}
	for name, dst := range map[string]*time.Time{"since": &q.Since, "until": &q.Until} {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: name + " must be an RFC3339 timestamp", Kind: "InvalidRequest"})
			return logic.RunQuery{}, false
		}
		*dst = t
	}
	return q, true
}
