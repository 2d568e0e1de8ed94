package handlers

import (
	"net/http"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// GetTeam returns a team with its slots, players and current aggregates
// @Summary Team Overview
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.TeamOverview
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/v1/teams/{id} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	overview, err := h.rosters.GetTeamOverview(r.Context(), teamID)
	if err != nil {
		h.serviceError(w, err, "get team")
		return
	}
	h.jsonResponse(w, http.StatusOK, overview)
}

// ListFreeAgents lists unrostered players
// @Summary Free Agents
// @Description Optional kind filter and slot label (e.g. ShortStop, Bench2) narrowing to players eligible for that slot.
// @Tags Players
// @Produce json
// @Param kind query string false "hitter or pitcher"
// @Param slot query string false "Slot label"
// @Success 200 {array} models.Player
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /api/v1/players/free-agents [get]
func (h *Handler) ListFreeAgents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	players, err := h.rosters.ListFreeAgents(r.Context(), models.PlayerKind(q.Get("kind")), q.Get("slot"))
	if err != nil {
		h.serviceError(w, err, "list free agents")
		return
	}
	if players == nil {
		players = []*models.Player{}
	}
	h.jsonResponse(w, http.StatusOK, players)
}
