package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/logic"
	"github.com/jclfantasy/optimizer-api/internal/models"
)

func newTestHandler(opt *MockOptimizerService, rost *MockRosterService, thr *MockThresholdService) *Handler {
	if opt == nil {
		opt = &MockOptimizerService{}
	}
	if rost == nil {
		rost = &MockRosterService{}
	}
	if thr == nil {
		thr = &MockThresholdService{}
	}
	return New(Config{
		WorkerPool: &MockRunQueue{},
		Logger:     zap.NewNop(),
		Optimizer:  opt,
		Rosters:    rost,
		Thresholds: thr,
	})
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Routes([]string{"*"}).ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestOptimizeTeam_TableDriven(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		optimizeErr    error
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "Valid request",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 40, "scope": "both", "bench_quota": 1}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Budget as string",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": "40", "scope": "hitting"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Zero budget",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 0, "scope": "pitching"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Negative budget",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": -5, "scope": "both"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Infinite budget",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": "Inf", "scope": "both"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "NaN budget",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": "nan", "scope": "hitting"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Missing budget",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "scope": "both"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Unknown scope",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "fielding"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Negative bench quota",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both", "bench_quota": -1}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Malformed JSON",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3,`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Bad team id",
			path:           "/api/v1/teams/abc/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both"}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Team not found",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both"}`,
			optimizeErr:    fmt.Errorf("%w: team 7", logic.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedKind:   "NotFound",
		},
		{
			name:           "Service rejects request",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both"}`,
			optimizeErr:    fmt.Errorf("%w: bench quota exceeds open bench slots", logic.ErrInvalidRequest),
			expectedStatus: http.StatusBadRequest,
			expectedKind:   "InvalidRequest",
		},
		{
			name:           "Solver timed out without assignment",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both"}`,
			optimizeErr:    &logic.AssignmentError{TimedOut: true},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKind:   "SolverTimeout",
		},
		{
			name:           "Roster changed during apply",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both", "apply": true}`,
			optimizeErr:    fmt.Errorf("apply assignment: %w", logic.ErrConflict),
			expectedStatus: http.StatusConflict,
			expectedKind:   "Conflict",
		},
		{
			name:           "Unexpected failure",
			path:           "/api/v1/teams/7/optimize",
			body:           `{"model_id": 3, "budget": 10, "scope": "both"}`,
			optimizeErr:    errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedKind:   "Internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.OptimizationRequest
			opt := &MockOptimizerService{
				OptimizeFunc: func(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
					got = req
					if tt.optimizeErr != nil {
						return nil, tt.optimizeErr
					}
					return &models.OptimizationResult{TeamID: req.TeamID, Status: models.StatusOptimal, Optimal: true}, nil
				},
			}
			h := newTestHandler(opt, nil, nil)

			req := httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := serve(h, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, decodeError(t, rr).Kind)
			}
			if rr.Code == http.StatusOK {
				require.NotNil(t, got)
				assert.Equal(t, int64(7), got.TeamID)
				assert.Equal(t, int64(3), got.ModelID)
			}
		})
	}
}

func TestOptimizeTeam_UnfilledSlots(t *testing.T) {
	opt := &MockOptimizerService{
		OptimizeFunc: func(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
			return nil, &logic.AssignmentError{UnfilledSlots: []string{"SecondBase"}}
		},
	}
	h := newTestHandler(opt, nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/teams/1/optimize",
		strings.NewReader(`{"model_id": 1, "budget": 5, "scope": "hitting"}`))
	rr := serve(h, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, "NoFeasibleAssignment", resp.Kind)
	assert.Equal(t, []string{"SecondBase"}, resp.UnfilledSlots)
}

func TestOptimizeTeam_SuboptimalResult(t *testing.T) {
	opt := &MockOptimizerService{
		OptimizeFunc: func(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
			return &models.OptimizationResult{
				TeamID:  req.TeamID,
				Status:  models.StatusSuboptimal,
				Optimal: false,
				Assignments: []models.Assignment{
					{PlayerID: 10, Slot: "ShortStop", Salary: 10, StandardGain: 1.5},
				},
				TotalCost: 10,
				TotalGain: 1.5,
			}, nil
		},
	}
	h := newTestHandler(opt, nil, nil)

	req := httptest.NewRequest("POST", "/api/v1/teams/1/optimize",
		strings.NewReader(`{"model_id": 1, "budget": 30, "scope": "hitting"}`))
	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "suboptimal", body["status"])
	assert.Equal(t, false, body["optimal"])
	assert.Len(t, body["assignments"], 1)
}

func TestOptimizeTeam_BodyTooLarge(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	body := `{"model_id": 1, "budget": 5, "scope": "hitting", "pad": "` + strings.Repeat("x", MaxBodySize) + `"}`

	rr := serve(h, httptest.NewRequest("POST", "/api/v1/teams/1/optimize", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestGetTopScores(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedLimit  int
	}{
		{"Default limit", "?kind=hitter", http.StatusOK, 25},
		{"Explicit limit", "?kind=pitcher&limit=5", http.StatusOK, 5},
		{"Limit capped", "?kind=hitter&limit=10000", http.StatusOK, 500},
		{"Missing kind", "", http.StatusBadRequest, 0},
		{"Unknown kind", "?kind=catcher", http.StatusBadRequest, 0},
		{"Negative limit", "?kind=hitter&limit=-1", http.StatusBadRequest, 0},
		{"Non-numeric limit", "?kind=hitter&limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLimit := 0
			opt := &MockOptimizerService{
				TopScoresFunc: func(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error) {
					gotLimit = limit
					return nil, nil
				},
			}
			h := newTestHandler(opt, nil, nil)

			rr := serve(h, httptest.NewRequest("GET", "/api/v1/teams/4/scores/top"+tt.query, nil))
			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedLimit, gotLimit)
				assert.JSONEq(t, `[]`, rr.Body.String())
			}
		})
	}
}

func TestGetTopScores_Ranked(t *testing.T) {
	opt := &MockOptimizerService{
		TopScoresFunc: func(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error) {
			return []models.ScoredPlayer{
				{Rank: 1, PlayerID: 10, Name: "Ace", Kind: kind, StandardGain: 1.5},
				{Rank: 2, PlayerID: 11, Name: "Deuce", Kind: kind, StandardGain: 0.75},
			}, nil
		},
	}
	h := newTestHandler(opt, nil, nil)

	rr := serve(h, httptest.NewRequest("GET", "/api/v1/teams/4/scores/top?kind=pitcher", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var scores []models.ScoredPlayer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	require.Len(t, scores, 2)
	assert.Equal(t, "Ace", scores[0].Name)
	assert.Equal(t, models.KindPitcher, scores[1].Kind)
}

func TestGetRuns(t *testing.T) {
	var got logic.RunQuery
	opt := &MockOptimizerService{
		RecentRunsFunc: func(ctx context.Context, q logic.RunQuery) ([]models.OptimizationRun, error) {
			got = q
			return []models.OptimizationRun{{RunID: "r1", TeamID: q.TeamID, Status: "optimal"}}, nil
		},
	}
	h := newTestHandler(opt, nil, nil)

	rr := serve(h, httptest.NewRequest("GET", "/api/v1/teams/2/runs", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, logic.RunQuery{TeamID: 2, Limit: 20}, got)

	var runs []models.OptimizationRun
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, int64(2), runs[0].TeamID)

	rr = serve(h, httptest.NewRequest("GET", "/api/v1/teams/2/runs?status=timed_out&scope=both&since=2026-04-01T00:00:00Z&limit=5", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "timed_out", got.Status)
	assert.Equal(t, "both", got.Scope)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, 2026, got.Since.Year())
	assert.True(t, got.Until.IsZero())

	rr = serve(h, httptest.NewRequest("GET", "/api/v1/teams/2/runs?since=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetRunStats(t *testing.T) {
	var gotDim string
	opt := &MockOptimizerService{
		RunStatsFunc: func(ctx context.Context, q logic.RunQuery, dimension string) ([]models.RunStat, error) {
			gotDim = dimension
			if dimension == "weapon" {
				return nil, fmt.Errorf("%w: invalid dimension: weapon", logic.ErrInvalidRequest)
			}
			return []models.RunStat{{Label: "optimal", Runs: 4, AvgGain: 2.5}}, nil
		},
	}
	h := newTestHandler(opt, nil, nil)

	rr := serve(h, httptest.NewRequest("GET", "/api/v1/teams/2/runs/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "status", gotDim)

	var stats []models.RunStat
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, uint64(4), stats[0].Runs)

	rr = serve(h, httptest.NewRequest("GET", "/api/v1/teams/2/runs/stats?by=weapon", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetTeam(t *testing.T) {
	rost := &MockRosterService{
		GetTeamOverviewFunc: func(ctx context.Context, teamID int64) (*models.TeamOverview, error) {
			if teamID == 99 {
				return nil, fmt.Errorf("%w: team 99", logic.ErrNotFound)
			}
			return &models.TeamOverview{Team: &models.Team{ID: teamID, Name: "Sluggers"}, Payroll: 212}, nil
		},
	}
	h := newTestHandler(nil, rost, nil)

	rr := serve(h, httptest.NewRequest("GET", "/api/v1/teams/3", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var overview models.TeamOverview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overview))
	assert.Equal(t, "Sluggers", overview.Team.Name)
	assert.Equal(t, 212.0, overview.Payroll)

	rr = serve(h, httptest.NewRequest("GET", "/api/v1/teams/99", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListFreeAgents(t *testing.T) {
	var gotKind models.PlayerKind
	var gotSlot string
	rost := &MockRosterService{
		ListFreeAgentsFunc: func(ctx context.Context, kind models.PlayerKind, slotLabel string) ([]*models.Player, error) {
			gotKind, gotSlot = kind, slotLabel
			if slotLabel == "Goalie" {
				return nil, fmt.Errorf("%w: unknown slot %q", logic.ErrInvalidRequest, slotLabel)
			}
			return nil, nil
		},
	}
	h := newTestHandler(nil, rost, nil)

	rr := serve(h, httptest.NewRequest("GET", "/api/v1/players/free-agents?kind=hitter&slot=ShortStop", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Equal(t, models.KindHitter, gotKind)
	assert.Equal(t, "ShortStop", gotSlot)

	rr = serve(h, httptest.NewRequest("GET", "/api/v1/players/free-agents?slot=Goalie", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateThreshold(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"Valid", `{"name": "Playoff bar", "targets": {"HR": 280, "ERA": 3.6}}`, http.StatusCreated},
		{"Missing name", `{"targets": {"HR": 280}}`, http.StatusBadRequest},
		{"Empty targets", `{"name": "Empty", "targets": {}}`, http.StatusBadRequest},
		{"Missing targets", `{"name": "None"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.CreateThresholdRequest
			thr := &MockThresholdService{
				CreateModelFunc: func(ctx context.Context, req *models.CreateThresholdRequest) (*models.ThresholdModel, error) {
					got = req
					return &models.ThresholdModel{ID: 12, Name: req.Name, Targets: models.StatLine(req.Targets)}, nil
				},
			}
			h := newTestHandler(nil, nil, thr)

			rr := serve(h, httptest.NewRequest("POST", "/api/v1/thresholds", strings.NewReader(tt.body)))
			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			if tt.expectedStatus == http.StatusCreated {
				require.NotNil(t, got)
				assert.Equal(t, 3.6, got.Targets[models.CategoryERA])
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileContent != "" {
		part, err := mw.CreateFormFile("file", "seasons.csv")
		require.NoError(t, err)
		_, err = io.WriteString(part, fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadThreshold(t *testing.T) {
	const csv = "team_name,season_year,made_playoffs,wins,losses,ties,HR\nA,2024,1,10,4,0,250\n"

	var gotName, gotDesc, gotCSV string
	thr := &MockThresholdService{
		UploadSeasonsFunc: func(ctx context.Context, name, description string, r io.Reader) (*models.UploadSummary, error) {
			gotName, gotDesc = name, description
			raw, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			gotCSV = string(raw)
			return &models.UploadSummary{ModelID: 5, Teams: 1, Seasons: 1, PlayoffTeams: 1}, nil
		},
	}
	h := newTestHandler(nil, nil, thr)

	body, contentType := multipartBody(t, map[string]string{"name": "Bar", "description": "one season"}, csv)
	req := httptest.NewRequest("POST", "/api/v1/thresholds/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := serve(h, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "Bar", gotName)
	assert.Equal(t, "one season", gotDesc)
	assert.Equal(t, csv, gotCSV)

	var summary models.UploadSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, int64(5), summary.ModelID)
}

func TestUploadThreshold_Errors(t *testing.T) {
	t.Run("No file part", func(t *testing.T) {
		h := newTestHandler(nil, nil, nil)
		body, contentType := multipartBody(t, map[string]string{"name": "Bar"}, "")
		req := httptest.NewRequest("POST", "/api/v1/thresholds/upload", body)
		req.Header.Set("Content-Type", contentType)

		rr := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Not multipart", func(t *testing.T) {
		h := newTestHandler(nil, nil, nil)
		req := httptest.NewRequest("POST", "/api/v1/thresholds/upload", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		rr := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Too large", func(t *testing.T) {
		h := newTestHandler(nil, nil, nil)
		h.maxUploadBytes = 128
		body, contentType := multipartBody(t, nil, strings.Repeat("a,1\n", 200))
		req := httptest.NewRequest("POST", "/api/v1/thresholds/upload", body)
		req.Header.Set("Content-Type", contentType)

		rr := serve(h, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("Unparseable CSV", func(t *testing.T) {
		thr := &MockThresholdService{
			UploadSeasonsFunc: func(ctx context.Context, name, description string, r io.Reader) (*models.UploadSummary, error) {
				return nil, fmt.Errorf("%w: missing column wins", logic.ErrInvalidRequest)
			},
		}
		h := newTestHandler(nil, nil, thr)
		body, contentType := multipartBody(t, nil, "team_name\nA\n")
		req := httptest.NewRequest("POST", "/api/v1/thresholds/upload", body)
		req.Header.Set("Content-Type", contentType)

		rr := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Error, "missing column wins")
	})
}

func TestThresholdLookupAndDelete(t *testing.T) {
	thr := &MockThresholdService{
		GetModelFunc: func(ctx context.Context, modelID int64) (*models.ThresholdModel, error) {
			if modelID == 404 {
				return nil, fmt.Errorf("%w: threshold model 404", logic.ErrNotFound)
			}
			return &models.ThresholdModel{ID: modelID, Name: "Bar"}, nil
		},
		DeleteModelFunc: func(ctx context.Context, modelID int64) error {
			if modelID == 404 {
				return fmt.Errorf("%w: threshold model 404", logic.ErrNotFound)
			}
			return nil
		},
	}
	h := newTestHandler(nil, nil, thr)

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest("GET", "/api/v1/thresholds/8", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(h, httptest.NewRequest("GET", "/api/v1/thresholds/404", nil)).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, httptest.NewRequest("GET", "/api/v1/thresholds/0", nil)).Code)

	rr := serve(h, httptest.NewRequest("DELETE", "/api/v1/thresholds/8", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(h, httptest.NewRequest("DELETE", "/api/v1/thresholds/404", nil)).Code)
}

func TestListThresholds(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	rr := serve(h, httptest.NewRequest("GET", "/api/v1/thresholds", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestWhatIf(t *testing.T) {
	var got map[models.Category]float64
	thr := &MockThresholdService{
		WhatIfFunc: func(ctx context.Context, modelID int64, adjustments map[models.Category]float64) (*models.WhatIfResult, error) {
			got = adjustments
			if _, ok := adjustments["XBH"]; ok {
				return nil, fmt.Errorf("%w: unknown category XBH", logic.ErrInvalidRequest)
			}
			return &models.WhatIfResult{ModelID: modelID, Results: models.StatLine{models.CategoryHomeRuns: 300}}, nil
		},
	}
	h := newTestHandler(nil, nil, thr)

	rr := serve(h, httptest.NewRequest("POST", "/api/v1/thresholds/3/what-if", strings.NewReader(`{"adjustments": {"HR": 300}}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 300.0, got[models.CategoryHomeRuns])

	var result models.WhatIfResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(3), result.ModelID)

	rr = serve(h, httptest.NewRequest("POST", "/api/v1/thresholds/3/what-if", strings.NewReader(`{"adjustments": {}}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(h, httptest.NewRequest("POST", "/api/v1/thresholds/3/what-if", strings.NewReader(`{"adjustments": {"XBH": 1}}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthAndReady(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	rr := serve(h, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	// No backing stores are configured, so readiness fails.
	rr = serve(h, httptest.NewRequest("GET", "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["ready"])
}
