package handlers

import (
	"errors"
	"net/http"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// ============================================================================
// THRESHOLD MODEL ENDPOINTS
// ============================================================================

// ListThresholds returns all threshold models, newest first
// @Summary List Threshold Models
// @Tags Thresholds
// @Produce json
// @Success 200 {array} models.ThresholdSummary
// @Failure 500 {object} ErrorResponse "Internal Error"
// @Router /api/v1/thresholds [get]
func (h *Handler) ListThresholds(w http.ResponseWriter, r *http.Request) {
	list, err := h.thresholds.ListModels(r.Context())
	if err != nil {
		h.serviceError(w, err, "list threshold models")
		return
	}
	h.jsonResponse(w, http.StatusOK, list)
}

// CreateThreshold creates a model from explicit per-category targets
// @Summary Create Threshold Model
// @Tags Thresholds
// @Accept json
// @Produce json
// @Param request body models.CreateThresholdRequest true "Model"
// @Success 201 {object} models.ThresholdModel
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /api/v1/thresholds [post]
func (h *Handler) CreateThreshold(w http.ResponseWriter, r *http.Request) {
	var req models.CreateThresholdRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	m, err := h.thresholds.CreateModel(r.Context(), &req)
	if err != nil {
		h.serviceError(w, err, "create threshold model")
		return
	}
	h.jsonResponse(w, http.StatusCreated, m)
}

// UploadThreshold builds a model from a league-history CSV
// @Summary Upload League History
// @Description Multipart form with a CSV "file" (team_name, season_year, made_playoffs, wins, losses, ties and category columns), plus optional "name" and "description".
// @Tags Thresholds
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "League history CSV"
// @Param name formData string false "Model name"
// @Param description formData string false "Model description"
// @Success 201 {object} models.UploadSummary
// @Failure 400 {object} ErrorResponse "Invalid file"
// @Failure 413 {object} ErrorResponse "File too large"
// @Router /api/v1/thresholds/upload [post]
func (h *Handler) UploadThreshold(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form", Kind: "InvalidRequest"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "No file part", Kind: "InvalidRequest"})
		return
	}
	defer file.Close()

	summary, err := h.thresholds.UploadSeasons(r.Context(), r.FormValue("name"), r.FormValue("description"), file)
	if err != nil {
		h.serviceError(w, err, "process upload")
		return
	}
	h.jsonResponse(w, http.StatusCreated, summary)
}

// GetThreshold returns a model with its targets, benchmarks and correlations
// @Summary Get Threshold Model
// @Tags Thresholds
// @Produce json
// @Param id path int true "Model ID"
// @Success 200 {object} models.ThresholdModel
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/v1/thresholds/{id} [get]
func (h *Handler) GetThreshold(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.thresholds.GetModel(r.Context(), id)
	if err != nil {
		h.serviceError(w, err, "get threshold model")
		return
	}
	h.jsonResponse(w, http.StatusOK, m)
}

// DeleteThreshold removes a model and everything built from it
// @Summary Delete Threshold Model
// @Tags Thresholds
// @Param id path int true "Model ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/v1/thresholds/{id} [delete]
func (h *Handler) DeleteThreshold(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.thresholds.DeleteModel(r.Context(), id); err != nil {
		h.serviceError(w, err, "delete threshold model")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WhatIf extrapolates a model from adjusted category values
// @Summary What-If
// @Tags Thresholds
// @Accept json
// @Produce json
// @Param id path int true "Model ID"
// @Param request body models.WhatIfRequest true "Adjustments"
// @Success 200 {object} models.WhatIfResult
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/v1/thresholds/{id}/what-if [post]
func (h *Handler) WhatIf(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.WhatIfRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	result, err := h.thresholds.WhatIf(r.Context(), id, req.Adjustments)
	if err != nil {
		h.serviceError(w, err, "calculate what-if")
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}
