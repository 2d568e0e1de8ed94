package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jclfantasy/optimizer-api/internal/logic"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Kind          string   `json:"kind,omitempty"`
	UnfilledSlots []string `json:"unfilled_slots,omitempty"`
}

// Health check endpoint
// @Summary Liveness
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
// @Summary Readiness
// @Description Pings Postgres, ClickHouse and Redis
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres":   h.pg != nil && h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch != nil && h.ch.Ping(ctx) == nil,
		"redis":      h.redis != nil && h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	depth := 0
	if h.pool != nil {
		depth = h.pool.QueueDepth()
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": depth,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, ErrorResponse{Error: message})
}

// serviceError maps a service error onto its HTTP status. Unexpected errors
// are logged and reported as "Failed to <action>".
func (h *Handler) serviceError(w http.ResponseWriter, err error, action string) {
	resp := ErrorResponse{Error: err.Error(), Kind: logic.ErrorKind(err)}

	var assignErr *logic.AssignmentError
	switch {
	case errors.Is(err, logic.ErrNotFound):
		h.jsonResponse(w, http.StatusNotFound, resp)
	case errors.Is(err, logic.ErrInvalidRequest):
		h.jsonResponse(w, http.StatusBadRequest, resp)
	case errors.As(err, &assignErr):
		resp.UnfilledSlots = assignErr.UnfilledSlots
		h.jsonResponse(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, logic.ErrConflict):
		h.jsonResponse(w, http.StatusConflict, resp)
	default:
		h.logger.Errorw("Failed to "+action, "error", err)
		h.jsonResponse(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to " + action,
			Kind:  resp.Kind,
		})
	}
}

// decodeJSON reads a size-limited JSON body and runs struct validation.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid JSON: " + err.Error(),
			Kind:  "InvalidRequest",
		})
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{
			Error: validationMessage(err),
			Kind:  "InvalidRequest",
		})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// pathID parses a positive integer URL parameter.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.jsonResponse(w, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid " + name,
			Kind:  "InvalidRequest",
		})
		return 0, false
	}
	return id, true
}

// queryLimit reads ?limit=, applying a default and an upper bound.
func queryLimit(r *http.Request, fallback, max int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if n > max {
		n = max
	}
	return n, nil
}
