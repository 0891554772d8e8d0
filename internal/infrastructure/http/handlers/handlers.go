// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/ports/inbound"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Handlers handles REST API requests
type Handlers struct {
	planner   inbound.PlannerService
	nutrition inbound.NutritionService
	version   string
	logger    *zap.Logger
}

// NewHandlers creates a new API handlers instance
func NewHandlers(
	planner inbound.PlannerService,
	nutrition inbound.NutritionService,
	version string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		planner:   planner,
		nutrition: nutrition,
		version:   version,
		logger:    logger,
	}
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an application error onto the response envelope. Anything
// that is not an AppError is logged and reported as a generic 500 so internal
// details never leak to clients.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		status := appErr.StatusCode()
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed", zap.Error(err))
		}
		h.writeJSON(w, status, APIResponse{
			Success: false,
			Error:   appErr.Message,
		})
		return
	}

	h.logger.Error("unexpected error", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   "Internal server error",
	})
}

// decodeBody decodes a JSON request body, rejecting malformed payloads
func (h *Handlers) decodeBody(r *http.Request, out interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return apperrors.NewBadRequestError("invalid request body")
	}
	return nil
}
