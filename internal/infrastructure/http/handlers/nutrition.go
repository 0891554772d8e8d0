package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hungryjack/backend/internal/domain/nutrition"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

type calculateNutritionRequest struct {
	Ingredients []string         `json:"ingredients"`
	Hint        *nutrition.Facts `json:"nutrition_hint,omitempty"`
}

// CalculateNutrition handles POST /api/nutrition/calculate
func (h *Handlers) CalculateNutrition(w http.ResponseWriter, r *http.Request) {
	var req calculateNutritionRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if len(req.Ingredients) == 0 && req.Hint == nil {
		h.writeError(w, apperrors.NewBadRequestError("ingredients are required"))
		return
	}

	facts, err := h.nutrition.CalculateMeal(r.Context(), req.Ingredients, req.Hint)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    facts,
	})
}

// EstimateFood handles GET /api/nutrition/{food_name}
func (h *Handlers) EstimateFood(w http.ResponseWriter, r *http.Request) {
	foodName := chi.URLParam(r, "food_name")
	if unescaped, err := url.PathUnescape(foodName); err == nil {
		foodName = unescaped
	}
	if foodName == "" {
		h.writeError(w, apperrors.NewBadRequestError("food name is required"))
		return
	}

	facts, err := h.nutrition.EstimateFood(r.Context(), foodName, r.URL.Query().Get("quantity"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"food_name": foodName,
			"nutrition": facts,
		},
	})
}
