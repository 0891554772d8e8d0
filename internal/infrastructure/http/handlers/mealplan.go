package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hungryjack/backend/internal/ports/inbound"
)

type generatePlanRequest struct {
	UserID           string `json:"user_id"`
	DietaryProfileID string `json:"dietary_profile_id"`
	Days             int    `json:"days"`
	// Pointer so an absent field defaults to true
	IncludeShoppingList *bool `json:"include_shopping_list"`
}

type generatePlanResponse struct {
	MealPlan       interface{} `json:"meal_plan"`
	ShoppingListID string      `json:"shopping_list_id,omitempty"`
}

// GeneratePlan handles POST /api/meal-plans/generate
func (h *Handlers) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	includeList := true
	if req.IncludeShoppingList != nil {
		includeList = *req.IncludeShoppingList
	}

	result, err := h.planner.GeneratePlan(r.Context(), inbound.GeneratePlanCommand{
		UserID:              req.UserID,
		DietaryProfileID:    req.DietaryProfileID,
		Days:                req.Days,
		IncludeShoppingList: includeList,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data: generatePlanResponse{
			MealPlan:       result.Plan,
			ShoppingListID: result.ShoppingListID,
		},
		Message: "Meal plan generated successfully",
	})
}

// ListMealPlans handles GET /api/meal-plans
func (h *Handlers) ListMealPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planner.ListMealPlans(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plans,
	})
}

// GetMealPlan handles GET /api/meal-plans/{id}
func (h *Handlers) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planner.GetMealPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
	})
}

// GetMealPlanIngredients handles GET /api/meal-plans/{id}/ingredients
func (h *Handlers) GetMealPlanIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.planner.PlanIngredients(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"ingredients": ingredients},
	})
}
