package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hungryjack/backend/internal/ports/inbound"
)

type buildShoppingListRequest struct {
	UserID     string `json:"user_id"`
	MealPlanID string `json:"meal_plan_id"`
}

type markPurchasedRequest struct {
	IsPurchased bool `json:"is_purchased"`
}

// BuildShoppingList handles POST /api/shopping-lists/generate
func (h *Handlers) BuildShoppingList(w http.ResponseWriter, r *http.Request) {
	var req buildShoppingListRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	list, err := h.planner.BuildShoppingList(r.Context(), inbound.BuildShoppingListCommand{
		UserID:     req.UserID,
		MealPlanID: req.MealPlanID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    list,
		Message: "Shopping list created successfully",
	})
}

// GetShoppingList handles GET /api/shopping-lists/{id}
func (h *Handlers) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	list, err := h.planner.GetShoppingList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
	})
}

// MarkItemPurchased handles PUT /api/shopping-lists/{id}/items/{item_id}
func (h *Handlers) MarkItemPurchased(w http.ResponseWriter, r *http.Request) {
	var req markPurchasedRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	item, err := h.planner.MarkItemPurchased(
		r.Context(),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "item_id"),
		req.IsPurchased,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    item,
		Message: "Shopping list item updated successfully",
	})
}
