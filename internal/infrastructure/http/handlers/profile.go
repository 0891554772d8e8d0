package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hungryjack/backend/internal/domain/profile"
)

// CreateProfile handles POST /api/dietary-profiles
func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.DietaryProfile
	if err := h.decodeBody(r, &p); err != nil {
		h.writeError(w, err)
		return
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		p.UserID = userID
	}

	created, err := h.planner.CreateProfile(r.Context(), &p)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    created,
		Message: "Dietary profile created successfully",
	})
}

// ListProfiles handles GET /api/dietary-profiles
func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.planner.ListProfiles(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    profiles,
	})
}

// GetProfile handles GET /api/dietary-profiles/{id}
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.planner.GetProfile(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("user_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    p,
	})
}
