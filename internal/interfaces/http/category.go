package http

import (
	"encoding/json"
	"log"
	"net/http"

	"kakebo/internal/domain/category"
	"kakebo/internal/domain/plan"
)

type CategoryHandler struct {
	planRepo     plan.Repository
	categoryRepo category.Repository
}

func NewCategoryHandler(planRepo plan.Repository, categoryRepo category.Repository) *CategoryHandler {
	return &CategoryHandler{planRepo: planRepo, categoryRepo: categoryRepo}
}

// Request/Response DTOs

type CreateCategoryRequest struct {
	PlanID   string `json:"planId"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Featured bool   `json:"featured"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Color    *string `json:"color,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
}

// HandleCategories routes requests to the appropriate handler based on method
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListCategories(w, r)
	case http.MethodPost:
		h.handleCreateCategory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCategoryByID routes requests for a specific category
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.handleUpdateCategory(w, r)
	case http.MethodDelete:
		h.handleDeleteCategory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CategoryHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.URL.Query().Get("planId"), userID)
	if !ok {
		return
	}

	categories, err := h.categoryRepo.ListByPlanID(r.Context(), pl.ID)
	if err != nil {
		log.Printf("Error listing categories for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create category request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, req.PlanID, userID)
	if !ok {
		return
	}

	params := category.CreateParams{
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
		Featured: req.Featured,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.categoryRepo.Create(r.Context(), pl.ID, params)
	if err != nil {
		log.Printf("Error creating category for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *CategoryHandler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	c, ok := h.ownedCategory(w, r, userID)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update category request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := category.UpdateParams{
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
		Featured: req.Featured,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.categoryRepo.Update(r.Context(), c.ID, params)
	if err != nil {
		log.Printf("Error updating category %s: %v", c.ID, err)
		http.Error(w, "Failed to update category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *CategoryHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	c, ok := h.ownedCategory(w, r, userID)
	if !ok {
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), c.ID); err != nil {
		log.Printf("Error deleting category %s: %v", c.ID, err)
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedCategory resolves the {id} path value and verifies the category's
// plan belongs to the user.
func (h *CategoryHandler) ownedCategory(w http.ResponseWriter, r *http.Request, userID int64) (*category.Category, bool) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return nil, false
	}

	c, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		log.Printf("Error getting category %s: %v", categoryID, err)
		http.Error(w, "Failed to get category", http.StatusInternalServerError)
		return nil, false
	}
	if c == nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return nil, false
	}

	if _, ok := requireOwnedPlan(w, r, h.planRepo, c.PlanID, userID); !ok {
		return nil, false
	}
	return c, true
}
