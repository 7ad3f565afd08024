package http

import (
	"encoding/json"
	"log"
	"net/http"

	"kakebo/internal/domain/category"
	"kakebo/internal/domain/plan"
)

type PlanHandler struct {
	planRepo   plan.Repository
	categories *category.Service
}

func NewPlanHandler(planRepo plan.Repository, categories *category.Service) *PlanHandler {
	return &PlanHandler{planRepo: planRepo, categories: categories}
}

// Request/Response DTOs

type CreatePlanRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	PayDate int    `json:"payDate"`
}

type UpdatePlanRequest struct {
	Name    *string `json:"name,omitempty"`
	PayDate *int    `json:"payDate,omitempty"`
}

// HandlePlans routes requests to the appropriate handler based on method
func (h *PlanHandler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListPlans(w, r)
	case http.MethodPost:
		h.handleCreatePlan(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandlePlanByID routes requests for a specific plan
func (h *PlanHandler) HandlePlanByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetPlan(w, r)
	case http.MethodPut:
		h.handleUpdatePlan(w, r)
	case http.MethodDelete:
		h.handleDeletePlan(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PlanHandler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	plans, err := h.planRepo.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing plans for user %d: %v", userID, err)
		http.Error(w, "Failed to list plans", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}

func (h *PlanHandler) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create plan request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Kind == "" {
		req.Kind = plan.KindPersonal
	}
	if req.PayDate == 0 {
		req.PayDate = plan.DefaultPayDate
	}

	params := plan.CreateParams{
		Name:    req.Name,
		Kind:    req.Kind,
		PayDate: req.PayDate,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pl, err := h.planRepo.Create(r.Context(), userID, params)
	if err != nil {
		log.Printf("Error creating plan for user %d: %v", userID, err)
		http.Error(w, "Failed to create plan", http.StatusInternalServerError)
		return
	}

	if err := h.categories.EnsureDefaults(r.Context(), pl.ID, pl.Kind); err != nil {
		// The plan is usable without seeds; log and carry on.
		log.Printf("Error seeding categories for plan %s: %v", pl.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pl)
}

func (h *PlanHandler) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.PathValue("id"), userID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pl)
}

func (h *PlanHandler) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.PathValue("id"), userID)
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update plan request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := plan.UpdateParams{
		Name:    req.Name,
		PayDate: req.PayDate,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.planRepo.Update(r.Context(), pl.ID, params)
	if err != nil {
		log.Printf("Error updating plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to update plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *PlanHandler) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.PathValue("id"), userID)
	if !ok {
		return
	}

	if err := h.planRepo.Delete(r.Context(), pl.ID); err != nil {
		log.Printf("Error deleting plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to delete plan", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
