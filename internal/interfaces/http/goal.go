package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kakebo/internal/domain/goal"
	"kakebo/internal/domain/money"
	"kakebo/internal/domain/plan"
)

type GoalHandler struct {
	planRepo plan.Repository
	goalRepo goal.Repository
}

func NewGoalHandler(planRepo plan.Repository, goalRepo goal.Repository) *GoalHandler {
	return &GoalHandler{planRepo: planRepo, goalRepo: goalRepo}
}

// Request/Response DTOs

type CreateGoalRequest struct {
	PlanID       string       `json:"planId"`
	Name         string       `json:"name"`
	TargetAmount money.Amount `json:"targetAmount"`
	TargetDate   string       `json:"targetDate,omitempty"`
}

type UpdateGoalRequest struct {
	Name         *string       `json:"name,omitempty"`
	TargetAmount *money.Amount `json:"targetAmount,omitempty"`
	SavedAmount  *money.Amount `json:"savedAmount,omitempty"`
	TargetDate   *string       `json:"targetDate,omitempty"`
	Achieved     *bool         `json:"achieved,omitempty"`
}

type ContributeGoalRequest struct {
	Amount money.Amount `json:"amount"`
}

type GoalResponse struct {
	*goal.Goal
	Progress float64 `json:"progress"`
}

func toGoalResponse(g *goal.Goal) GoalResponse {
	return GoalResponse{Goal: g, Progress: g.Progress()}
}

// HandleGoals routes requests to the appropriate handler based on method
func (h *GoalHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListGoals(w, r)
	case http.MethodPost:
		h.handleCreateGoal(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleGoalByID routes requests for a specific goal
func (h *GoalHandler) HandleGoalByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetGoal(w, r)
	case http.MethodPut:
		h.handleUpdateGoal(w, r)
	case http.MethodDelete:
		h.handleDeleteGoal(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *GoalHandler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.URL.Query().Get("planId"), userID)
	if !ok {
		return
	}

	goals, err := h.goalRepo.ListByPlanID(r.Context(), pl.ID)
	if err != nil {
		log.Printf("Error listing goals for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}

	response := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		response = append(response, toGoalResponse(g))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *GoalHandler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create goal request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, req.PlanID, userID)
	if !ok {
		return
	}

	params := goal.CreateParams{
		Name:         req.Name,
		TargetAmount: req.TargetAmount.Float64(),
		TargetDate:   req.TargetDate,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.goalRepo.Create(r.Context(), pl.ID, params)
	if err != nil {
		log.Printf("Error creating goal for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toGoalResponse(g))
}

func (h *GoalHandler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	g, ok := h.ownedGoal(w, r, userID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(g))
}

func (h *GoalHandler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	g, ok := h.ownedGoal(w, r, userID)
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update goal request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := goal.UpdateParams{
		Name:         req.Name,
		TargetAmount: req.TargetAmount.Ptr(),
		SavedAmount:  req.SavedAmount.Ptr(),
		TargetDate:   req.TargetDate,
		Achieved:     req.Achieved,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.goalRepo.Update(r.Context(), g.ID, params)
	if err != nil {
		log.Printf("Error updating goal %s: %v", g.ID, err)
		http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(updated))
}

func (h *GoalHandler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	g, ok := h.ownedGoal(w, r, userID)
	if !ok {
		return
	}

	if err := h.goalRepo.Delete(r.Context(), g.ID); err != nil {
		log.Printf("Error deleting goal %s: %v", g.ID, err)
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGoalContribute handles POST /api/goals/{id}/contributions
func (h *GoalHandler) HandleGoalContribute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	g, ok := h.ownedGoal(w, r, userID)
	if !ok {
		return
	}

	var req ContributeGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding goal contribution request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params, err := g.ApplyContribution(req.Amount.Float64())
	if err != nil {
		if errors.Is(err, goal.ErrInvalidContribution) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to apply contribution", http.StatusInternalServerError)
		return
	}

	updated, err := h.goalRepo.Update(r.Context(), g.ID, params)
	if err != nil {
		log.Printf("Error applying contribution to goal %s: %v", g.ID, err)
		http.Error(w, "Failed to apply contribution", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(updated))
}

// ownedGoal resolves the {id} path value and verifies the goal's plan
// belongs to the user.
func (h *GoalHandler) ownedGoal(w http.ResponseWriter, r *http.Request, userID int64) (*goal.Goal, bool) {
	goalID := r.PathValue("id")
	if goalID == "" {
		http.Error(w, "Goal ID is required", http.StatusBadRequest)
		return nil, false
	}

	g, err := h.goalRepo.GetByID(r.Context(), goalID)
	if err != nil {
		log.Printf("Error getting goal %s: %v", goalID, err)
		http.Error(w, "Failed to get goal", http.StatusInternalServerError)
		return nil, false
	}
	if g == nil {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return nil, false
	}

	if _, ok := requireOwnedPlan(w, r, h.planRepo, g.PlanID, userID); !ok {
		return nil, false
	}
	return g, true
}
