package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"kakebo/internal/domain/income"
	"kakebo/internal/domain/money"
	"kakebo/internal/domain/plan"
)

type IncomeHandler struct {
	planRepo   plan.Repository
	incomeRepo income.Repository
}

func NewIncomeHandler(planRepo plan.Repository, incomeRepo income.Repository) *IncomeHandler {
	return &IncomeHandler{planRepo: planRepo, incomeRepo: incomeRepo}
}

// Request/Response DTOs

type CreateIncomeRequest struct {
	PlanID    string       `json:"planId"`
	Name      string       `json:"name"`
	Amount    money.Amount `json:"amount"`
	Month     int          `json:"month"`
	Year      int          `json:"year"`
	Recurring bool         `json:"recurring"`
}

type UpdateIncomeRequest struct {
	Name      *string       `json:"name,omitempty"`
	Amount    *money.Amount `json:"amount,omitempty"`
	Recurring *bool         `json:"recurring,omitempty"`
}

// HandleIncomes routes requests to the appropriate handler based on method
func (h *IncomeHandler) HandleIncomes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListIncomes(w, r)
	case http.MethodPost:
		h.handleCreateIncome(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleIncomeByID routes requests for a specific income
func (h *IncomeHandler) HandleIncomeByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.handleUpdateIncome(w, r)
	case http.MethodDelete:
		h.handleDeleteIncome(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *IncomeHandler) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.URL.Query().Get("planId"), userID)
	if !ok {
		return
	}

	var (
		incomes []*income.Income
		err     error
	)

	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr != "" && yearStr != "" {
		month, merr := strconv.Atoi(monthStr)
		year, yerr := strconv.Atoi(yearStr)
		if merr != nil || yerr != nil {
			http.Error(w, "Invalid month or year", http.StatusBadRequest)
			return
		}
		incomes, err = h.incomeRepo.ListByPlanMonth(r.Context(), pl.ID, month, year)
	} else {
		incomes, err = h.incomeRepo.ListByPlanID(r.Context(), pl.ID)
	}
	if err != nil {
		log.Printf("Error listing incomes for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to list incomes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(incomes)
}

func (h *IncomeHandler) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create income request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, req.PlanID, userID)
	if !ok {
		return
	}

	params := income.CreateParams{
		Name:      req.Name,
		Amount:    req.Amount.Float64(),
		Month:     req.Month,
		Year:      req.Year,
		Recurring: req.Recurring,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, err := h.incomeRepo.Create(r.Context(), pl.ID, params)
	if err != nil {
		log.Printf("Error creating income for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to create income", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(in)
}

func (h *IncomeHandler) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	in, ok := h.ownedIncome(w, r, userID)
	if !ok {
		return
	}

	var req UpdateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update income request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := income.UpdateParams{
		Name:      req.Name,
		Amount:    req.Amount.Ptr(),
		Recurring: req.Recurring,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.incomeRepo.Update(r.Context(), in.ID, params)
	if err != nil {
		log.Printf("Error updating income %s: %v", in.ID, err)
		http.Error(w, "Failed to update income", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *IncomeHandler) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	in, ok := h.ownedIncome(w, r, userID)
	if !ok {
		return
	}

	if err := h.incomeRepo.Delete(r.Context(), in.ID); err != nil {
		log.Printf("Error deleting income %s: %v", in.ID, err)
		http.Error(w, "Failed to delete income", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedIncome resolves the {id} path value and verifies the income's plan
// belongs to the user.
func (h *IncomeHandler) ownedIncome(w http.ResponseWriter, r *http.Request, userID int64) (*income.Income, bool) {
	incomeID := r.PathValue("id")
	if incomeID == "" {
		http.Error(w, "Income ID is required", http.StatusBadRequest)
		return nil, false
	}

	in, err := h.incomeRepo.GetByID(r.Context(), incomeID)
	if err != nil {
		log.Printf("Error getting income %s: %v", incomeID, err)
		http.Error(w, "Failed to get income", http.StatusInternalServerError)
		return nil, false
	}
	if in == nil {
		http.Error(w, "Income not found", http.StatusNotFound)
		return nil, false
	}

	if _, ok := requireOwnedPlan(w, r, h.planRepo, in.PlanID, userID); !ok {
		return nil, false
	}
	return in, true
}
