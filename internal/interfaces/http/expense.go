package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"kakebo/internal/domain/expense"
	"kakebo/internal/domain/income"
	"kakebo/internal/domain/money"
	"kakebo/internal/domain/notification"
	"kakebo/internal/domain/plan"
)

// BudgetNotifier pushes budget notifications to a user's devices.
type BudgetNotifier interface {
	SendToUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error
}

type ExpenseHandler struct {
	planRepo    plan.Repository
	expenseRepo expense.Repository
	expenses    *expense.Service
	incomeRepo  income.Repository
	notifier    BudgetNotifier
}

func NewExpenseHandler(planRepo plan.Repository, expenseRepo expense.Repository, expenses *expense.Service, incomeRepo income.Repository, notifier BudgetNotifier) *ExpenseHandler {
	return &ExpenseHandler{
		planRepo:    planRepo,
		expenseRepo: expenseRepo,
		expenses:    expenses,
		incomeRepo:  incomeRepo,
		notifier:    notifier,
	}
}

// Request/Response DTOs

type CreateExpenseRequest struct {
	PlanID       string       `json:"planId"`
	CategoryID   string       `json:"categoryId"`
	Name         string       `json:"name"`
	Amount       money.Amount `json:"amount"`
	IsAllocation bool         `json:"isAllocation"`
	DueDate      string       `json:"dueDate,omitempty"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
}

type UpdateExpenseRequest struct {
	CategoryID *string       `json:"categoryId,omitempty"`
	Name       *string       `json:"name,omitempty"`
	Amount     *money.Amount `json:"amount,omitempty"`
	Paid       *bool         `json:"paid,omitempty"`
	PaidAmount *money.Amount `json:"paidAmount,omitempty"`
	DueDate    *string       `json:"dueDate,omitempty"`
}

type AllocateExpenseRequest struct {
	Amount money.Amount `json:"amount"`
}

// HandleExpenses routes requests to the appropriate handler based on method
func (h *ExpenseHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListExpenses(w, r)
	case http.MethodPost:
		h.handleCreateExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExpenseByID routes requests for a specific expense
func (h *ExpenseHandler) HandleExpenseByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetExpense(w, r)
	case http.MethodPut:
		h.handleUpdateExpense(w, r)
	case http.MethodDelete:
		h.handleDeleteExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ExpenseHandler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.URL.Query().Get("planId"), userID)
	if !ok {
		return
	}

	var (
		expenses []*expense.Expense
		err      error
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
		expenses, err = h.expenseRepo.ListByPlanMonth(r.Context(), pl.ID, month, year)
	} else {
		expenses, err = h.expenseRepo.ListByPlanID(r.Context(), pl.ID)
	}
	if err != nil {
		log.Printf("Error listing expenses for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

func (h *ExpenseHandler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, req.PlanID, userID)
	if !ok {
		return
	}

	params := expense.CreateParams{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Amount:       req.Amount.Float64(),
		IsAllocation: req.IsAllocation,
		DueDate:      req.DueDate,
		Month:        req.Month,
		Year:         req.Year,
	}

	prevSpent := h.monthSpend(r.Context(), pl.ID, req.Month, req.Year)

	e, err := h.expenses.Create(r.Context(), pl.ID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.notifyThresholds(r, userID, pl.ID, e.Month, e.Year, prevSpent)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

func (h *ExpenseHandler) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	e, ok := h.ownedExpense(w, r, userID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

func (h *ExpenseHandler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	e, ok := h.ownedExpense(w, r, userID)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := expense.UpdateParams{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount.Ptr(),
		Paid:       req.Paid,
		PaidAmount: req.PaidAmount.Ptr(),
		DueDate:    req.DueDate,
	}

	prevSpent := h.monthSpend(r.Context(), e.PlanID, e.Month, e.Year)

	updated, err := h.expenses.Update(r.Context(), e.ID, e.PlanID, params)
	if err != nil {
		h.writeExpenseError(w, e.ID, err)
		return
	}

	h.notifyThresholds(r, userID, e.PlanID, e.Month, e.Year, prevSpent)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *ExpenseHandler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	e, ok := h.ownedExpense(w, r, userID)
	if !ok {
		return
	}

	if err := h.expenses.Delete(r.Context(), e.ID, e.PlanID); err != nil {
		if errors.Is(err, expense.ErrExpenseUnpaid) {
			http.Error(w, "Expense is unpaid. Mark it paid first", http.StatusConflict)
			return
		}
		h.writeExpenseError(w, e.ID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExpenseAllocate handles POST /api/expenses/{id}/allocations
func (h *ExpenseHandler) HandleExpenseAllocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	e, ok := h.ownedExpense(w, r, userID)
	if !ok {
		return
	}

	var req AllocateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding allocate expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.expenses.Allocate(r.Context(), e.ID, e.PlanID, req.Amount.Float64())
	if err != nil {
		if errors.Is(err, expense.ErrInvalidAllocation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeExpenseError(w, e.ID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// ownedExpense resolves the {id} path value and verifies the expense's
// plan belongs to the user.
func (h *ExpenseHandler) ownedExpense(w http.ResponseWriter, r *http.Request, userID int64) (*expense.Expense, bool) {
	expenseID := r.PathValue("id")
	if expenseID == "" {
		http.Error(w, "Expense ID is required", http.StatusBadRequest)
		return nil, false
	}

	e, err := h.expenseRepo.GetByID(r.Context(), expenseID)
	if err != nil {
		log.Printf("Error getting expense %s: %v", expenseID, err)
		http.Error(w, "Failed to get expense", http.StatusInternalServerError)
		return nil, false
	}
	if e == nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return nil, false
	}

	if _, ok := requireOwnedPlan(w, r, h.planRepo, e.PlanID, userID); !ok {
		return nil, false
	}
	return e, true
}

func (h *ExpenseHandler) writeExpenseError(w http.ResponseWriter, expenseID string, err error) {
	switch {
	case errors.Is(err, expense.ErrExpenseNotFound):
		http.Error(w, "Expense not found", http.StatusNotFound)
	case errors.Is(err, expense.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		log.Printf("Error handling expense %s: %v", expenseID, err)
		http.Error(w, "Failed to process expense", http.StatusInternalServerError)
	}
}

// monthSpend sums the planned amounts for one month of a plan. Errors are
// swallowed: spend totals only feed best-effort notifications.
func (h *ExpenseHandler) monthSpend(ctx context.Context, planID string, month, year int) float64 {
	expenses, err := h.expenseRepo.ListByPlanMonth(ctx, planID, month, year)
	if err != nil {
		log.Printf("Error computing month spend for plan %s: %v", planID, err)
		return 0
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// notifyThresholds pushes a budget notification when the month's spending
// newly crossed a threshold of that month's income. Failures never
// propagate to the caller.
func (h *ExpenseHandler) notifyThresholds(r *http.Request, userID int64, planID string, month, year int, prevSpent float64) {
	if h.notifier == nil || h.incomeRepo == nil {
		return
	}

	ctx := r.Context()
	newSpent := h.monthSpend(ctx, planID, month, year)

	incomes, err := h.incomeRepo.ListByPlanMonth(ctx, planID, month, year)
	if err != nil {
		log.Printf("Error listing incomes for threshold check on plan %s: %v", planID, err)
		return
	}

	alert := notification.EvaluateThreshold(prevSpent, newSpent, income.MonthlyTotal(incomes))
	if alert == nil {
		return
	}

	data := map[string]string{
		"planId": planID,
		"month":  strconv.Itoa(month),
		"year":   strconv.Itoa(year),
	}
	if err := h.notifier.SendToUser(ctx, userID, alert.Title, alert.Message, notification.CategoryBudgets, data); err != nil {
		log.Printf("Error sending budget notification to user %d: %v", userID, err)
	}
}
