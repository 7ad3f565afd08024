package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"kakebo/internal/domain/debt"
	"kakebo/internal/domain/money"
	"kakebo/internal/domain/plan"
)

type DebtHandler struct {
	planRepo plan.Repository
	debtRepo debt.Repository
	debts    *debt.Service
}

func NewDebtHandler(planRepo plan.Repository, debtRepo debt.Repository, debts *debt.Service) *DebtHandler {
	return &DebtHandler{planRepo: planRepo, debtRepo: debtRepo, debts: debts}
}

// Request/Response DTOs

type CreateDebtRequest struct {
	PlanID            string        `json:"planId"`
	Name              string        `json:"name"`
	Type              string        `json:"type"`
	InitialBalance    money.Amount  `json:"initialBalance"`
	MonthlyMinimum    *money.Amount `json:"monthlyMinimum,omitempty"`
	InstallmentMonths *int          `json:"installmentMonths,omitempty"`
	InterestRate      *float64      `json:"interestRate,omitempty"`
	Amount            money.Amount  `json:"amount"`
	CreditLimit       *money.Amount `json:"creditLimit,omitempty"`
	DueDate           string        `json:"dueDate,omitempty"`
}

type UpdateDebtRequest struct {
	Name              *string       `json:"name,omitempty"`
	InitialBalance    *money.Amount `json:"initialBalance,omitempty"`
	CurrentBalance    *money.Amount `json:"currentBalance,omitempty"`
	MonthlyMinimum    *money.Amount `json:"monthlyMinimum,omitempty"`
	InstallmentMonths *int          `json:"installmentMonths,omitempty"`
	InterestRate      *float64      `json:"interestRate,omitempty"`
	Amount            *money.Amount `json:"amount,omitempty"`
	CreditLimit       *money.Amount `json:"creditLimit,omitempty"`
	Paid              *bool         `json:"paid,omitempty"`
	PaidAmount        *money.Amount `json:"paidAmount,omitempty"`
	DueDate           *string       `json:"dueDate,omitempty"`
}

type DebtPaymentRequest struct {
	Amount money.Amount `json:"amount"`
}

type DebtResponse struct {
	*debt.Debt
	MonthlyPayment float64      `json:"monthlyPayment"`
	PercentPaid    float64      `json:"percentPaid"`
	DuePreview     debt.Preview `json:"duePreview"`
}

type DebtPaymentResponse struct {
	Debt    DebtResponse  `json:"debt"`
	Payment *debt.Payment `json:"payment"`
}

type DebtSummaryResponse struct {
	Debts               []DebtResponse `json:"debts"`
	TotalBalance        float64        `json:"totalBalance"`
	TotalMonthlyPayment float64        `json:"totalMonthlyPayment"`
	ActiveCount         int            `json:"activeCount"`
	PaidCount           int            `json:"paidCount"`
	ExpenseDebtCount    int            `json:"expenseDebtCount"`
	CreditCardCount     int            `json:"creditCardCount"`
}

func toDebtResponse(d *debt.Debt, payDate int, now time.Time) DebtResponse {
	return DebtResponse{
		Debt:           d,
		MonthlyPayment: debt.MonthlyPayment(d),
		PercentPaid:    debt.PercentPaid(d),
		DuePreview:     debt.DuePreview(d.Paid, d.DueDate, payDate, now),
	}
}

// HandleDebts routes requests to the appropriate handler based on method
func (h *DebtHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListDebts(w, r)
	case http.MethodPost:
		h.handleCreateDebt(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleDebtByID routes requests for a specific debt
func (h *DebtHandler) HandleDebtByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetDebt(w, r)
	case http.MethodPut:
		h.handleUpdateDebt(w, r)
	case http.MethodDelete:
		h.handleDeleteDebt(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleDebtPayments handles POST (apply) and GET (history) on
// /api/debts/{id}/payments
func (h *DebtHandler) HandleDebtPayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleApplyPayment(w, r)
	case http.MethodGet:
		h.handleListPayments(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DebtHandler) handleListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.URL.Query().Get("planId"), userID)
	if !ok {
		return
	}

	debts, err := h.debtRepo.ListByPlanID(r.Context(), pl.ID)
	if err != nil {
		log.Printf("Error listing debts for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to list debts", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	response := make([]DebtResponse, 0, len(debts))
	for _, d := range debts {
		response = append(response, toDebtResponse(d, pl.PayDate, now))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *DebtHandler) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create debt request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, req.PlanID, userID)
	if !ok {
		return
	}

	params := debt.CreateParams{
		Name:              req.Name,
		Type:              req.Type,
		InitialBalance:    req.InitialBalance.Float64(),
		MonthlyMinimum:    req.MonthlyMinimum.Ptr(),
		InstallmentMonths: req.InstallmentMonths,
		InterestRate:      req.InterestRate,
		Amount:            req.Amount.Float64(),
		CreditLimit:       req.CreditLimit.Ptr(),
		DueDate:           req.DueDate,
	}

	d, err := h.debts.Create(r.Context(), pl.ID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toDebtResponse(d, pl.PayDate, time.Now()))
}

func (h *DebtHandler) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	d, pl, ok := h.ownedDebt(w, r, userID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDebtResponse(d, pl.PayDate, time.Now()))
}

func (h *DebtHandler) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	d, pl, ok := h.ownedDebt(w, r, userID)
	if !ok {
		return
	}

	var req UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update debt request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := debt.UpdateParams{
		Name:              req.Name,
		InitialBalance:    req.InitialBalance.Ptr(),
		CurrentBalance:    req.CurrentBalance.Ptr(),
		MonthlyMinimum:    req.MonthlyMinimum.Ptr(),
		InstallmentMonths: req.InstallmentMonths,
		InterestRate:      req.InterestRate,
		Amount:            req.Amount.Ptr(),
		CreditLimit:       req.CreditLimit.Ptr(),
		Paid:              req.Paid,
		PaidAmount:        req.PaidAmount.Ptr(),
		DueDate:           req.DueDate,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.debts.Update(r.Context(), d.ID, d.PlanID, params)
	if err != nil {
		h.writeDebtError(w, d.ID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDebtResponse(updated, pl.PayDate, time.Now()))
}

func (h *DebtHandler) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	d, _, ok := h.ownedDebt(w, r, userID)
	if !ok {
		return
	}

	if err := h.debts.Delete(r.Context(), d.ID, d.PlanID); err != nil {
		if errors.Is(err, debt.ErrSourceLinked) {
			http.Error(w, "Debt is linked to an unpaid expense and cannot be deleted", http.StatusConflict)
			return
		}
		h.writeDebtError(w, d.ID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DebtHandler) handleApplyPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	d, pl, ok := h.ownedDebt(w, r, userID)
	if !ok {
		return
	}

	var req DebtPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding debt payment request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	updated, payment, err := h.debts.ApplyPayment(r.Context(), d.ID, d.PlanID, req.Amount.Float64(), now)
	if err != nil {
		if errors.Is(err, debt.ErrInvalidPayment) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeDebtError(w, d.ID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(DebtPaymentResponse{
		Debt:    toDebtResponse(updated, pl.PayDate, now),
		Payment: payment,
	})
}

func (h *DebtHandler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	d, _, ok := h.ownedDebt(w, r, userID)
	if !ok {
		return
	}

	var (
		payments []*debt.Payment
		err      error
	)

	if month := r.URL.Query().Get("month"); month != "" {
		payments, err = h.debtRepo.ListPaymentsByMonth(r.Context(), d.ID, month)
	} else {
		payments, err = h.debtRepo.ListPaymentsByDebtID(r.Context(), d.ID)
	}
	if err != nil {
		log.Printf("Error listing payments for debt %s: %v", d.ID, err)
		http.Error(w, "Failed to list payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

// HandleDebtSummary handles GET /api/debts/summary
func (h *DebtHandler) HandleDebtSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, r.URL.Query().Get("planId"), userID)
	if !ok {
		return
	}

	summary, err := h.debts.Summarize(r.Context(), pl.ID)
	if err != nil {
		log.Printf("Error summarizing debts for plan %s: %v", pl.ID, err)
		http.Error(w, "Failed to summarize debts", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	response := DebtSummaryResponse{
		Debts:               make([]DebtResponse, 0, len(summary.Debts)),
		TotalBalance:        summary.TotalBalance,
		TotalMonthlyPayment: summary.TotalMonthlyPayment,
		ActiveCount:         summary.ActiveCount,
		PaidCount:           summary.PaidCount,
		ExpenseDebtCount:    summary.ExpenseDebtCount,
		CreditCardCount:     summary.CreditCardCount,
	}
	for _, d := range summary.Debts {
		response.Debts = append(response.Debts, toDebtResponse(d, pl.PayDate, now))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ownedDebt resolves the {id} path value and verifies the debt's plan
// belongs to the user.
func (h *DebtHandler) ownedDebt(w http.ResponseWriter, r *http.Request, userID int64) (*debt.Debt, *plan.Plan, bool) {
	debtID := r.PathValue("id")
	if debtID == "" {
		http.Error(w, "Debt ID is required", http.StatusBadRequest)
		return nil, nil, false
	}

	d, err := h.debtRepo.GetByID(r.Context(), debtID)
	if err != nil {
		log.Printf("Error getting debt %s: %v", debtID, err)
		http.Error(w, "Failed to get debt", http.StatusInternalServerError)
		return nil, nil, false
	}
	if d == nil {
		http.Error(w, "Debt not found", http.StatusNotFound)
		return nil, nil, false
	}

	pl, ok := requireOwnedPlan(w, r, h.planRepo, d.PlanID, userID)
	if !ok {
		return nil, nil, false
	}
	return d, pl, true
}

func (h *DebtHandler) writeDebtError(w http.ResponseWriter, debtID string, err error) {
	switch {
	case errors.Is(err, debt.ErrDebtNotFound):
		http.Error(w, "Debt not found", http.StatusNotFound)
	case errors.Is(err, debt.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		log.Printf("Error handling debt %s: %v", debtID, err)
		http.Error(w, "Failed to process debt", http.StatusInternalServerError)
	}
}
