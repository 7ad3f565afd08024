package debt

import (
	"context"
	"fmt"
	"log"
	"time"

	"kakebo/internal/domain/category"
	"kakebo/internal/domain/money"
)

// Service contains the business logic for debt operations
type Service struct {
	repo Repository
}

// NewService creates a new debt service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a manual debt to a plan.
func (s *Service) Create(ctx context.Context, planID string, params CreateParams) (*Debt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := &Debt{
		PlanID:            planID,
		Name:              params.Name,
		Type:              params.Type,
		InitialBalance:    params.InitialBalance,
		CurrentBalance:    params.InitialBalance,
		MonthlyMinimum:    params.MonthlyMinimum,
		InstallmentMonths: params.InstallmentMonths,
		InterestRate:      params.InterestRate,
		Amount:            params.Amount,
		CreditLimit:       params.CreditLimit,
		DueDate:           params.DueDate,
	}

	created, err := s.repo.Create(ctx, planID, d)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return created, nil
}

// GetOwned fetches a debt and verifies it belongs to the given plan.
func (s *Service) GetOwned(ctx context.Context, id, planID string) (*Debt, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDebtNotFound
	}
	if d.PlanID != planID {
		return nil, ErrForbidden
	}
	return d, nil
}

// Update applies a partial update to a debt.
func (s *Service) Update(ctx context.Context, id, planID string, params UpdateParams) (*Debt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetOwned(ctx, id, planID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes a debt. Expense-sourced debts with an outstanding
// balance are refused: settling the source expense is the way out.
func (s *Service) Delete(ctx context.Context, id, planID string) error {
	d, err := s.GetOwned(ctx, id, planID)
	if err != nil {
		return err
	}
	if !CanDelete(d) {
		return ErrSourceLinked
	}
	return s.repo.Delete(ctx, id)
}

// ApplyPayment records a payment against a debt and rolls the balance
// forward. The balance never drops below zero; reaching zero marks the
// debt paid. The payment row and the balance update are committed
// together, so a failure leaves neither behind.
func (s *Service) ApplyPayment(ctx context.Context, id, planID string, amount float64, now time.Time) (*Debt, *Payment, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidPayment
	}
	d, err := s.GetOwned(ctx, id, planID)
	if err != nil {
		return nil, nil, err
	}

	newBalance := money.Sanitize(d.CurrentBalance - amount)
	paidAmount := d.PaidAmount + amount
	if d.InitialBalance > 0 && paidAmount > d.InitialBalance {
		paidAmount = d.InitialBalance
	}
	paid := newBalance == 0

	updated, payment, err := s.repo.RecordPayment(ctx,
		PaymentParams{
			DebtID: id,
			Amount: amount,
			Month:  PaymentMonth(now),
		},
		UpdateParams{
			CurrentBalance: &newBalance,
			PaidAmount:     &paidAmount,
			Paid:           &paid,
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return updated, payment, nil
}

// ExpenseDebtParams describes the unpaid remainder of an expense that
// should materialize as (or settle) a source-linked debt.
type ExpenseDebtParams struct {
	PlanID       string
	ExpenseID    string
	ExpenseName  string
	CategoryID   string
	CategoryName string
	MonthKey     string
	Year         int
	Remaining    float64
}

// UpsertExpenseDebt converts an expense's unpaid remainder into a debt,
// keyed by (expense, month, year) so repeated runs stay idempotent.
// Exempt categories never generate debts. A remainder of zero or less
// settles any existing debt for that expense-month instead.
func (s *Service) UpsertExpenseDebt(ctx context.Context, params ExpenseDebtParams) (*Debt, error) {
	if category.IsNonDebtName(params.CategoryName) {
		return nil, ErrExemptCategory
	}

	existing, err := s.repo.GetBySourceExpense(ctx, params.PlanID, params.ExpenseID, params.MonthKey, params.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to look up expense debt: %w", err)
	}

	if existing != nil || params.Remaining <= 0 {
		return s.reconcileExpenseDebt(ctx, existing, params.Remaining)
	}

	d := &Debt{
		PlanID:             params.PlanID,
		Name:               fmt.Sprintf("%s: %s (%s %d)", params.CategoryName, params.ExpenseName, params.MonthKey, params.Year),
		Type:               TypeOther,
		InitialBalance:     params.Remaining,
		CurrentBalance:     params.Remaining,
		SourceType:         SourceTypeExpense,
		SourceExpenseID:    params.ExpenseID,
		SourceMonthKey:     params.MonthKey,
		SourceYear:         params.Year,
		SourceCategoryID:   params.CategoryID,
		SourceCategoryName: params.CategoryName,
		SourceExpenseName:  params.ExpenseName,
	}
	created, err := s.repo.Create(ctx, params.PlanID, d)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense debt: %w", err)
	}
	log.Printf("Created expense debt %s for expense %s (%s %d): %.2f",
		created.ID, params.ExpenseID, params.MonthKey, params.Year, params.Remaining)
	return created, nil
}

// SyncExpenseDebt refreshes or settles the debt previously generated
// from an expense, without ever creating one: only the carryover run
// decides when a remainder becomes a debt. A no-op when no linked debt
// exists.
func (s *Service) SyncExpenseDebt(ctx context.Context, planID, expenseID, monthKey string, year int, remaining float64) (*Debt, error) {
	existing, err := s.repo.GetBySourceExpense(ctx, planID, expenseID, monthKey, year)
	if err != nil {
		return nil, fmt.Errorf("failed to look up expense debt: %w", err)
	}
	if existing == nil {
		return nil, nil
	}
	return s.reconcileExpenseDebt(ctx, existing, remaining)
}

// reconcileExpenseDebt moves an existing expense debt to match the
// expense's current remainder, settling it when nothing is left.
func (s *Service) reconcileExpenseDebt(ctx context.Context, existing *Debt, remaining float64) (*Debt, error) {
	if remaining <= 0 {
		if existing == nil || existing.Paid {
			return existing, nil
		}
		zero := 0.0
		paid := true
		settled, err := s.repo.Update(ctx, existing.ID, UpdateParams{
			CurrentBalance: &zero,
			PaidAmount:     &existing.InitialBalance,
			Paid:           &paid,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to settle expense debt: %w", err)
		}
		log.Printf("Settled expense debt %s (%s)", settled.ID, settled.Name)
		return settled, nil
	}

	paidAmount := money.Sanitize(existing.InitialBalance - remaining)
	paid := false
	updated, err := s.repo.Update(ctx, existing.ID, UpdateParams{
		CurrentBalance: &remaining,
		PaidAmount:     &paidAmount,
		Paid:           &paid,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to refresh expense debt: %w", err)
	}
	return updated, nil
}

// Summary aggregates a plan's debts for the dashboard.
type Summary struct {
	Debts               []*Debt `json:"debts"`
	TotalBalance        float64 `json:"totalBalance"`
	TotalMonthlyPayment float64 `json:"totalMonthlyPayment"`
	ActiveCount         int     `json:"activeCount"`
	PaidCount           int     `json:"paidCount"`
	ExpenseDebtCount    int     `json:"expenseDebtCount"`
	CreditCardCount     int     `json:"creditCardCount"`
}

// Summarize builds the aggregate view over a plan's debts.
func (s *Service) Summarize(ctx context.Context, planID string) (*Summary, error) {
	debts, err := s.repo.ListByPlanID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	summary := &Summary{Debts: debts}
	for _, d := range debts {
		if d.Paid || d.CurrentBalance <= 0 {
			summary.PaidCount++
		} else {
			summary.ActiveCount++
			summary.TotalBalance += d.CurrentBalance
		}
		if d.SourceType == SourceTypeExpense {
			summary.ExpenseDebtCount++
		}
		if d.Type == TypeCreditCard || d.Type == TypeStoreCard {
			summary.CreditCardCount++
		}
	}
	summary.TotalMonthlyPayment = TotalMonthlyPayments(debts)
	return summary, nil
}
