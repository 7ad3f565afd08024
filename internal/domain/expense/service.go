package expense

import (
	"context"
	"fmt"
	"log"

	"kakebo/internal/domain/debt"
)

// DebtSyncer keeps an expense's source-linked debt aligned with its
// unpaid remainder. It never creates debts; that decision belongs to
// the carryover run.
type DebtSyncer interface {
	SyncExpenseDebt(ctx context.Context, planID, expenseID, monthKey string, year int, remaining float64) (*debt.Debt, error)
}

// Service contains the business logic for expense operations
type Service struct {
	repo  Repository
	debts DebtSyncer
}

// NewService creates a new expense service
func NewService(repo Repository, debts DebtSyncer) *Service {
	return &Service{repo: repo, debts: debts}
}

// Create adds an expense to a plan.
func (s *Service) Create(ctx context.Context, planID string, params CreateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, planID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// GetOwned fetches an expense and verifies it belongs to the given plan.
func (s *Service) GetOwned(ctx context.Context, id, planID string) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	if e.PlanID != planID {
		return nil, ErrForbidden
	}
	return e, nil
}

// Update applies a partial update to an expense and keeps any linked
// debt in sync with the new remainder.
func (s *Service) Update(ctx context.Context, id, planID string, params UpdateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetOwned(ctx, id, planID); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.syncLinkedDebt(ctx, updated)
	return updated, nil
}

// Delete removes a paid expense. Unpaid expenses are refused: deleting
// one would strand the debt it may have generated, since expense debts
// only settle through their source expense. Envelopes never generate
// debts, so they can go at any time.
func (s *Service) Delete(ctx context.Context, id, planID string) error {
	e, err := s.GetOwned(ctx, id, planID)
	if err != nil {
		return err
	}
	if !e.Paid && !e.IsAllocation {
		return ErrExpenseUnpaid
	}
	return s.repo.Delete(ctx, id)
}

// Allocate records a partial payment against an expense. Allocations
// accumulate; covering the full amount marks the expense paid and
// settles any debt the expense previously generated.
func (s *Service) Allocate(ctx context.Context, id, planID string, amount float64) (*Expense, error) {
	if amount <= 0 {
		return nil, ErrInvalidAllocation
	}
	e, err := s.GetOwned(ctx, id, planID)
	if err != nil {
		return nil, err
	}

	paidAmount := e.PaidAmount + amount
	paid := paidAmount >= e.Amount
	updated, err := s.repo.Update(ctx, id, UpdateParams{
		PaidAmount: &paidAmount,
		Paid:       &paid,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record allocation: %w", err)
	}

	s.syncLinkedDebt(ctx, updated)
	return updated, nil
}

// syncLinkedDebt pushes the expense's current remainder into the debt
// layer. Failures are logged, not returned: the allocation itself has
// already been recorded and the nightly carryover run will reconcile.
func (s *Service) syncLinkedDebt(ctx context.Context, e *Expense) {
	_, err := s.debts.SyncExpenseDebt(ctx, e.PlanID, e.ID, debt.MonthKey(e.Month), e.Year, e.Remaining())
	if err != nil {
		log.Printf("Failed to sync debt for expense %s: %v", e.ID, err)
	}
}
