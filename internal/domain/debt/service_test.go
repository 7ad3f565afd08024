package debt

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRepository implements Repository for testing
type mockRepository struct {
	createFunc             func(ctx context.Context, planID string, d *Debt) (*Debt, error)
	getByIDFunc            func(ctx context.Context, id string) (*Debt, error)
	listByPlanIDFunc       func(ctx context.Context, planID string) ([]*Debt, error)
	updateFunc             func(ctx context.Context, id string, params UpdateParams) (*Debt, error)
	deleteFunc             func(ctx context.Context, id string) error
	getBySourceFunc        func(ctx context.Context, planID, expenseID, monthKey string, year int) (*Debt, error)
	recordPaymentFunc      func(ctx context.Context, params PaymentParams, update UpdateParams) (*Debt, *Payment, error)
	listPaymentsByDebtFunc func(ctx context.Context, debtID string) ([]*Payment, error)
}

func (m *mockRepository) Create(ctx context.Context, planID string, d *Debt) (*Debt, error) {
	return m.createFunc(ctx, planID, d)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Debt, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) ListByPlanID(ctx context.Context, planID string) ([]*Debt, error) {
	return m.listByPlanIDFunc(ctx, planID)
}

func (m *mockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Debt, error) {
	return m.updateFunc(ctx, id, params)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockRepository) GetBySourceExpense(ctx context.Context, planID, expenseID, monthKey string, year int) (*Debt, error) {
	return m.getBySourceFunc(ctx, planID, expenseID, monthKey, year)
}

func (m *mockRepository) RecordPayment(ctx context.Context, params PaymentParams, update UpdateParams) (*Debt, *Payment, error) {
	return m.recordPaymentFunc(ctx, params, update)
}

func (m *mockRepository) ListPaymentsByDebtID(ctx context.Context, debtID string) ([]*Payment, error) {
	return m.listPaymentsByDebtFunc(ctx, debtID)
}

func (m *mockRepository) ListPaymentsByMonth(ctx context.Context, planID, month string) ([]*Payment, error) {
	return nil, nil
}

func TestServiceCreate(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(ctx context.Context, planID string, d *Debt) (*Debt, error) {
			d.ID = "debt-1"
			return d, nil
		},
	}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "plan-1", CreateParams{
		Name:           "Visa",
		Type:           TypeCreditCard,
		InitialBalance: 900,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.CurrentBalance != 900 {
		t.Errorf("expected current balance to start at initial balance, got %v", created.CurrentBalance)
	}

	if _, err := svc.Create(context.Background(), "plan-1", CreateParams{Name: "x", Type: "payday_loan"}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType for unknown type, got %v", err)
	}
}

func TestServiceGetOwned(t *testing.T) {
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Debt, error) {
			if id == "debt-1" {
				return &Debt{ID: "debt-1", PlanID: "plan-1"}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo)

	if _, err := svc.GetOwned(context.Background(), "debt-1", "plan-1"); err != nil {
		t.Errorf("GetOwned() error = %v", err)
	}
	if _, err := svc.GetOwned(context.Background(), "debt-1", "plan-2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign plan, got %v", err)
	}
	if _, err := svc.GetOwned(context.Background(), "missing", "plan-1"); !errors.Is(err, ErrDebtNotFound) {
		t.Errorf("expected ErrDebtNotFound, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id string) (*Debt, error) {
			if id == "linked" {
				return &Debt{ID: "linked", PlanID: "plan-1", SourceType: SourceTypeExpense, CurrentBalance: 50}, nil
			}
			return &Debt{ID: id, PlanID: "plan-1", CurrentBalance: 50}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "linked", "plan-1"); !errors.Is(err, ErrSourceLinked) {
		t.Errorf("expected ErrSourceLinked, got %v", err)
	}
	if deleted {
		t.Error("expected source-linked debt not to be deleted")
	}
	if err := svc.Delete(context.Background(), "manual", "plan-1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("expected manual debt to be deleted")
	}
}

func TestServiceApplyPayment(t *testing.T) {
	now := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	getDebt := func(ctx context.Context, id string) (*Debt, error) {
		return &Debt{ID: id, PlanID: "plan-1", InitialBalance: 600, CurrentBalance: 100, PaidAmount: 500}, nil
	}

	t.Run("payment and balance travel in one write", func(t *testing.T) {
		var recorded PaymentParams
		var applied UpdateParams
		repo := &mockRepository{
			getByIDFunc: getDebt,
			recordPaymentFunc: func(ctx context.Context, params PaymentParams, update UpdateParams) (*Debt, *Payment, error) {
				recorded = params
				applied = update
				return &Debt{ID: params.DebtID, PlanID: "plan-1", CurrentBalance: *update.CurrentBalance, Paid: *update.Paid},
					&Payment{ID: "pay-1", DebtID: params.DebtID, Amount: params.Amount, Month: params.Month}, nil
			},
		}
		svc := NewService(repo)

		updated, payment, err := svc.ApplyPayment(context.Background(), "debt-1", "plan-1", 150, now)
		if err != nil {
			t.Fatalf("ApplyPayment() error = %v", err)
		}
		if recorded.Month != "2026-02" {
			t.Errorf("expected payment bucketed under 2026-02, got %q", recorded.Month)
		}
		if payment.Amount != 150 {
			t.Errorf("expected payment amount 150, got %v", payment.Amount)
		}
		if *applied.CurrentBalance != 0 {
			t.Errorf("expected overpayment to clamp balance at zero, got %v", *applied.CurrentBalance)
		}
		if *applied.PaidAmount != 600 {
			t.Errorf("expected paid amount capped at initial balance, got %v", *applied.PaidAmount)
		}
		if !updated.Paid {
			t.Error("expected debt marked paid once balance reaches zero")
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := NewService(&mockRepository{getByIDFunc: getDebt})
		if _, _, err := svc.ApplyPayment(context.Background(), "debt-1", "plan-1", 0, now); !errors.Is(err, ErrInvalidPayment) {
			t.Errorf("expected ErrInvalidPayment for zero amount, got %v", err)
		}
	})

	t.Run("failed write leaves neither payment nor balance", func(t *testing.T) {
		calls := 0
		repo := &mockRepository{
			getByIDFunc: getDebt,
			recordPaymentFunc: func(ctx context.Context, params PaymentParams, update UpdateParams) (*Debt, *Payment, error) {
				calls++
				return nil, nil, errors.New("write: connection reset by peer")
			},
		}
		svc := NewService(repo)

		updated, payment, err := svc.ApplyPayment(context.Background(), "debt-1", "plan-1", 50, now)
		if err == nil {
			t.Fatal("expected error from failed write")
		}
		if updated != nil || payment != nil {
			t.Errorf("expected no debt or payment after failed write, got %v / %v", updated, payment)
		}
		if calls != 1 {
			t.Errorf("expected a single combined write, got %d calls", calls)
		}
	})
}

func TestServiceUpsertExpenseDebt(t *testing.T) {
	params := ExpenseDebtParams{
		PlanID:       "plan-1",
		ExpenseID:    "exp-1",
		ExpenseName:  "Electricity",
		CategoryID:   "cat-1",
		CategoryName: "Utilities",
		MonthKey:     "FEBRUARY",
		Year:         2026,
		Remaining:    80,
	}

	t.Run("exempt category never generates a debt", func(t *testing.T) {
		svc := NewService(&mockRepository{})
		exempt := params
		exempt.CategoryName = "Savings"
		if _, err := svc.UpsertExpenseDebt(context.Background(), exempt); !errors.Is(err, ErrExemptCategory) {
			t.Errorf("expected ErrExemptCategory, got %v", err)
		}
	})

	t.Run("creates a new debt with provenance", func(t *testing.T) {
		var created *Debt
		repo := &mockRepository{
			getBySourceFunc: func(ctx context.Context, planID, expenseID, monthKey string, year int) (*Debt, error) {
				return nil, nil
			},
			createFunc: func(ctx context.Context, planID string, d *Debt) (*Debt, error) {
				d.ID = "debt-1"
				created = d
				return d, nil
			},
		}
		svc := NewService(repo)

		if _, err := svc.UpsertExpenseDebt(context.Background(), params); err != nil {
			t.Fatalf("UpsertExpenseDebt() error = %v", err)
		}
		if created.SourceType != SourceTypeExpense || created.SourceExpenseID != "exp-1" || created.SourceMonthKey != "FEBRUARY" {
			t.Errorf("expected provenance fields set, got %+v", created)
		}
		if created.InitialBalance != 80 || created.CurrentBalance != 80 {
			t.Errorf("expected balances seeded from remainder, got %+v", created)
		}
	})

	t.Run("refreshes an existing debt instead of duplicating", func(t *testing.T) {
		var updated UpdateParams
		repo := &mockRepository{
			getBySourceFunc: func(ctx context.Context, planID, expenseID, monthKey string, year int) (*Debt, error) {
				return &Debt{ID: "debt-1", PlanID: planID, InitialBalance: 100, CurrentBalance: 100, SourceType: SourceTypeExpense}, nil
			},
			createFunc: func(ctx context.Context, planID string, d *Debt) (*Debt, error) {
				t.Fatal("expected no new debt to be created")
				return nil, nil
			},
			updateFunc: func(ctx context.Context, id string, p UpdateParams) (*Debt, error) {
				updated = p
				return &Debt{ID: id}, nil
			},
		}
		svc := NewService(repo)

		if _, err := svc.UpsertExpenseDebt(context.Background(), params); err != nil {
			t.Fatalf("UpsertExpenseDebt() error = %v", err)
		}
		if *updated.CurrentBalance != 80 {
			t.Errorf("expected balance refreshed to 80, got %v", *updated.CurrentBalance)
		}
		if *updated.PaidAmount != 20 {
			t.Errorf("expected paid amount derived from initial balance, got %v", *updated.PaidAmount)
		}
	})

	t.Run("zero remainder settles the existing debt", func(t *testing.T) {
		var updated UpdateParams
		repo := &mockRepository{
			getBySourceFunc: func(ctx context.Context, planID, expenseID, monthKey string, year int) (*Debt, error) {
				return &Debt{ID: "debt-1", PlanID: planID, InitialBalance: 100, CurrentBalance: 60, SourceType: SourceTypeExpense}, nil
			},
			updateFunc: func(ctx context.Context, id string, p UpdateParams) (*Debt, error) {
				updated = p
				return &Debt{ID: id, Paid: *p.Paid}, nil
			},
		}
		svc := NewService(repo)

		settledParams := params
		settledParams.Remaining = 0
		settled, err := svc.UpsertExpenseDebt(context.Background(), settledParams)
		if err != nil {
			t.Fatalf("UpsertExpenseDebt() error = %v", err)
		}
		if !settled.Paid {
			t.Error("expected existing debt settled")
		}
		if *updated.CurrentBalance != 0 {
			t.Errorf("expected balance zeroed, got %v", *updated.CurrentBalance)
		}
	})
}

func TestServiceSummarize(t *testing.T) {
	repo := &mockRepository{
		listByPlanIDFunc: func(ctx context.Context, planID string) ([]*Debt, error) {
			return []*Debt{
				{CurrentBalance: 1200, InstallmentMonths: iptr(6)},
				{CurrentBalance: 0, Paid: true, SourceType: SourceTypeExpense},
				{CurrentBalance: 300, Amount: 50, SourceType: SourceTypeExpense},
			}, nil
		},
	}
	svc := NewService(repo)

	summary, err := svc.Summarize(context.Background(), "plan-1")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.ActiveCount != 2 || summary.PaidCount != 1 {
		t.Errorf("expected 2 active / 1 paid, got %d/%d", summary.ActiveCount, summary.PaidCount)
	}
	if summary.TotalBalance != 1500 {
		t.Errorf("expected total balance 1500, got %v", summary.TotalBalance)
	}
	if summary.TotalMonthlyPayment != 250 {
		t.Errorf("expected total monthly payment 250, got %v", summary.TotalMonthlyPayment)
	}
	if summary.ExpenseDebtCount != 2 {
		t.Errorf("expected 2 expense debts, got %d", summary.ExpenseDebtCount)
	}
}
