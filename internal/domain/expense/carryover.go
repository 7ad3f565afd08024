package expense

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"kakebo/internal/domain/category"
	"kakebo/internal/domain/debt"
	"kakebo/internal/domain/plan"
)

// OverdueGraceDays is how long past its due date an untouched expense
// may sit before its remainder converts into a debt. Expenses with a
// partial allocation get no grace: the user has started paying, so the
// remainder is tracked immediately once due.
const OverdueGraceDays = 5

// maxConcurrentPlans bounds the carryover fan-out across plans.
const maxConcurrentPlans = 4

// DebtUpserter converts an expense remainder into a source-linked debt
// or settles one that already exists.
type DebtUpserter interface {
	UpsertExpenseDebt(ctx context.Context, params debt.ExpenseDebtParams) (*debt.Debt, error)
}

// CarryoverProcessor sweeps personal plans for overdue unpaid expenses
// and converts their remainders into debts. Holiday plans track spend
// without carryover and are never visited.
type CarryoverProcessor struct {
	plans      plan.Repository
	expenses   Repository
	categories category.Repository
	debts      DebtUpserter
}

// NewCarryoverProcessor creates a new carryover processor
func NewCarryoverProcessor(plans plan.Repository, expenses Repository, categories category.Repository, debts DebtUpserter) *CarryoverProcessor {
	return &CarryoverProcessor{
		plans:      plans,
		expenses:   expenses,
		categories: categories,
		debts:      debts,
	}
}

// CarryoverResult reports what one carryover run did.
type CarryoverResult struct {
	PlansProcessed int
	Converted      int
	Skipped        int
	Failed         int
}

func (r *CarryoverResult) add(other *CarryoverResult) {
	r.Converted += other.Converted
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// ProcessAll runs carryover for every personal plan, fanning out across
// plans with bounded concurrency. A failing plan is logged and skipped
// rather than aborting the run.
func (p *CarryoverProcessor) ProcessAll(ctx context.Context, now time.Time) (*CarryoverResult, error) {
	plans, err := p.plans.ListPersonal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal plans: %w", err)
	}

	var mu sync.Mutex
	total := &CarryoverResult{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPlans)
	for _, pl := range plans {
		pl := pl
		g.Go(func() error {
			res, err := p.ProcessPlan(ctx, pl, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("Carryover failed for plan %s: %v", pl.ID, err)
				total.Failed++
				return nil
			}
			total.add(res)
			total.PlansProcessed++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return total, err
	}

	log.Printf("Carryover run complete: %d plans, %d converted, %d skipped, %d failed",
		total.PlansProcessed, total.Converted, total.Skipped, total.Failed)
	return total, nil
}

// ProcessPlan runs carryover for a single plan.
func (p *CarryoverProcessor) ProcessPlan(ctx context.Context, pl *plan.Plan, now time.Time) (*CarryoverResult, error) {
	if pl.Kind != plan.KindPersonal {
		return &CarryoverResult{}, nil
	}

	unpaid, err := p.expenses.ListUnpaidByPlanID(ctx, pl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid expenses: %w", err)
	}

	cats, err := p.categories.ListByPlanID(ctx, pl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	res := &CarryoverResult{}
	for _, e := range unpaid {
		if e.IsAllocation || !IsOverdue(e, pl.PayDate, now) {
			res.Skipped++
			continue
		}

		_, err := p.debts.UpsertExpenseDebt(ctx, debt.ExpenseDebtParams{
			PlanID:       pl.ID,
			ExpenseID:    e.ID,
			ExpenseName:  e.Name,
			CategoryID:   e.CategoryID,
			CategoryName: names[e.CategoryID],
			MonthKey:     debt.MonthKey(e.Month),
			Year:         e.Year,
			Remaining:    e.Remaining(),
		})
		if err != nil {
			if errors.Is(err, debt.ErrExemptCategory) {
				res.Skipped++
				continue
			}
			log.Printf("Failed to carry over expense %s: %v", e.ID, err)
			res.Failed++
			continue
		}
		res.Converted++
	}
	return res, nil
}

// IsOverdue decides whether an expense's remainder is ready to convert.
// Expenses from past months are always overdue. Within the current
// month the explicit due date wins, falling back to the plan's pay date
// clamped to the month; untouched expenses then get the grace window,
// partially paid ones convert the day after the due date.
func IsOverdue(e *Expense, payDate int, now time.Time) bool {
	now = now.UTC()
	year, month := now.Year(), int(now.Month())

	if e.Year != year || e.Month != month {
		return e.Year < year || (e.Year == year && e.Month < month)
	}

	due := dueDateIn(e, payDate)
	grace := OverdueGraceDays
	if e.PaidAmount > 0 {
		grace = 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.After(due.AddDate(0, 0, grace))
}

// dueDateIn resolves an expense's due date within its own budgeting
// month, clamping the plan pay date to the month's length.
func dueDateIn(e *Expense, payDate int) time.Time {
	if e.DueDate != "" {
		if d, err := time.ParseInLocation("2006-01-02", e.DueDate, time.UTC); err == nil {
			return d
		}
	}
	month := time.Month(e.Month)
	day := payDate
	if max := time.Date(e.Year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return time.Date(e.Year, month, day, 0, 0, 0, 0, time.UTC)
}
