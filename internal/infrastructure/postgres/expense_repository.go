package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kakebo/internal/domain/expense"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, plan_id, category_id, name, amount, paid, paid_amount, is_allocation, due_date, month, year, created_at, updated_at`

func (r *ExpenseRepository) Create(ctx context.Context, planID string, params expense.CreateParams) (*expense.Expense, error) {
	query := `
		INSERT INTO expenses (id, plan_id, category_id, name, amount, is_allocation, due_date, month, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + expenseColumns

	e, err := scanExpenseRow(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), planID, params.CategoryID, params.Name,
		params.Amount, params.IsAllocation, params.DueDate, params.Month, params.Year,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpenseRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) ListByPlanID(ctx context.Context, planID string) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE plan_id = $1
		ORDER BY year DESC, month DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) ListByPlanMonth(ctx context.Context, planID string, month, year int) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE plan_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by month: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) ListUnpaidByPlanID(ctx context.Context, planID string) ([]*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE plan_id = $1 AND paid = FALSE
		ORDER BY year ASC, month ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, params expense.UpdateParams) (*expense.Expense, error) {
	query := `
		UPDATE expenses
		SET category_id = COALESCE($1, category_id),
		    name = COALESCE($2, name),
		    amount = COALESCE($3, amount),
		    paid = COALESCE($4, paid),
		    paid_amount = COALESCE($5, paid_amount),
		    due_date = COALESCE($6, due_date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + expenseColumns

	e, err := scanExpenseRow(r.db.QueryRowContext(
		ctx, query,
		params.CategoryID, params.Name, params.Amount, params.Paid,
		params.PaidAmount, params.DueDate, id,
	))
	if err == sql.ErrNoRows {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM expenses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func scanExpenseRow(row rowScanner) (*expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID, &e.PlanID, &e.CategoryID, &e.Name, &e.Amount, &e.Paid, &e.PaidAmount,
		&e.IsAllocation, &e.DueDate, &e.Month, &e.Year, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanExpenses(rows *sql.Rows) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	for rows.Next() {
		var e expense.Expense
		err := rows.Scan(
			&e.ID, &e.PlanID, &e.CategoryID, &e.Name, &e.Amount, &e.Paid, &e.PaidAmount,
			&e.IsAllocation, &e.DueDate, &e.Month, &e.Year, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}
