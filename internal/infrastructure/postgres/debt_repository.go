package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kakebo/internal/domain/debt"
)

type DebtRepository struct {
	db *DB
}

func NewDebtRepository(db *DB) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, plan_id, name, type, initial_balance, current_balance,
	       monthly_minimum, installment_months, interest_rate, amount, credit_limit,
	       paid, paid_amount, due_date,
	       source_type, source_expense_id, source_month_key, source_year,
	       source_category_id, source_category_name, source_expense_name,
	       created_at, updated_at`

func (r *DebtRepository) Create(ctx context.Context, planID string, d *debt.Debt) (*debt.Debt, error) {
	query := `
		INSERT INTO debts (id, plan_id, name, type, initial_balance, current_balance,
		                   monthly_minimum, installment_months, interest_rate, amount, credit_limit,
		                   due_date, source_type, source_expense_id, source_month_key, source_year,
		                   source_category_id, source_category_name, source_expense_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + debtColumns

	row := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), planID, d.Name, d.Type, d.InitialBalance, d.CurrentBalance,
		d.MonthlyMinimum, d.InstallmentMonths, d.InterestRate, d.Amount, d.CreditLimit,
		d.DueDate, d.SourceType, d.SourceExpenseID, d.SourceMonthKey, d.SourceYear,
		d.SourceCategoryID, d.SourceCategoryName, d.SourceExpenseName,
	)

	created, err := scanDebtRow(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return created, nil
}

func (r *DebtRepository) GetByID(ctx context.Context, id string) (*debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`

	d, err := scanDebtRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return d, nil
}

func (r *DebtRepository) ListByPlanID(ctx context.Context, planID string) ([]*debt.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE plan_id = $1
		ORDER BY paid ASC, current_balance DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	return scanDebts(rows)
}

func (r *DebtRepository) GetBySourceExpense(ctx context.Context, planID, expenseID, monthKey string, year int) (*debt.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE plan_id = $1 AND source_expense_id = $2 AND source_month_key = $3 AND source_year = $4
	`

	d, err := scanDebtRow(r.db.QueryRowContext(ctx, query, planID, expenseID, monthKey, year))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt by source expense: %w", err)
	}
	return d, nil
}

const updateDebtQuery = `
	UPDATE debts
	SET name = COALESCE($1, name),
	    initial_balance = COALESCE($2, initial_balance),
	    current_balance = COALESCE($3, current_balance),
	    monthly_minimum = COALESCE($4, monthly_minimum),
	    installment_months = COALESCE($5, installment_months),
	    interest_rate = COALESCE($6, interest_rate),
	    amount = COALESCE($7, amount),
	    credit_limit = COALESCE($8, credit_limit),
	    paid = COALESCE($9, paid),
	    paid_amount = COALESCE($10, paid_amount),
	    due_date = COALESCE($11, due_date),
	    updated_at = CURRENT_TIMESTAMP
	WHERE id = $12
	RETURNING ` + debtColumns

func (r *DebtRepository) Update(ctx context.Context, id string, params debt.UpdateParams) (*debt.Debt, error) {
	d, err := scanDebtRow(r.db.QueryRowContext(
		ctx, updateDebtQuery,
		params.Name, params.InitialBalance, params.CurrentBalance, params.MonthlyMinimum,
		params.InstallmentMonths, params.InterestRate, params.Amount, params.CreditLimit,
		params.Paid, params.PaidAmount, params.DueDate, id,
	))

	if err == sql.ErrNoRows {
		return nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return d, nil
}

func (r *DebtRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM debts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return debt.ErrDebtNotFound
	}

	return nil
}

// RecordPayment inserts the payment row and applies the balance update
// inside one transaction. A failure on either side rolls both back, so
// the payment history never records money the balance does not reflect.
func (r *DebtRepository) RecordPayment(ctx context.Context, params debt.PaymentParams, update debt.UpdateParams) (*debt.Debt, *debt.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin payment transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO debt_payments (id, debt_id, amount, month)
		VALUES ($1, $2, $3, $4)
		RETURNING id, debt_id, amount, date, month
	`

	var p debt.Payment
	err = tx.QueryRowContext(ctx, query, uuid.New().String(), params.DebtID, params.Amount, params.Month).Scan(
		&p.ID, &p.DebtID, &p.Amount, &p.Date, &p.Month,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add debt payment: %w", err)
	}

	d, err := scanDebtRow(tx.QueryRowContext(
		ctx, updateDebtQuery,
		update.Name, update.InitialBalance, update.CurrentBalance, update.MonthlyMinimum,
		update.InstallmentMonths, update.InterestRate, update.Amount, update.CreditLimit,
		update.Paid, update.PaidAmount, update.DueDate, params.DebtID,
	))
	if err == sql.ErrNoRows {
		return nil, nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update debt balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit debt payment: %w", err)
	}
	return d, &p, nil
}

func (r *DebtRepository) ListPaymentsByDebtID(ctx context.Context, debtID string) ([]*debt.Payment, error) {
	query := `
		SELECT id, debt_id, amount, date, month
		FROM debt_payments
		WHERE debt_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func (r *DebtRepository) ListPaymentsByMonth(ctx context.Context, planID, month string) ([]*debt.Payment, error) {
	query := `
		SELECT p.id, p.debt_id, p.amount, p.date, p.month
		FROM debt_payments p
		JOIN debts d ON p.debt_id = d.id
		WHERE d.plan_id = $1 AND p.month = $2
		ORDER BY p.date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt payments by month: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// rowScanner covers both *sql.Row and the traced row wrapper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebtRow(row rowScanner) (*debt.Debt, error) {
	var d debt.Debt
	var monthlyMinimum, interestRate, creditLimit sql.NullFloat64
	var installmentMonths sql.NullInt64

	err := row.Scan(
		&d.ID, &d.PlanID, &d.Name, &d.Type, &d.InitialBalance, &d.CurrentBalance,
		&monthlyMinimum, &installmentMonths, &interestRate, &d.Amount, &creditLimit,
		&d.Paid, &d.PaidAmount, &d.DueDate,
		&d.SourceType, &d.SourceExpenseID, &d.SourceMonthKey, &d.SourceYear,
		&d.SourceCategoryID, &d.SourceCategoryName, &d.SourceExpenseName,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyNullableDebtFields(&d, monthlyMinimum, installmentMonths, interestRate, creditLimit)
	return &d, nil
}

func scanDebts(rows *sql.Rows) ([]*debt.Debt, error) {
	var debts []*debt.Debt
	for rows.Next() {
		var d debt.Debt
		var monthlyMinimum, interestRate, creditLimit sql.NullFloat64
		var installmentMonths sql.NullInt64

		err := rows.Scan(
			&d.ID, &d.PlanID, &d.Name, &d.Type, &d.InitialBalance, &d.CurrentBalance,
			&monthlyMinimum, &installmentMonths, &interestRate, &d.Amount, &creditLimit,
			&d.Paid, &d.PaidAmount, &d.DueDate,
			&d.SourceType, &d.SourceExpenseID, &d.SourceMonthKey, &d.SourceYear,
			&d.SourceCategoryID, &d.SourceCategoryName, &d.SourceExpenseName,
			&d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}

		applyNullableDebtFields(&d, monthlyMinimum, installmentMonths, interestRate, creditLimit)
		debts = append(debts, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}

	return debts, nil
}

func applyNullableDebtFields(d *debt.Debt, monthlyMinimum sql.NullFloat64, installmentMonths sql.NullInt64,
	interestRate, creditLimit sql.NullFloat64) {
	if monthlyMinimum.Valid {
		d.MonthlyMinimum = &monthlyMinimum.Float64
	}
	if installmentMonths.Valid {
		months := int(installmentMonths.Int64)
		d.InstallmentMonths = &months
	}
	if interestRate.Valid {
		d.InterestRate = &interestRate.Float64
	}
	if creditLimit.Valid {
		d.CreditLimit = &creditLimit.Float64
	}
}

func scanPayments(rows *sql.Rows) ([]*debt.Payment, error) {
	var payments []*debt.Payment
	for rows.Next() {
		var p debt.Payment
		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.Date, &p.Month); err != nil {
			return nil, fmt.Errorf("failed to scan debt payment: %w", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt payments: %w", err)
	}

	return payments, nil
}
