package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kakebo/internal/domain/income"
)

type IncomeRepository struct {
	db *DB
}

func NewIncomeRepository(db *DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

const incomeColumns = `id, plan_id, name, amount, month, year, recurring, created_at, updated_at`

func (r *IncomeRepository) Create(ctx context.Context, planID string, params income.CreateParams) (*income.Income, error) {
	query := `
		INSERT INTO incomes (id, plan_id, name, amount, month, year, recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + incomeColumns

	in, err := scanIncomeRow(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), planID, params.Name, params.Amount, params.Month, params.Year, params.Recurring,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return in, nil
}

func (r *IncomeRepository) GetByID(ctx context.Context, id string) (*income.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = $1`

	in, err := scanIncomeRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return in, nil
}

func (r *IncomeRepository) ListByPlanID(ctx context.Context, planID string) ([]*income.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE plan_id = $1
		ORDER BY year DESC, month DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows)
}

func (r *IncomeRepository) ListByPlanMonth(ctx context.Context, planID string, month, year int) ([]*income.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE plan_id = $1 AND ((month = $2 AND year = $3) OR recurring = TRUE)
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes by month: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows)
}

func (r *IncomeRepository) Update(ctx context.Context, id string, params income.UpdateParams) (*income.Income, error) {
	query := `
		UPDATE incomes
		SET name = COALESCE($1, name),
		    amount = COALESCE($2, amount),
		    recurring = COALESCE($3, recurring),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + incomeColumns

	in, err := scanIncomeRow(r.db.QueryRowContext(ctx, query, params.Name, params.Amount, params.Recurring, id))
	if err == sql.ErrNoRows {
		return nil, income.ErrIncomeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return in, nil
}

func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM incomes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return income.ErrIncomeNotFound
	}

	return nil
}

func scanIncomeRow(row rowScanner) (*income.Income, error) {
	var in income.Income
	err := row.Scan(&in.ID, &in.PlanID, &in.Name, &in.Amount, &in.Month, &in.Year, &in.Recurring, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func scanIncomes(rows *sql.Rows) ([]*income.Income, error) {
	var incomes []*income.Income
	for rows.Next() {
		var in income.Income
		err := rows.Scan(&in.ID, &in.PlanID, &in.Name, &in.Amount, &in.Month, &in.Year, &in.Recurring, &in.CreatedAt, &in.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, &in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomes: %w", err)
	}

	return incomes, nil
}
