package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kakebo/internal/domain/plan"
)

type PlanRepository struct {
	db *DB
}

func NewPlanRepository(db *DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, user_id, name, kind, pay_date, created_at, updated_at`

func (r *PlanRepository) Create(ctx context.Context, userID int64, params plan.CreateParams) (*plan.Plan, error) {
	query := `
		INSERT INTO plans (id, user_id, name, kind, pay_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + planColumns

	p, err := scanPlanRow(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Name, params.Kind, params.PayDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return p, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	p, err := scanPlanRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

func (r *PlanRepository) ListByUserID(ctx context.Context, userID int64) ([]*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	return scanPlans(rows)
}

func (r *PlanRepository) ListPersonal(ctx context.Context) ([]*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE kind = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, plan.KindPersonal)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal plans: %w", err)
	}
	defer rows.Close()

	return scanPlans(rows)
}

func (r *PlanRepository) Update(ctx context.Context, id string, params plan.UpdateParams) (*plan.Plan, error) {
	query := `
		UPDATE plans
		SET name = COALESCE($1, name),
		    pay_date = COALESCE($2, pay_date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING ` + planColumns

	p, err := scanPlanRow(r.db.QueryRowContext(ctx, query, params.Name, params.PayDate, id))
	if err == sql.ErrNoRows {
		return nil, plan.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return p, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plans WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return plan.ErrPlanNotFound
	}

	return nil
}

func scanPlanRow(row rowScanner) (*plan.Plan, error) {
	var p plan.Plan
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Kind, &p.PayDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlans(rows *sql.Rows) ([]*plan.Plan, error) {
	var plans []*plan.Plan
	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Kind, &p.PayDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}

	return plans, nil
}
