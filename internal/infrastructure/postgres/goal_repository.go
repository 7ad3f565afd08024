package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kakebo/internal/domain/goal"
)

type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, plan_id, name, target_amount, saved_amount, target_date, achieved, created_at, updated_at`

func (r *GoalRepository) Create(ctx context.Context, planID string, params goal.CreateParams) (*goal.Goal, error) {
	query := `
		INSERT INTO goals (id, plan_id, name, target_amount, target_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + goalColumns

	g, err := scanGoalRow(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), planID, params.Name, params.TargetAmount, params.TargetDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id string) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	g, err := scanGoalRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepository) ListByPlanID(ctx context.Context, planID string) ([]*goal.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE plan_id = $1
		ORDER BY achieved ASC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		var g goal.Goal
		err := rows.Scan(&g.ID, &g.PlanID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.TargetDate, &g.Achieved, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, id string, params goal.UpdateParams) (*goal.Goal, error) {
	query := `
		UPDATE goals
		SET name = COALESCE($1, name),
		    target_amount = COALESCE($2, target_amount),
		    saved_amount = COALESCE($3, saved_amount),
		    target_date = COALESCE($4, target_date),
		    achieved = COALESCE($5, achieved),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING ` + goalColumns

	g, err := scanGoalRow(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.TargetAmount, params.SavedAmount, params.TargetDate, params.Achieved, id,
	))
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return goal.ErrGoalNotFound
	}

	return nil
}

func scanGoalRow(row rowScanner) (*goal.Goal, error) {
	var g goal.Goal
	err := row.Scan(&g.ID, &g.PlanID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.TargetDate, &g.Achieved, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
