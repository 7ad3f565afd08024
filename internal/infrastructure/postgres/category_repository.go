package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kakebo/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, plan_id, name, icon, color, featured, created_at, updated_at`

func (r *CategoryRepository) Create(ctx context.Context, planID string, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, plan_id, name, icon, color, featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns

	c, err := scanCategoryRow(r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), planID, params.Name, params.Icon, params.Color, params.Featured,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategoryRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) ListByPlanID(ctx context.Context, planID string) ([]*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE plan_id = $1
		ORDER BY featured DESC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.PlanID, &c.Name, &c.Icon, &c.Color, &c.Featured, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    icon = COALESCE($2, icon),
		    color = COALESCE($3, color),
		    featured = COALESCE($4, featured),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING ` + categoryColumns

	c, err := scanCategoryRow(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Icon, params.Color, params.Featured, id,
	))
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// EnsureSeeds inserts missing default categories for a plan and patches
// empty icon/color on existing ones. Matching is by name, so a renamed
// default is treated as a user category and left alone.
func (r *CategoryRepository) EnsureSeeds(ctx context.Context, planID string, seeds []category.Seed) error {
	query := `
		INSERT INTO categories (id, plan_id, name, icon, color, featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plan_id, name) DO UPDATE SET
		    icon = CASE WHEN categories.icon = '' THEN EXCLUDED.icon ELSE categories.icon END,
		    color = CASE WHEN categories.color = '' THEN EXCLUDED.color ELSE categories.color END
	`

	for _, seed := range seeds {
		_, err := r.db.ExecContext(ctx, query,
			uuid.New().String(), planID, seed.Name, seed.Icon, seed.Color, seed.Featured,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", seed.Name, err)
		}
	}
	return nil
}

func scanCategoryRow(row rowScanner) (*category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.PlanID, &c.Name, &c.Icon, &c.Color, &c.Featured, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
