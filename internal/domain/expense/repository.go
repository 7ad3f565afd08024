package expense

import "context"

// Repository defines the interface for expense data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	Create(ctx context.Context, planID string, params CreateParams) (*Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	ListByPlanID(ctx context.Context, planID string) ([]*Expense, error)
	ListByPlanMonth(ctx context.Context, planID string, month, year int) ([]*Expense, error)
	ListUnpaidByPlanID(ctx context.Context, planID string) ([]*Expense, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Expense, error)
	Delete(ctx context.Context, id string) error
}
