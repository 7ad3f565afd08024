package income

import "context"

// Repository defines the interface for income data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	Create(ctx context.Context, planID string, params CreateParams) (*Income, error)
	GetByID(ctx context.Context, id string) (*Income, error)
	ListByPlanID(ctx context.Context, planID string) ([]*Income, error)
	ListByPlanMonth(ctx context.Context, planID string, month, year int) ([]*Income, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Income, error)
	Delete(ctx context.Context, id string) error
}
