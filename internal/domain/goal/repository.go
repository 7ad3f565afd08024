package goal

import "context"

// Repository defines the interface for goal data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	Create(ctx context.Context, planID string, params CreateParams) (*Goal, error)
	GetByID(ctx context.Context, id string) (*Goal, error)
	ListByPlanID(ctx context.Context, planID string) ([]*Goal, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Goal, error)
	Delete(ctx context.Context, id string) error
}
