package category

import "context"

// Repository defines the interface for category data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	Create(ctx context.Context, planID string, params CreateParams) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	ListByPlanID(ctx context.Context, planID string) ([]*Category, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id string) error

	// EnsureSeeds inserts any of the given seeds missing from the plan and
	// patches missing icon/color on existing defaults without clobbering
	// user customizations.
	EnsureSeeds(ctx context.Context, planID string, seeds []Seed) error
}
