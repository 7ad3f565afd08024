package plan

import "context"

// Repository defines the interface for budget plan data access
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Plan, error)
	ListPersonal(ctx context.Context) ([]*Plan, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Plan, error)
	Delete(ctx context.Context, id string) error
}
