package debt

import "context"

// Repository defines the interface for debt data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	Create(ctx context.Context, planID string, d *Debt) (*Debt, error)
	GetByID(ctx context.Context, id string) (*Debt, error)
	ListByPlanID(ctx context.Context, planID string) ([]*Debt, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Debt, error)
	Delete(ctx context.Context, id string) error

	// GetBySourceExpense finds the debt generated from a specific expense
	// in a specific budgeting month, or nil when none exists.
	GetBySourceExpense(ctx context.Context, planID, expenseID, monthKey string, year int) (*Debt, error)

	// RecordPayment inserts a payment row and applies the matching
	// balance update in a single transaction, so the payment history
	// and the balance can never disagree.
	RecordPayment(ctx context.Context, params PaymentParams, update UpdateParams) (*Debt, *Payment, error)
	ListPaymentsByDebtID(ctx context.Context, debtID string) ([]*Payment, error)
	ListPaymentsByMonth(ctx context.Context, planID, month string) ([]*Payment, error)
}
