package expense

import (
	"errors"
	"time"

	"kakebo/internal/domain/money"
)

// Domain errors
var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidAmount     = errors.New("amount cannot be negative")
	ErrInvalidAllocation = errors.New("allocation amount must be positive")
	ErrExpenseUnpaid     = errors.New("expense must be marked paid before deletion")
)

// Expense represents one budgeted outgoing in a specific month.
// PaidAmount accumulates partial allocations; the expense counts as
// paid once allocations cover the full amount.
//
// IsAllocation marks a planned spending envelope rather than a bill.
// Envelopes never convert into debts, no matter how overdue.
type Expense struct {
	ID           string    `json:"id"`
	PlanID       string    `json:"planId"`
	CategoryID   string    `json:"categoryId"`
	Name         string    `json:"name"`
	Amount       float64   `json:"amount"`
	Paid         bool      `json:"paid"`
	PaidAmount   float64   `json:"paidAmount"`
	IsAllocation bool      `json:"isAllocation"`
	DueDate      string    `json:"dueDate,omitempty"` // ISO date, empty when unset
	Month        int       `json:"month"`             // 1-12
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Remaining is the unpaid portion of the expense, never negative.
func (e *Expense) Remaining() float64 {
	return money.Sanitize(e.Amount - e.PaidAmount)
}

// CreateParams contains parameters for creating a new expense
type CreateParams struct {
	CategoryID   string
	Name         string
	Amount       float64
	IsAllocation bool
	DueDate      string
	Month        int
	Year         int
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("expense name is required")
	}
	if p.CategoryID == "" {
		return errors.New("category is required")
	}
	if p.Amount < 0 {
		return ErrInvalidAmount
	}
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Year < 2000 || p.Year > 2200 {
		return errors.New("year out of range")
	}
	return nil
}

// UpdateParams contains parameters for updating an expense
type UpdateParams struct {
	CategoryID *string
	Name       *string
	Amount     *float64
	Paid       *bool
	PaidAmount *float64
	DueDate    *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("expense name cannot be empty")
	}
	if p.Amount != nil && *p.Amount < 0 {
		return ErrInvalidAmount
	}
	if p.PaidAmount != nil && *p.PaidAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
