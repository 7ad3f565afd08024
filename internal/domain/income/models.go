package income

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrIncomeNotFound = errors.New("income not found")
	ErrForbidden      = errors.New("access forbidden")
)

// Income represents one source of money arriving in a budgeting month.
type Income struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Month     int       `json:"month"` // 1-12
	Year      int       `json:"year"`
	Recurring bool      `json:"recurring"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new income
type CreateParams struct {
	Name      string
	Amount    float64
	Month     int
	Year      int
	Recurring bool
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("income name is required")
	}
	if p.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if p.Month < 1 || p.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	return nil
}

// UpdateParams contains parameters for updating an income
type UpdateParams struct {
	Name      *string
	Amount    *float64
	Recurring *bool
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("income name cannot be empty")
	}
	if p.Amount != nil && *p.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}

// MonthlyTotal sums income for display and threshold checks.
func MonthlyTotal(incomes []*Income) float64 {
	var total float64
	for _, in := range incomes {
		total += in.Amount
	}
	return total
}
