package plan

import (
	"errors"
	"time"
)

// Plan kinds. Only personal plans convert overdue expenses into debts;
// holiday plans track spend without debt carryover.
const (
	KindPersonal = "personal"
	KindHoliday  = "holiday"
)

var validKinds = map[string]struct{}{
	KindPersonal: {},
	KindHoliday:  {},
}

// DefaultPayDate is the fallback due day-of-month when a plan never set one.
const DefaultPayDate = 27

// Domain errors
var (
	ErrPlanNotFound = errors.New("budget plan not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidKind  = errors.New("invalid plan kind")
)

// Plan represents a budget plan: one user's (or household's) collection of
// income, expenses, debts and goals, scoped by month and year.
type Plan struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	PayDate   int       `json:"payDate"` // day-of-month income arrives, 1-31
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new plan
type CreateParams struct {
	Name    string
	Kind    string
	PayDate int
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("plan name is required")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	if p.PayDate < 1 || p.PayDate > 31 {
		return errors.New("pay date must be between 1 and 31")
	}
	return nil
}

// UpdateParams contains parameters for updating a plan
type UpdateParams struct {
	Name    *string
	PayDate *int
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("plan name cannot be empty")
	}
	if p.PayDate != nil && (*p.PayDate < 1 || *p.PayDate > 31) {
		return errors.New("pay date must be between 1 and 31")
	}
	return nil
}

// IsValidKind checks if the provided plan kind is valid
func IsValidKind(k string) bool {
	_, ok := validKinds[k]
	return ok
}
