package goal

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidContribution = errors.New("contribution amount must be positive")
)

// Goal represents a savings target within a plan.
type Goal struct {
	ID           string    `json:"id"`
	PlanID       string    `json:"planId"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"targetAmount"`
	SavedAmount  float64   `json:"savedAmount"`
	TargetDate   string    `json:"targetDate,omitempty"` // ISO date, empty when open-ended
	Achieved     bool      `json:"achieved"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Progress reports saving progress as a 0-100 percentage.
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.SavedAmount / g.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// ApplyContribution returns the update that adds amount to the goal's
// savings, marking the goal achieved once the target is met.
func (g *Goal) ApplyContribution(amount float64) (UpdateParams, error) {
	if amount <= 0 {
		return UpdateParams{}, ErrInvalidContribution
	}
	saved := g.SavedAmount + amount
	achieved := saved >= g.TargetAmount
	return UpdateParams{SavedAmount: &saved, Achieved: &achieved}, nil
}

// CreateParams contains parameters for creating a new goal
type CreateParams struct {
	Name         string
	TargetAmount float64
	TargetDate   string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("goal name is required")
	}
	if p.TargetAmount <= 0 {
		return errors.New("target amount must be positive")
	}
	return nil
}

// UpdateParams contains parameters for updating a goal
type UpdateParams struct {
	Name         *string
	TargetAmount *float64
	SavedAmount  *float64
	TargetDate   *string
	Achieved     *bool
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("goal name cannot be empty")
	}
	if p.TargetAmount != nil && *p.TargetAmount <= 0 {
		return errors.New("target amount must be positive")
	}
	if p.SavedAmount != nil && *p.SavedAmount < 0 {
		return errors.New("saved amount cannot be negative")
	}
	return nil
}
