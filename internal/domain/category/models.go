package category

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("access forbidden")
)

// Category represents a spending category scoped to one budget plan.
type Category struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new category
type CreateParams struct {
	Name     string
	Icon     string
	Color    string
	Featured bool
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("category name is required")
	}
	if len(p.Name) > 100 {
		return errors.New("category name must be 100 characters or fewer")
	}
	return nil
}

// UpdateParams contains parameters for updating a category
type UpdateParams struct {
	Name     *string
	Icon     *string
	Color    *string
	Featured *bool
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("category name cannot be empty")
	}
	return nil
}

// Seed describes a default category created for every new budget plan.
type Seed struct {
	Name     string
	Icon     string
	Color    string
	Featured bool
}

// DefaultSeeds are created for every plan. PersonalOnlySeeds are added on
// top for plans of kind "personal".
var DefaultSeeds = []Seed{
	{Name: "Housing", Icon: "Home", Color: "blue", Featured: true},
	{Name: "Utilities", Icon: "Zap", Color: "amber", Featured: true},
	{Name: "Food & Dining", Icon: "UtensilsCrossed", Color: "orange", Featured: true},
	{Name: "Transport / Travel", Icon: "Car", Color: "cyan", Featured: true},
	{Name: "Health", Icon: "HeartPulse", Color: "rose", Featured: false},
	{Name: "Insurance", Icon: "Shield", Color: "indigo", Featured: false},
	{Name: "Entertainment", Icon: "Clapperboard", Color: "purple", Featured: false},
	{Name: "Subscriptions", Icon: "Repeat", Color: "teal", Featured: false},
	{Name: "Education", Icon: "GraduationCap", Color: "emerald", Featured: false},
	{Name: "Savings", Icon: "PiggyBank", Color: "green", Featured: false},
}

var PersonalOnlySeeds = []Seed{
	{Name: "Fees & Charges", Icon: "Receipt", Color: "slate", Featured: false},
}
