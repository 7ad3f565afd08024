package category

import (
	"context"
	"fmt"
)

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureDefaults makes sure a plan carries the default category set.
// Safe to call on every plan load: only missing defaults are inserted.
// planKind selects the extra personal-only defaults.
func (s *Service) EnsureDefaults(ctx context.Context, planID, planKind string) error {
	seeds := DefaultSeeds
	if planKind == "personal" {
		seeds = append(append([]Seed{}, DefaultSeeds...), PersonalOnlySeeds...)
	}

	if err := s.repo.EnsureSeeds(ctx, planID, seeds); err != nil {
		return fmt.Errorf("failed to ensure default categories for plan %s: %w", planID, err)
	}
	return nil
}

// GetOwned fetches a category and verifies it belongs to the given plan.
func (s *Service) GetOwned(ctx context.Context, id, planID string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	if c.PlanID != planID {
		return nil, ErrForbidden
	}
	return c, nil
}
