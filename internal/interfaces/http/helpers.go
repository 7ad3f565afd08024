package http

import (
	"net/http"

	"kakebo/internal/domain/plan"
	"kakebo/internal/shared/middleware"
)

// requireUserID extracts the authenticated user ID injected by the auth
// middleware, writing a 401 when absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// requireOwnedPlan resolves a plan and verifies it belongs to the user,
// writing the appropriate error response on failure.
func requireOwnedPlan(w http.ResponseWriter, r *http.Request, planRepo plan.Repository, planID string, userID int64) (*plan.Plan, bool) {
	if planID == "" {
		http.Error(w, "Plan ID is required", http.StatusBadRequest)
		return nil, false
	}

	pl, err := planRepo.GetByID(r.Context(), planID)
	if err != nil {
		http.Error(w, "Failed to get plan", http.StatusInternalServerError)
		return nil, false
	}
	if pl == nil {
		http.Error(w, "Plan not found", http.StatusNotFound)
		return nil, false
	}
	if pl.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}
	return pl, true
}
