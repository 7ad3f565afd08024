package main

import (
	"log"
	"net/http"

	httphandlers "kakebo/internal/interfaces/http"
	"kakebo/internal/shared/config"
	"kakebo/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Static pages (dev only)
	mux.HandleFunc("/", httphandlers.HandleLoginPage)
	mux.HandleFunc("/login", httphandlers.HandleLoginPage)
	mux.HandleFunc("/dashboard", httphandlers.HandleDashboard)

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleMe)))

	mux.Handle("/api/plans", authMiddleware(http.HandlerFunc(deps.PlanHandler.HandlePlans)))
	mux.Handle("/api/plans/{id}", authMiddleware(http.HandlerFunc(deps.PlanHandler.HandlePlanByID)))

	mux.Handle("/api/categories", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategories)))
	mux.Handle("/api/categories/{id}", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategoryByID)))

	mux.Handle("/api/expenses", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenses)))
	mux.Handle("/api/expenses/{id}", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenseByID)))
	mux.Handle("/api/expenses/{id}/allocations", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenseAllocate)))

	mux.Handle("/api/incomes", authMiddleware(http.HandlerFunc(deps.IncomeHandler.HandleIncomes)))
	mux.Handle("/api/incomes/{id}", authMiddleware(http.HandlerFunc(deps.IncomeHandler.HandleIncomeByID)))

	mux.Handle("/api/goals", authMiddleware(http.HandlerFunc(deps.GoalHandler.HandleGoals)))
	mux.Handle("/api/goals/{id}", authMiddleware(http.HandlerFunc(deps.GoalHandler.HandleGoalByID)))
	mux.Handle("/api/goals/{id}/contributions", authMiddleware(http.HandlerFunc(deps.GoalHandler.HandleGoalContribute)))

	mux.Handle("/api/debts", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleDebts)))
	mux.Handle("/api/debts/summary", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleDebtSummary)))
	mux.Handle("/api/debts/{id}", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleDebtByID)))
	mux.Handle("/api/debts/{id}/payments", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleDebtPayments)))

	mux.Handle("/api/notifications/register-device/", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))
	mux.Handle("/api/notifications/preferences/", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandlePreferences)))
	mux.Handle("/api/notifications/open/", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleOpen)))
	mux.Handle("/api/notifications/{id}", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleNotificationByID)))
	mux.Handle("/api/notifications/", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleNotifications)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	// Request tracing when telemetry is enabled
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
