package main

import (
	"context"
	"log"

	"kakebo/internal/domain/category"
	"kakebo/internal/domain/debt"
	"kakebo/internal/domain/expense"
	"kakebo/internal/domain/notification"
	"kakebo/internal/infrastructure/firebase"
	"kakebo/internal/infrastructure/postgres"
	httphandlers "kakebo/internal/interfaces/http"
	"kakebo/internal/shared/auth"
	"kakebo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	UserHandler         *httphandlers.UserHandler
	PlanHandler         *httphandlers.PlanHandler
	CategoryHandler     *httphandlers.CategoryHandler
	ExpenseHandler      *httphandlers.ExpenseHandler
	IncomeHandler       *httphandlers.IncomeHandler
	GoalHandler         *httphandlers.GoalHandler
	DebtHandler         *httphandlers.DebtHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Components the scheduler job provider builds jobs from
	PlanRepo            *postgres.PlanRepository
	DebtService         *debt.Service
	NotificationService *notification.Service
	CarryoverProcessor  *expense.CarryoverProcessor
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	incomeRepo := postgres.NewIncomeRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Initialize domain services
	debtService := debt.NewService(debtRepo)
	expenseService := expense.NewService(expenseRepo, debtService)
	categoryService := category.NewService(categoryRepo)
	carryoverProcessor := expense.NewCarryoverProcessor(planRepo, expenseRepo, categoryRepo, debtService)

	// Push messaging: Firebase when configured, log-only otherwise
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			db.Close()
			return nil, err
		}
		messenger = fcmClient
	} else {
		log.Println("Firebase credentials not configured, push notifications will only be logged")
		messenger = logMessenger{}
	}
	notificationService := notification.NewService(notificationRepo, messenger)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt)
	userHandler := httphandlers.NewUserHandler(userRepo)
	planHandler := httphandlers.NewPlanHandler(planRepo, categoryService)
	categoryHandler := httphandlers.NewCategoryHandler(planRepo, categoryRepo)
	expenseHandler := httphandlers.NewExpenseHandler(planRepo, expenseRepo, expenseService, incomeRepo, notificationService)
	incomeHandler := httphandlers.NewIncomeHandler(planRepo, incomeRepo)
	goalHandler := httphandlers.NewGoalHandler(planRepo, goalRepo)
	debtHandler := httphandlers.NewDebtHandler(planRepo, debtRepo, debtService)
	notificationHandler := httphandlers.NewNotificationHandler(notificationService)

	return &Dependencies{
		DB:                  db,
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		PlanHandler:         planHandler,
		CategoryHandler:     categoryHandler,
		ExpenseHandler:      expenseHandler,
		IncomeHandler:       incomeHandler,
		GoalHandler:         goalHandler,
		DebtHandler:         debtHandler,
		NotificationHandler: notificationHandler,
		JWT:                 jwt,
		PlanRepo:            planRepo,
		DebtService:         debtService,
		NotificationService: notificationService,
		CarryoverProcessor:  carryoverProcessor,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// logMessenger is the dev fallback when Firebase is not configured.
type logMessenger struct{}

func (logMessenger) Send(_ context.Context, token, title, body string, _ map[string]string) error {
	log.Printf("Push (dry run) to %s: %s - %s", token, title, body)
	return nil
}

func (logMessenger) SendMulticast(_ context.Context, tokens []string, title, body string, _ map[string]string) error {
	log.Printf("Push (dry run) to %d devices: %s - %s", len(tokens), title, body)
	return nil
}
