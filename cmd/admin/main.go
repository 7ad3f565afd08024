package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"kakebo/internal/domain/debt"
	"kakebo/internal/domain/expense"
	"kakebo/internal/infrastructure/postgres"
	"kakebo/internal/shared/config"
)

const usage = `Kakebo Admin CLI - Management commands for the Kakebo API

Usage:
  admin <command> [options]

Commands:
  carryover   Convert overdue unpaid expenses into tracked debts
  migrate     Apply pending database schema migrations

Examples:
  # Sweep all personal plans
  admin carryover --all

  # Sweep the plans of specific users
  admin carryover --user-id=1,2,3

  # Run with timeout
  admin carryover --all --timeout=5m

  # Apply migrations
  admin migrate
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "carryover":
		runCarryover(os.Args[2:])
	case "migrate":
		runMigrate()
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func runCarryover(args []string) {
	fs := flag.NewFlagSet("carryover", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to sweep (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Sweep every personal plan")
	timeoutStr := fs.String("timeout", "30m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin carryover [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin carryover --user-id=1")
		fmt.Println("  admin carryover --user-id=1,2,3")
		fmt.Println("  admin carryover --all --timeout=1h")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userIDStr == "" && !*allUsers {
		fmt.Println("Error: must specify --user-id or --all")
		fs.Usage()
		os.Exit(1)
	}

	// Parse timeout
	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	db := connect()
	defer db.Close()

	// Initialize repositories and services
	planRepo := postgres.NewPlanRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	debtService := debt.NewService(postgres.NewDebtRepository(db))
	processor := expense.NewCarryoverProcessor(planRepo, expenseRepo, categoryRepo, debtService)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	now := time.Now()
	startTime := now

	if *allUsers {
		log.Println("Starting carryover sweep for all personal plans")
		result, err := processor.ProcessAll(ctx, now)
		if err != nil {
			log.Fatalf("Carryover sweep failed: %v", err)
		}
		printResult("all plans", result)
	} else {
		userIDs := parseUserIDs(*userIDStr)
		if len(userIDs) == 0 {
			log.Println("No users to process")
			return
		}

		log.Printf("Starting carryover sweep for %d user(s)", len(userIDs))
		for _, uid := range userIDs {
			plans, err := planRepo.ListByUserID(ctx, uid)
			if err != nil {
				log.Fatalf("Failed to list plans for user %d: %v", uid, err)
			}
			for _, pl := range plans {
				result, err := processor.ProcessPlan(ctx, pl, now)
				if err != nil {
					log.Printf("Carryover failed for plan %s: %v", pl.ID, err)
					continue
				}
				printResult(fmt.Sprintf("user %d, plan %s", uid, pl.ID), result)
			}
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("Carryover sweep completed in %v", elapsed)
}

func runMigrate() {
	db := connect()
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func connect() *postgres.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")
	return db
}

func parseUserIDs(s string) []int64 {
	var userIDs []int64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Fatalf("Invalid user ID '%s': %v", p, err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs
}

func printResult(scope string, result *expense.CarryoverResult) {
	fmt.Printf("\n=== %s ===\n", scope)
	fmt.Printf("  Plans processed:    %d\n", result.PlansProcessed)
	fmt.Printf("  Expenses converted: %d\n", result.Converted)
	fmt.Printf("  Expenses skipped:   %d\n", result.Skipped)
	fmt.Printf("  Failures:           %d\n", result.Failed)
}
