package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"kakebo/internal/domain/expense"
	"kakebo/internal/domain/plan"
)

// CarryoverJob implements the Job interface for converting one plan's
// overdue expenses into debts.
type CarryoverJob struct {
	plan      *plan.Plan
	processor *expense.CarryoverProcessor
}

// NewCarryoverJob creates a new carryover job for a plan
func NewCarryoverJob(pl *plan.Plan, processor *expense.CarryoverProcessor) *CarryoverJob {
	return &CarryoverJob{plan: pl, processor: processor}
}

// Execute runs the carryover job
func (j *CarryoverJob) Execute(ctx context.Context) error {
	log.Printf("Starting expense carryover for plan %s", j.plan.ID)

	result, err := j.processor.ProcessPlan(ctx, j.plan, time.Now())
	if err != nil {
		log.Printf("Expense carryover failed for plan %s: %v", j.plan.ID, err)
		return fmt.Errorf("carryover failed: %w", err)
	}

	if result.Failed > 0 {
		log.Printf("Expense carryover for plan %s completed with errors: Converted=%d, Skipped=%d, Failed=%d",
			j.plan.ID, result.Converted, result.Skipped, result.Failed)
		// Return error to mark for retry
		return fmt.Errorf("carryover completed with %d failures", result.Failed)
	}

	log.Printf("Expense carryover for plan %s completed successfully: Converted=%d, Skipped=%d",
		j.plan.ID, result.Converted, result.Skipped)

	return nil
}

// UserID returns the user ID associated with this job
func (j *CarryoverJob) UserID() string {
	return strconv.FormatInt(j.plan.UserID, 10)
}

// Description returns a human-readable description of the job
func (j *CarryoverJob) Description() string {
	return fmt.Sprintf("Expense carryover for plan %s", j.plan.ID)
}
