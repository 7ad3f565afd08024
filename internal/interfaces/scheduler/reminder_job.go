package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"kakebo/internal/domain/debt"
	"kakebo/internal/domain/notification"
	"kakebo/internal/domain/plan"
)

// PaydayReminderJob implements the Job interface for reminding a user
// about debt payments due around their payday.
type PaydayReminderJob struct {
	plan     *plan.Plan
	debts    *debt.Service
	notifier *notification.Service
}

// NewPaydayReminderJob creates a new payday reminder job for a plan
func NewPaydayReminderJob(pl *plan.Plan, debts *debt.Service, notifier *notification.Service) *PaydayReminderJob {
	return &PaydayReminderJob{plan: pl, debts: debts, notifier: notifier}
}

// Execute runs the payday reminder job
func (j *PaydayReminderJob) Execute(ctx context.Context) error {
	days := debt.DaysUntilPayday(j.plan.PayDate, time.Now())

	summary, err := j.debts.Summarize(ctx, j.plan.ID)
	if err != nil {
		return fmt.Errorf("failed to summarize debts: %w", err)
	}

	var due []*debt.Debt
	var total float64
	for _, d := range summary.Debts {
		if d.Paid || d.CurrentBalance <= 0 {
			continue
		}
		if debt.IsNearPayday(d, days) {
			due = append(due, d)
			total += debt.MonthlyPayment(d)
		}
	}

	if len(due) == 0 {
		log.Printf("No payday reminders due for plan %s (payday in %d days)", j.plan.ID, days)
		return nil
	}

	title := "Payday is coming up"
	body := fmt.Sprintf("%d debt payment(s) totalling %.2f are due around your payday.", len(due), total)
	data := map[string]string{
		"planId":          j.plan.ID,
		"daysUntilPayday": strconv.Itoa(days),
	}

	if err := j.notifier.SendToUser(ctx, j.plan.UserID, title, body, notification.CategoryReminders, data); err != nil {
		return fmt.Errorf("failed to send payday reminder: %w", err)
	}

	log.Printf("Sent payday reminder for plan %s: %d payments, total %.2f", j.plan.ID, len(due), total)
	return nil
}

// UserID returns the user ID associated with this job
func (j *PaydayReminderJob) UserID() string {
	return strconv.FormatInt(j.plan.UserID, 10)
}

// Description returns a human-readable description of the job
func (j *PaydayReminderJob) Description() string {
	return fmt.Sprintf("Payday reminder for plan %s", j.plan.ID)
}
