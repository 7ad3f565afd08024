package debt

import (
	"fmt"
	"time"
)

// Urgency tiers for a debt's due preview.
const (
	UrgencyPaid    = "paid"
	UrgencyOverdue = "overdue"
	UrgencySoon    = "soon"
	UrgencyLater   = "later"
)

// soonWindowDays is how many days out a due date still counts as "soon".
const soonWindowDays = 5

// Preview is the display-ready due status for one debt.
type Preview struct {
	Label     string `json:"label"`
	Date      string `json:"date,omitempty"`
	DaysUntil int    `json:"daysUntil"`
	Urgency   string `json:"urgency"`
}

// DefaultDueDate resolves the next occurrence of a plan's pay date as an
// ISO date (YYYY-MM-DD), in UTC.
//
// The pay date is clamped to the length of the candidate month, so a pay
// date of 31 lands on Feb 29 in a leap year. The comparison against now
// is strict to the instant: at exactly midnight on the pay date the
// candidate still counts as upcoming, one second later it rolls to the
// next month.
//
// Pay dates outside 1-31 yield an empty string.
func DefaultDueDate(payDate int, now time.Time) string {
	if payDate < 1 || payDate > 31 {
		return ""
	}
	now = now.UTC()

	candidate := clampedDate(now.Year(), now.Month(), payDate)
	if candidate.Before(now) {
		next := candidate.AddDate(0, 0, -candidate.Day()+1).AddDate(0, 1, 0)
		candidate = clampedDate(next.Year(), next.Month(), payDate)
	}
	return candidate.Format("2006-01-02")
}

// DuePreview computes the due status for one debt. A paid debt
// short-circuits regardless of dates. Otherwise the explicit due date
// wins; when absent the plan's pay date resolves the default.
func DuePreview(paid bool, dueDate string, payDate int, now time.Time) Preview {
	if paid {
		return Preview{Label: "Paid", Urgency: UrgencyPaid}
	}

	iso := dueDate
	if iso == "" {
		iso = DefaultDueDate(payDate, now)
	}
	if iso == "" {
		return Preview{Label: "No due date", Urgency: UrgencyLater}
	}

	due, err := time.ParseInLocation("2006-01-02", iso, time.UTC)
	if err != nil {
		return Preview{Label: "No due date", Urgency: UrgencyLater}
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today) / (24 * time.Hour))

	p := Preview{Date: iso, DaysUntil: days}
	switch {
	case days < 0:
		p.Label = "Overdue"
		p.Urgency = UrgencyOverdue
	case days == 0:
		p.Label = "Due today"
		p.Urgency = UrgencyOverdue
	case days <= soonWindowDays:
		p.Label = fmt.Sprintf("Due in %d days", days)
		if days == 1 {
			p.Label = "Due tomorrow"
		}
		p.Urgency = UrgencySoon
	default:
		p.Label = fmt.Sprintf("Due in %d days", days)
		p.Urgency = UrgencyLater
	}
	return p
}

// clampedDate builds a UTC midnight date with the day clamped to the
// month's length.
func clampedDate(year int, month time.Month, day int) time.Time {
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
