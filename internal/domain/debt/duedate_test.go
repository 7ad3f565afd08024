package debt

import (
	"testing"
	"time"
)

func TestDefaultDueDate(t *testing.T) {
	tests := []struct {
		name    string
		payDate int
		now     time.Time
		want    string
	}{
		{
			name:    "upcoming pay date this month",
			payDate: 27,
			now:     time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			want:    "2026-02-27",
		},
		{
			name:    "pay date passed rolls to next month",
			payDate: 5,
			now:     time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			want:    "2026-03-05",
		},
		{
			name:    "pay date 31 clamps to leap February",
			payDate: 31,
			now:     time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			want:    "2024-02-29",
		},
		{
			name:    "pay date 31 clamps to non-leap February",
			payDate: 31,
			now:     time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
			want:    "2023-02-28",
		},
		{
			name:    "exactly midnight on the pay date counts as upcoming",
			payDate: 1,
			now:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			want:    "2026-03-01",
		},
		{
			name:    "one second past midnight rolls forward",
			payDate: 1,
			now:     time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC),
			want:    "2026-04-01",
		},
		{
			name:    "December roll-forward crosses the year boundary",
			payDate: 5,
			now:     time.Date(2026, 12, 20, 12, 0, 0, 0, time.UTC),
			want:    "2027-01-05",
		},
		{
			name:    "clamped candidate rolls to an unclamped next month",
			payDate: 30,
			now:     time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC),
			want:    "2026-03-30",
		},
		{
			name:    "zero pay date yields empty",
			payDate: 0,
			now:     time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			want:    "",
		},
		{
			name:    "pay date above 31 yields empty",
			payDate: 32,
			now:     time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultDueDate(tt.payDate, tt.now); got != tt.want {
				t.Errorf("DefaultDueDate(%d, %v) = %q, want %q", tt.payDate, tt.now, got, tt.want)
			}
		})
	}
}

func TestDuePreview(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		paid        bool
		dueDate     string
		payDate     int
		wantUrgency string
		wantDays    int
		wantLabel   string
	}{
		{
			name:        "paid short-circuits regardless of dates",
			paid:        true,
			dueDate:     "2020-01-01",
			payDate:     27,
			wantUrgency: UrgencyPaid,
			wantLabel:   "Paid",
		},
		{
			name:        "overdue explicit date",
			dueDate:     "2026-02-08",
			payDate:     27,
			wantUrgency: UrgencyOverdue,
			wantDays:    -2,
			wantLabel:   "Overdue",
		},
		{
			name:        "due today",
			dueDate:     "2026-02-10",
			payDate:     27,
			wantUrgency: UrgencyOverdue,
			wantDays:    0,
			wantLabel:   "Due today",
		},
		{
			name:        "due tomorrow is soon",
			dueDate:     "2026-02-11",
			payDate:     27,
			wantUrgency: UrgencySoon,
			wantDays:    1,
			wantLabel:   "Due tomorrow",
		},
		{
			name:        "five days out is still soon",
			dueDate:     "2026-02-15",
			payDate:     27,
			wantUrgency: UrgencySoon,
			wantDays:    5,
			wantLabel:   "Due in 5 days",
		},
		{
			name:        "six days out is later",
			dueDate:     "2026-02-16",
			payDate:     27,
			wantUrgency: UrgencyLater,
			wantDays:    6,
			wantLabel:   "Due in 6 days",
		},
		{
			name:        "missing due date falls back to the plan pay date",
			dueDate:     "",
			payDate:     27,
			wantUrgency: UrgencyLater,
			wantDays:    17,
			wantLabel:   "Due in 17 days",
		},
		{
			name:        "unresolvable pay date yields no date",
			dueDate:     "",
			payDate:     0,
			wantUrgency: UrgencyLater,
			wantLabel:   "No due date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DuePreview(tt.paid, tt.dueDate, tt.payDate, now)
			if got.Urgency != tt.wantUrgency {
				t.Errorf("DuePreview() urgency = %q, want %q", got.Urgency, tt.wantUrgency)
			}
			if got.DaysUntil != tt.wantDays {
				t.Errorf("DuePreview() daysUntil = %d, want %d", got.DaysUntil, tt.wantDays)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("DuePreview() label = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	if got := MonthKey(2); got != "FEBRUARY" {
		t.Errorf("MonthKey(2) = %q, want FEBRUARY", got)
	}
	if got := MonthKey(13); got != "" {
		t.Errorf("MonthKey(13) = %q, want empty", got)
	}
	if got := MonthFromKey("february"); got != 2 {
		t.Errorf("MonthFromKey(february) = %d, want 2", got)
	}
	if got := MonthFromKey("SMARCH"); got != 0 {
		t.Errorf("MonthFromKey(SMARCH) = %d, want 0", got)
	}
	if got := PaymentMonth(time.Date(2026, 2, 27, 23, 30, 0, 0, time.UTC)); got != "2026-02" {
		t.Errorf("PaymentMonth() = %q, want 2026-02", got)
	}
}
