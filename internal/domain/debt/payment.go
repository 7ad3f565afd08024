package debt

import "time"

// MonthlyPayment derives the suggested payment for one debt this month.
//
// Decision order:
//  1. An installment schedule spreads the remaining balance evenly over
//     the configured months; a monthly minimum higher than that share
//     overrides it.
//  2. Otherwise a positive monthly minimum is used as-is.
//  3. Otherwise the manually configured amount.
//
// The result is a plain division with no rounding and is never clamped
// to the remaining balance: near the end of an installment schedule the
// suggestion can exceed what is actually owed.
func MonthlyPayment(d *Debt) float64 {
	if d.InstallmentMonths != nil && *d.InstallmentMonths > 0 && d.CurrentBalance > 0 {
		installment := d.CurrentBalance / float64(*d.InstallmentMonths)
		if d.MonthlyMinimum != nil && *d.MonthlyMinimum > installment {
			return *d.MonthlyMinimum
		}
		return installment
	}
	if d.MonthlyMinimum != nil && *d.MonthlyMinimum > 0 {
		return *d.MonthlyMinimum
	}
	if d.Amount > 0 {
		return d.Amount
	}
	return 0
}

// TotalMonthlyPayments sums MonthlyPayment across all debts that still
// need servicing. Paid debts and debts with no remaining balance are
// skipped even when they carry a minimum or fallback amount.
func TotalMonthlyPayments(debts []*Debt) float64 {
	var total float64
	for _, d := range debts {
		if d.Paid || d.CurrentBalance <= 0 {
			continue
		}
		total += MonthlyPayment(d)
	}
	return total
}

// PercentPaid reports repayment progress as a 0-100 percentage.
func PercentPaid(d *Debt) float64 {
	if d.InitialBalance <= 0 {
		return 0
	}
	p := (d.InitialBalance - d.CurrentBalance) / d.InitialBalance * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CanDelete reports whether a debt may be removed. Expense-sourced debts
// with an outstanding balance must be settled (or the source expense
// paid) before deletion.
func CanDelete(d *Debt) bool {
	return !(d.SourceType == SourceTypeExpense && d.CurrentBalance > 0)
}

// DaysUntilPayday counts the days from now until the plan's pay date,
// wrapping into the next month when the pay date has already passed.
func DaysUntilPayday(payDate int, now time.Time) int {
	now = now.UTC()
	day := now.Day()
	if payDate >= day {
		return payDate - day
	}
	return daysInMonth(now.Year(), now.Month()) - day + payDate
}

// IsNearPayday reports whether a debt is worth surfacing in a payday
// reminder: payday is at most three days out and the debt has a
// configured payment amount.
func IsNearPayday(d *Debt, daysUntilPayday int) bool {
	return daysUntilPayday <= 3 && d.Amount > 0
}
