package debt

import (
	"strings"
	"time"
)

var monthKeys = [12]string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

// MonthKey returns the uppercase month key ("JANUARY".."DECEMBER") used
// to link expense-sourced debts back to a budgeting month. Returns ""
// for months outside 1-12.
func MonthKey(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthKeys[month-1]
}

// MonthFromKey is the inverse of MonthKey; unknown keys yield 0.
func MonthFromKey(key string) int {
	key = strings.ToUpper(strings.TrimSpace(key))
	for i, k := range monthKeys {
		if k == key {
			return i + 1
		}
	}
	return 0
}

// PaymentMonth formats the month key payments are bucketed under,
// "YYYY-MM" in UTC.
func PaymentMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
