package notification

import "fmt"

// Spending thresholds as a share of monthly income.
const (
	WarnThreshold  = 0.8
	LimitThreshold = 1.0
)

// ThresholdAlert describes a budget threshold that spending just crossed.
type ThresholdAlert struct {
	Threshold float64
	Title     string
	Message   string
}

// EvaluateThreshold reports whether a spending change newly crossed a
// budget threshold. Only the crossing itself fires: spending that was
// already past the threshold stays quiet, so repeated allocations don't
// spam the user. The 100% threshold wins when both are crossed at once.
func EvaluateThreshold(prevSpent, newSpent, monthlyIncome float64) *ThresholdAlert {
	if monthlyIncome <= 0 || newSpent <= prevSpent {
		return nil
	}

	prevRatio := prevSpent / monthlyIncome
	newRatio := newSpent / monthlyIncome

	if prevRatio < LimitThreshold && newRatio >= LimitThreshold {
		return &ThresholdAlert{
			Threshold: LimitThreshold,
			Title:     "Budget limit reached",
			Message:   fmt.Sprintf("You've now spent %.0f%% of this month's income.", newRatio*100),
		}
	}
	if prevRatio < WarnThreshold && newRatio >= WarnThreshold {
		return &ThresholdAlert{
			Threshold: WarnThreshold,
			Title:     "Budget warning",
			Message:   fmt.Sprintf("You've spent %.0f%% of this month's income.", newRatio*100),
		}
	}
	return nil
}
