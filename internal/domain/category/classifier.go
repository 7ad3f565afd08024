package category

import "strings"

// Category names that must never generate carried-forward debt. These
// represent recurring discretionary spend (groceries, commuting), not
// billable obligations.
var nonDebtNames = map[string]struct{}{
	"food and dining":    {},
	"food & dining":      {},
	"food":               {},
	"dining":             {},
	"transport":          {},
	"travel":             {},
	"transport / travel": {},
	"transport/travel":   {},
}

// IsNonDebtName reports whether a category name is exempt from debt
// generation. An empty name is never exempt: absence of a category is not
// evidence of exemption.
//
// Beyond the exact exemption set, the substring rules catch user-created
// variants ("Dining Out & Food", "Work Travel"). They intentionally
// over-exempt — a name merely containing "travel" is exempted too. Known
// quirk, kept on purpose; revisit with product before changing.
func IsNonDebtName(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return false
	}

	if _, ok := nonDebtNames[normalized]; ok {
		return true
	}

	if strings.Contains(normalized, "food") && strings.Contains(normalized, "dining") {
		return true
	}

	return strings.Contains(normalized, "transport") || strings.Contains(normalized, "travel")
}
