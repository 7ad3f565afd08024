package category

import "testing"

func TestIsNonDebtName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact food and dining", "Food & Dining", true},
		{"exact food", "food", true},
		{"exact dining", "Dining", true},
		{"exact transport", "Transport", true},
		{"exact travel", "travel", true},
		{"slash variant", "Transport/Travel", true},
		{"spaced slash variant", "transport / travel", true},
		{"food+dining substring", "Dining Out & Food", true},
		{"food shopping substring", "food shopping", false},
		{"travel substring", "Work Travel Expenses", true},
		{"transport substring", "Public Transport Pass", true},
		{"travel insurance over-exemption", "Travel Insurance", true},
		{"groceries not exempt", "Groceries", false},
		{"rent not exempt", "Rent", false},
		{"empty name", "", false},
		{"whitespace only", "   ", false},
		{"case and padding", "  FOOD AND DINING  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNonDebtName(tt.input); got != tt.want {
				t.Errorf("IsNonDebtName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
