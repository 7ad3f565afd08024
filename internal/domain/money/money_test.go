package money

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"number", `120.5`, 120.5},
		{"string", `"19.99"`, 19.99},
		{"string with whitespace", `" 42.50"`, 42.5},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
		{"negative number", `-5`, 0},
		{"negative string", `"-5"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if a.Float64() != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, a.Float64(), tt.want)
			}
		})
	}

	var a Amount
	if err := json.Unmarshal([]byte(`true`), &a); err == nil {
		t.Error("expected error for non-numeric, non-string value")
	}

	var fields struct {
		Amount Amount  `json:"amount"`
		Paid   *Amount `json:"paid,omitempty"`
	}
	if err := json.Unmarshal([]byte(`{"amount":"800"}`), &fields); err != nil {
		t.Fatalf("Unmarshal struct error = %v", err)
	}
	if fields.Amount.Float64() != 800 {
		t.Errorf("amount = %v, want 800", fields.Amount.Float64())
	}
	if fields.Paid.Ptr() != nil {
		t.Error("expected absent optional amount to stay nil")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "120", 120},
		{"decimal", "19.99", 19.99},
		{"leading whitespace", "  42.50", 42.5},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"negative", "-5", 0},
		{"infinity", "Inf", 0},
		{"nan", "NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.input); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize(math.NaN()); got != 0 {
		t.Errorf("Sanitize(NaN) = %v, want 0", got)
	}
	if got := Sanitize(math.Inf(1)); got != 0 {
		t.Errorf("Sanitize(+Inf) = %v, want 0", got)
	}
	if got := Sanitize(-1.5); got != 0 {
		t.Errorf("Sanitize(-1.5) = %v, want 0", got)
	}
	if got := Sanitize(3.25); got != 3.25 {
		t.Errorf("Sanitize(3.25) = %v, want 3.25", got)
	}
}

func TestSanitizePtr(t *testing.T) {
	if got := SanitizePtr(nil); got != nil {
		t.Errorf("SanitizePtr(nil) = %v, want nil", got)
	}
	neg := -10.0
	if got := SanitizePtr(&neg); got == nil || *got != 0 {
		t.Errorf("SanitizePtr(&-10) = %v, want &0", got)
	}
}
