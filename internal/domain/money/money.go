// Package money holds the single coercion point for currency values.
// Everything past this boundary works with plain float64 amounts and
// never re-validates.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a money field as it appears on the wire. Clients send
// amounts as either JSON numbers or strings ("19.99"); both decode
// through the same parse-or-zero coercion, so handlers always see a
// usable non-negative float.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(ParseAmount(s))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(Sanitize(v))
	return nil
}

// Float64 unwraps the amount for domain code, which works in plain floats.
func (a Amount) Float64() float64 { return float64(a) }

// Ptr converts an optional wire amount to the *float64 the domain
// update params expect.
func (a *Amount) Ptr() *float64 {
	return (*float64)(a)
}

// ParseAmount converts a free-text money field to a non-negative amount.
// Anything unparseable, negative, or non-finite degrades to zero so that
// callers can treat the result as always usable.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Sanitize(v)
}

// Sanitize clamps a raw float into the valid amount range.
// NaN, infinities and negatives all become zero.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SanitizePtr sanitizes an optional amount, keeping nil as nil.
func SanitizePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clean := Sanitize(*v)
	return &clean
}
