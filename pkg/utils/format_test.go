package utils

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{0, 2, "0.00"},
		{999, 0, "999"},
		{1000, 0, "1,000"},
		{1234567.891, 2, "1,234,567.89"},
		{-98765.4, 1, "-98,765.4"},
		{-0.001, 2, "0.00"},
		{100000, 2, "100,000.00"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.decimals); got != tt.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1.5); got != "+1.50%" {
		t.Errorf("FormatPercent(1.5) = %q", got)
	}
	if got := FormatPercent(-2); got != "-2.00%" {
		t.Errorf("FormatPercent(-2) = %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(100, 110); math.Abs(got-10) > 1e-9 {
		t.Errorf("PercentChange(100, 110) = %v", got)
	}
	if got := PercentChange(0, 5); got != 0 {
		t.Errorf("PercentChange(0, 5) = %v, want 0", got)
	}
}

// FormatNumber groups digits in threes and round-trips to the rounded value.
func TestProperty_FormatNumberGrouping(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("groups of three and value preserved", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatNumber(amount, 2)

			intPart, _, ok := strings.Cut(strings.TrimPrefix(formatted, "-"), ".")
			if !ok {
				return false
			}
			groups := strings.Split(intPart, ",")
			if len(groups[0]) == 0 || len(groups[0]) > 3 {
				return false
			}
			for _, g := range groups[1:] {
				if len(g) != 3 {
					return false
				}
			}

			parsed, err := strconv.ParseFloat(strings.ReplaceAll(formatted, ",", ""), 64)
			if err != nil {
				return false
			}
			return math.Abs(parsed-amount) <= 0.005+1e-9*math.Abs(amount)
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
