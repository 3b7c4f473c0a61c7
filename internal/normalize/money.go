package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money parses a monetary value that may carry currency symbols, thousands
// separators, and either comma or dot as decimal mark. When both separators
// appear the right-most one is the decimal mark; a lone separator is always
// the decimal mark. The result is non-negative with two-decimal semantics;
// anything unparsable (and any negative value) comes back as 0 with ok=false.
func Money(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}

	// Keep digits, separators and sign; drop currency symbols and spacing.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" || s == "-" {
		return decimal.Zero, false
	}

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A lone comma is the decimal mark; extra commas to its left are
		// thousands separators.
		s = strings.ReplaceAll(s[:lastComma], ",", "") + "." + s[lastComma+1:]
	case lastDot >= 0:
		s = strings.ReplaceAll(s[:lastDot], ".", "") + "." + s[lastDot+1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsNegative() {
		// Negative settlement amounts are floored so downstream row filters
		// can still see them as non-positive.
		return decimal.Zero, false
	}
	return d.Round(2), true
}
