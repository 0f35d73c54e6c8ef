// Package numeric is the single home for tolerant scalar parsing: currency
// and percent stripping, thousands separators, range resolution, and the
// fraction-to-percent scale rule. Divergent copies of these rules are a
// proven source of bugs in report extraction, so every call site goes
// through here.
package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// rangePattern matches "65-85", "65 – 85" and friends, tolerating
	// thousands separators and decimals on both bounds.
	rangePattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*[-\x{2013}\x{2014}]\s*(\d[\d,]*(?:\.\d+)?)`)
	// numberPattern matches the first standalone numeric token.
	numberPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

	currencyReplacer = strings.NewReplacer("$", "", "€", "", "£", "", "₹", "", "%", "")
)

// NullableFloat parses a raw cell or metric value, preserving the
// no-hallucination contract: nil means the value is not evidenced in the
// input, never a placeholder. Currency symbols, thousands separators, percent
// signs, and trailing units are tolerated; a range resolves via
// ResolveRange.
func NullableFloat(raw string) *float64 {
	cleaned := currencyReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil
	}

	if m := rangePattern.FindStringSubmatch(cleaned); m != nil {
		lo, errLo := parseToken(m[1])
		hi, errHi := parseToken(m[2])
		if errLo == nil && errHi == nil {
			value := ResolveRange(lo, hi)
			return &value
		}
	}

	token := numberPattern.FindString(cleaned)
	if token == "" {
		return nil
	}
	value, err := parseToken(token)
	if err != nil {
		return nil
	}
	return &value
}

// NullablePercent parses like NullableFloat and then applies the percent
// scale rule, for percent-typed schema leaves and metrics.
func NullablePercent(raw string) *float64 {
	value := NullableFloat(raw)
	if value == nil {
		return nil
	}
	scaled := NormalizePercentScale(*value)
	return &scaled
}

// Float always returns a number, zero on unparsable input. Use it only where
// zero is an acceptable domain default, such as row-level counts feeding
// aggregate tallies; schema leaves must use NullableFloat.
func Float(raw string) float64 {
	if value := NullableFloat(raw); value != nil {
		return *value
	}
	return 0
}

// NormalizePercentScale interprets a raw value <= 1 as a fraction and scales
// it to a percentage; values above 1 are taken as already scaled. This is
// the one copy of the rule.
func NormalizePercentScale(value float64) float64 {
	if value <= 1 {
		return value * 100
	}
	return value
}

// ResolveRange collapses a reported range to a single scalar. Policy: the
// upper bound. Maintenance reports phrase ranges worst-to-best and the
// dashboard shows the optimistic bound.
func ResolveRange(_, hi float64) float64 {
	return hi
}

func parseToken(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
}
