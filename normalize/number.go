// Package normalize contains the pure field normalizers and the assembler
// that collapse platform-shaped raw payloads into UnifiedProduct records.
// Every function here is a pure function of its input and never panics on
// malformed data.
package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencySymbols = regexp.MustCompile(`[€$£¥₹\s]`)
	currencyCodes   = regexp.MustCompile(`(?i)EUR|USD|GBP`)

	// Separator disambiguation happens by shape, in priority order.
	// Naive stripping misparses "1.234,56" (~1234.56) as 1.23456 or
	// 1234560 when these rules run out of order.
	europeanGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})*,\d{2}$`)
	usGrouped       = regexp.MustCompile(`^\d{1,3}(,\d{3})*(\.\d+)?$`)
	commaDecimal    = regexp.MustCompile(`^\d+,\d+$`)
)

// ParseNumber parses a price-like value of any raw type into a float64.
// Genuinely unparseable input yields NaN; callers coalesce NaN to 0 at
// the assembly boundary.
func ParseNumber(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return math.NaN()
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return math.NaN()
	case string:
		return parseNumericString(v)
	default:
		return math.NaN()
	}
}

func parseNumericString(s string) float64 {
	clean := currencySymbols.ReplaceAllString(s, "")
	clean = currencyCodes.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return math.NaN()
	}

	switch {
	case europeanGrouped.MatchString(clean):
		// 1.234,56 -> dots are thousands, comma is the decimal point.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case usGrouped.MatchString(clean):
		// 1,234.56 -> commas are thousands.
		clean = strings.ReplaceAll(clean, ",", "")
	case commaDecimal.MatchString(clean):
		// 29,99 -> bare comma decimal.
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// priceOrZero coalesces NaN/Inf/negative parse results to 0 so that no
// non-finite number ever reaches a UnifiedProduct.
func priceOrZero(value interface{}) float64 {
	f := ParseNumber(value)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
