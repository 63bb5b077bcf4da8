package posting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const currencyPrefix = "Rs"

// FormatRevenueValue renders a revenue figure as the human-readable
// magnitude string the spreadsheet uses: "Rs583K", "Rs1.2M", "Rs999".
// At or above a million, one decimal with an M suffix; at or above a
// thousand, rounded to an integer with a K suffix; below that, a plain
// integer.
func FormatRevenueValue(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", currencyPrefix, value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%s%.0fK", currencyPrefix, math.Round(value/1_000))
	default:
		return fmt.Sprintf("%s%.0f", currencyPrefix, math.Round(value))
	}
}

// ParseRevenueValue inverts FormatRevenueValue: it strips a currency
// prefix and thousands separators and interprets K/M suffixes.
// parse(format(x)) reproduces x to the precision the format preserves.
func ParseRevenueValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty revenue value")
	}

	// Drop any leading currency letters or symbols.
	start := 0
	for start < len(s) && (s[start] < '0' || s[start] > '9') && s[start] != '-' && s[start] != '.' {
		start++
	}
	s = s[start:]
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(s), "M"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "K"):
		multiplier = 1_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "unparseable revenue value %q", raw)
	}

	return value * multiplier, nil
}
