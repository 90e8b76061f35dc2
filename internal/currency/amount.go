package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-entered positive amount. Both separator families
// are accepted: "1234.56", "1,234.56", "1.234,56" and "1234,56".
func ParseAmount(s string) (float64, error) {
	clean := strings.Join(strings.Fields(s), "")
	if clean == "" {
		return 0, ErrInvalidAmount
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}

	return d.InexactFloat64(), nil
}

func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			return parts[0] + "." + parts[1]
		}

		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		// 1.000.000
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}
