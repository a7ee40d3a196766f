package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinorUnitsPerMajorUnit is the number of minor currency units in one major
// unit (cents per dollar). Every conversion in the codebase goes through this
// package so the rounding policy is defined exactly once.
const MinorUnitsPerMajorUnit = 100

// ErrNotANumber reports a numeric string that failed to parse.
var ErrNotANumber = errors.New("value is not a number")

// ToMinorUnits converts a major-unit amount (e.g. 4.50) to integer minor
// units (450). Halves round away from zero, the least surprising policy for
// user-entered currency.
func ToMinorUnits(major float64) int64 {
	return int64(math.Round(major * MinorUnitsPerMajorUnit))
}

// ToDisplayDecimal formats an integer minor-unit amount as a major-unit
// decimal string with exactly two fraction digits, e.g. 450 -> "4.50".
// Integer math only, so repeated round trips cannot drift.
func ToDisplayDecimal(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/MinorUnitsPerMajorUnit, minor%MinorUnitsPerMajorUnit)
}

// ToNumericString renders a number the way a form field holds it, without
// trailing zeros ("30", "4.5").
func ToNumericString(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ParseNumber parses a user-entered numeric string. Surrounding whitespace is
// tolerated; anything else that strconv rejects is ErrNotANumber. The float
// sentinels NaN and Inf are rejected too, so every value that parses is a
// finite amount.
func ParseNumber(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, ErrNotANumber
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return n, nil
}
