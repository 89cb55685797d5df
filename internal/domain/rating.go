package domain

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when a form value is empty or not a number.
var ErrNotNumeric = errors.New("domain: value is not numeric")

var (
	decimalPattern  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	infinityPattern = regexp.MustCompile(`^[+-]?Infinity$`)
	leadingInteger  = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseNumber parses a trimmed decimal literal. Signed "Infinity" is
// accepted, hexadecimal forms and NaN are not.
func ParseNumber(raw string) (float64, error) {
	val := strings.TrimSpace(raw)
	if val == "" {
		return 0, ErrNotNumeric
	}
	if infinityPattern.MatchString(val) {
		if strings.HasPrefix(val, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	if !decimalPattern.MatchString(val) {
		return 0, ErrNotNumeric
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// Overflow saturates to ±Inf, underflow to zero; both are numbers.
			return parsed, nil
		}
		return 0, ErrNotNumeric
	}
	return parsed, nil
}

// ParseReleaseYear validates raw as a number and keeps its leading integer
// part, so "2010.7" yields 2010.
func ParseReleaseYear(raw string) (int, error) {
	if _, err := ParseNumber(raw); err != nil {
		return 0, err
	}
	digits := leadingInteger.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return 0, ErrNotNumeric
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return 0, ErrNotNumeric
	}
	return year, nil
}

// FormatRating renders value with exactly one fractional digit. Exact ties
// round away from zero.
func FormatRating(value float64) string {
	switch {
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case math.IsNaN(value):
		return "NaN"
	case math.Abs(value) >= 1e21:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}

	// A double sits exactly halfway between two tenths only when its
	// fractional part is .25 or .75.
	quarter := value * 4
	if quarter == math.Trunc(quarter) && math.Mod(quarter, 2) != 0 {
		value = math.Round(value*10) / 10
	}
	if value == 0 {
		// Drop the sign of negative zero.
		value = 0
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}

// NormalizeRating parses raw and returns its formatted form.
func NormalizeRating(raw string) (string, error) {
	value, err := ParseNumber(raw)
	if err != nil {
		return "", err
	}
	return FormatRating(value), nil
}
