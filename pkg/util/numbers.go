package util

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the longest leading decimal literal, the way browsers read
// form fields: "0.6abc" is 0.6, "1e" is 1, ".5" is 0.5.
var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseFloatOrZero reads the numeric prefix of s and returns 0 when there is none.
// NaN and negative zero also collapse to 0. Out-of-range exponents keep their
// overflowed value (±Inf) or underflow to 0.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f\u00a0\ufeff")
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0
		}
	}
	if math.IsNaN(v) || v == 0 {
		return 0
	}
	return v
}
