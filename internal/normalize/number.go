package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Number converts a raw cell value into a non-negative amount.
// Thousands separators and whitespace are stripped. Empty, unparseable
// or negative input degrades to 0; the result is never NaN.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
