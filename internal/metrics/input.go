package metrics

import (
	"math"
	"strconv"
	"strings"
)

// ParseValue reads quick-capture input. Empty, non-numeric and non-finite
// input is rejected.
func ParseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatValue renders a value the way the cards show it: shortest form,
// no trailing zeros.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "–"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
