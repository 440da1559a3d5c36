package input

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	wholePrefix  = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseNumber reads the longest numeric prefix of s, the way browser form code
// reads a text box: "12.5%" is 12.5, "1e3x" is 1000. It returns NaN when s has
// no numeric prefix.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
		return math.Inf(1)
	case strings.HasPrefix(s, "-Infinity"):
		return math.Inf(-1)
	}
	m := numberPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	// Out-of-range prefixes come back as ±Inf with a range error.
	v, _ := strconv.ParseFloat(m, 64)
	return v
}

// ParseWhole reads a leading integer: "12.9" is 12. ok is false when s has no
// leading digits or the value does not fit in an int.
func ParseWhole(s string) (n int, ok bool) {
	m := wholePrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// orZero maps NaN to 0 so that blank amounts behave like an empty box.
func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
