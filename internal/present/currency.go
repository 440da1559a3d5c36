package present

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol = "₹"
	lakh           = 100000
)

var locale = language.MustParse("en-IN")

// FormatCurrency renders v as a whole rupee amount with Indian digit grouping,
// e.g. 2300387 -> "₹23,00,387". Halves round away from zero and negative
// amounts carry the sign before the symbol.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return currencySymbol + "-"
	}
	r := math.Round(v)
	sign := ""
	if r < 0 {
		sign = "-"
		r = -r
	}
	if r >= math.MaxInt64 {
		return sign + currencySymbol + groupLakhs(r)
	}
	p := message.NewPrinter(locale)
	return sign + currencySymbol + p.Sprintf("%d", int64(r))
}

// groupLakhs groups a whole number too large for int64 the en-IN way: the last
// three digits, then pairs.
func groupLakhs(r float64) string {
	n, _ := new(big.Float).SetFloat64(r).Int(nil)
	digits := n.String()
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// AxisLabel renders a chart tick in lakhs with one decimal, e.g. 250000 -> "₹2.5L".
func AxisLabel(v float64) string {
	return currencySymbol + strconv.FormatFloat(v/lakh, 'f', 1, 64) + "L"
}
