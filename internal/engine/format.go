package engine

import (
	"fmt"
	"strconv"
)

// FormatINR renders a rupee amount with Indian digit grouping, e.g.
// 1250000 -> "₹12,50,000".
func FormatINR(amount int64) string {
	sign := ""
	abs := uint64(amount)
	if amount < 0 {
		sign = "-"
		abs = -abs
	}
	s := strconv.FormatUint(abs, 10)
	if len(s) <= 3 {
		return sign + "₹" + s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var out []byte
	for i, c := range []byte(head) {
		if i > 0 && (len(head)-i)%2 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + "₹" + string(out) + "," + tail
}

// FormatLakh renders large amounts in lakh/crore units, e.g. "₹10L", "₹1.5Cr".
func FormatLakh(amount int64) string {
	switch {
	case amount >= 10000000:
		return "₹" + trimFloat(float64(amount)/10000000) + "Cr"
	case amount >= 100000:
		return "₹" + trimFloat(float64(amount)/100000) + "L"
	}
	return FormatINR(amount)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(roundTo(v, 2), 'f', -1, 64)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
