package emi

import (
	"strconv"
	"strings"
)

// FormatINR renders a rupee amount with Indian digit grouping: the last three
// digits form one group, every group above that has two (₹50,00,000).
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]

		var b strings.Builder
		for i, digit := range head {
			if i > 0 && (len(head)-i)%2 == 0 {
				b.WriteByte(',')
			}
			b.WriteRune(digit)
		}
		s = b.String() + "," + tail
	}

	return sign + "₹" + s
}
