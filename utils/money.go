package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount turns a currency-like string ("1,299.00", "Rs. 450") into a
// numeric value. Anything unparseable is 0, never an error, so one bad
// price cannot break an unrelated total.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Everything before the first digit is prefix ("Rs. ", "₹"); a period
	// in there must not end up in the number. Within the numeric run only
	// the first decimal point counts.
	var b strings.Builder
	seenDigit := false
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case r == '.' && seenDigit && !seenDot:
			seenDot = true
			b.WriteRune(r)
		case r == '-' && !seenDigit && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatAmount renders a value with thousands grouping and two decimals,
// e.g. 1299.5 -> "1,299.50".
func FormatAmount(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	frac := int64((amount-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	digits := strconv.FormatInt(whole, 10)
	n := len(digits)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	return fmt.Sprintf("%s.%02d", b.String(), frac)
}
