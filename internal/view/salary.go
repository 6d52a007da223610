package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	usdToINR = 75
	lakh     = 100000
)

// FormatIndianSalary renders a salary figure in rupees. Dollar amounts are
// converted at a fixed rate and shown in lakhs from one lakh upward; rupee
// amounts pass through; anything else gets the rupee sign prefixed.
func FormatIndianSalary(s string) string {
	if strings.Contains(s, "$") {
		inr := usdDigits(s) * usdToINR
		if inr >= lakh {
			return fmt.Sprintf("₹%.2f Lakhs", inr/lakh)
		}
		// below one lakh en-IN and Western grouping agree (99,975)
		return "₹" + humanize.Comma(int64(inr))
	}
	if strings.Contains(s, "₹") {
		return s
	}
	return "₹" + s
}

// usdDigits keeps only the digits of s and reads them as one number.
func usdDigits(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}
