// Package money converts between integer minor-unit amounts and the display
// strings shown to customers. Arithmetic happens on cents only; display
// strings are produced at the presentation boundary and never parsed back
// for computation once stored.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("money: invalid amount")

var symbols = map[string]string{
	"USD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
}

// ParseDisplay converts a display string such as "$45.00", "45", or
// "1,299.50" into cents. Every character other than digits and a decimal
// point is stripped before parsing. At most two fractional digits are
// accepted.
func ParseDisplay(s string) (int64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac, _ := strings.Cut(cleaned, ".")
	if strings.Contains(frac, ".") || len(frac) > 2 {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return w*100 + f, nil
}

// FormatCents renders cents as a display string, e.g. 4500 -> "$45.00".
// Unknown currency codes fall back to "<code> <amount>".
func FormatCents(cents int64, currency string) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	amount := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if sym, ok := symbols[currency]; ok {
		return neg + sym + amount
	}
	return neg + currency + " " + amount
}
