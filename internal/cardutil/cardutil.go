package cardutil

import (
	"strings"
	"unicode"
)

// StripSpaces removes all whitespace from a user-entered card or
// prepaid number, e.g. "4242 4242 4242 4242" -> "4242424242424242".
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IsDigits reports whether s is non-empty and consists only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidNumber validates a card number: digits only, plausible length,
// and a correct Luhn check digit. Whitespace must already be stripped.
func ValidNumber(number string) bool {
	if !IsDigits(number) {
		return false
	}
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	return luhnChecksum(number)%10 == 0
}

// luhnChecksum computes the Luhn sum over the full number, check digit
// included. Doubled digits above 9 have 9 subtracted.
func luhnChecksum(number string) int {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum
}
