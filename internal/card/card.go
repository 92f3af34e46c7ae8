package card

import "strings"

// Mask reduces a card number to its last four characters. Blank input or input
// of four or fewer characters is returned unchanged.
func Mask(cardNumber string) string {
	if strings.TrimSpace(cardNumber) == "" || len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}

// IsDigits reports whether every character of s is a decimal digit. The empty
// string is vacuously all digits.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
