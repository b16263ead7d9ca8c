package utils

import (
	"fmt"
	"regexp"
)

var (
	monthRegex   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	controlRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateMonth validates a billing period in YYYY-MM form
func ValidateMonth(month string) error {
	if !monthRegex.MatchString(month) {
		return fmt.Errorf("month must be in YYYY-MM format: %s", month)
	}
	return nil
}

// ValidateQuantity validates a delivery quantity
func ValidateQuantity(qty float64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive: %.2f", qty)
	}
	return nil
}

// SanitizeString removes control characters from user-supplied text
func SanitizeString(s string) string {
	return controlRegex.ReplaceAllString(s, "")
}
