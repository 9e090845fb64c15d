package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is the region used when a number carries no country prefix
const defaultRegion = "PH"

// NormalizePhoneNumber parses a phone number and returns it in E.164 form.
// Numbers without a country prefix are treated as Philippine numbers, which
// covers the local 09xx mobile format residents type into the portal.
func NormalizePhoneNumber(phoneString string) (string, error) {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return "", fmt.Errorf("phone number is empty")
	}

	num, err := phonenumbers.Parse(cleanPhone, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", phoneString)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsValidPhoneNumber reports whether the string parses as a valid number
func IsValidPhoneNumber(phoneString string) bool {
	_, err := NormalizePhoneNumber(phoneString)
	return err == nil
}
