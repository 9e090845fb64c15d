package observability

import (
	"github.com/barangay-portal/api/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskPhoneNumber masks a phone number for logging
func MaskPhoneNumber(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "*******" + phone[len(phone)-4:]
}

// MaskEmail masks the local part of an email address for logging
func MaskEmail(email string) string {
	for i, r := range email {
		if r == '@' {
			if i <= 1 {
				return "*" + email[i:]
			}
			return email[:1] + "****" + email[i:]
		}
	}
	return "****"
}
