package models

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{"ErrInvalidID", ErrInvalidID, "invalid record ID"},
		{"ErrResidentNotFound", ErrResidentNotFound, "resident not found"},
		{"ErrAnnouncementNotFound", ErrAnnouncementNotFound, "announcement not found"},
		{"ErrHotlineNotFound", ErrHotlineNotFound, "hotline not found"},
		{"ErrIncidentNotFound", ErrIncidentNotFound, "incident report not found"},
		{"ErrAppointmentNotFound", ErrAppointmentNotFound, "appointment not found"},
		{"ErrAdminUserNotFound", ErrAdminUserNotFound, "admin user not found"},
		{"ErrAccountNotFound", ErrAccountNotFound, "account not found"},
		{"ErrInvalidStatus", ErrInvalidStatus, "invalid status value"},
		{"ErrInvalidRole", ErrInvalidRole, "invalid role value"},
		{"ErrEmptyIDList", ErrEmptyIDList, "at least one record ID is required"},
		{"ErrVersionConflict", ErrVersionConflict, "record was modified by another session"},
		{"ErrUsernameExists", ErrUsernameExists, "username already exists"},
		{"ErrEmailExists", ErrEmailExists, "email already registered"},
		{"ErrInvalidCredentials", ErrInvalidCredentials, "invalid credentials"},
		{"ErrAccountInactive", ErrAccountInactive, "account is deactivated"},
		{"ErrEmailNotVerified", ErrEmailNotVerified, "email address not verified"},
		{"ErrInvalidToken", ErrInvalidToken, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("%s is nil, expected an error", tt.name)
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("%s error message = %q, want %q", tt.name, tt.err.Error(), tt.expectedMsg)
			}
			if !errors.Is(tt.err, tt.err) {
				t.Errorf("%s should match itself using errors.Is", tt.name)
			}
		})
	}
}

func TestErrorUniqueness(t *testing.T) {
	errorVars := []error{
		ErrInvalidID,
		ErrResidentNotFound,
		ErrAnnouncementNotFound,
		ErrHotlineNotFound,
		ErrIncidentNotFound,
		ErrAppointmentNotFound,
		ErrAdminUserNotFound,
		ErrAccountNotFound,
		ErrInvalidStatus,
		ErrInvalidRole,
		ErrEmptyIDList,
		ErrVersionConflict,
		ErrUsernameExists,
		ErrEmailExists,
		ErrInvalidCredentials,
		ErrAccountInactive,
		ErrEmailNotVerified,
		ErrInvalidToken,
	}

	for i, err1 := range errorVars {
		for j, err2 := range errorVars {
			if i != j && err1 == err2 {
				t.Errorf("errors at index %d and %d are the same: %v", i, j, err1)
			}
		}
	}
}
