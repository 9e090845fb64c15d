package models

import "errors"

// Sentinel errors mapped to HTTP statuses in the handlers layer
var (
	ErrInvalidID            = errors.New("invalid record ID")
	ErrResidentNotFound     = errors.New("resident not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrHotlineNotFound      = errors.New("hotline not found")
	ErrIncidentNotFound     = errors.New("incident report not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAdminUserNotFound    = errors.New("admin user not found")
	ErrAccountNotFound      = errors.New("account not found")

	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidRole     = errors.New("invalid role value")
	ErrEmptyIDList     = errors.New("at least one record ID is required")
	ErrVersionConflict = errors.New("record was modified by another session")

	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrEmailNotVerified   = errors.New("email address not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
