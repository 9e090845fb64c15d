package utils

import (
	"net/mail"
	"strings"

	"github.com/barangay-portal/api/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// IsValidEmail reports whether the string parses as an email address
func IsValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// ValidateResident validates a resident create/update payload
func ValidateResident(req models.ResidentRequest) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(req.FirstName) == "" {
		result.AddError("first_name", "first name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		result.AddError("last_name", "last name is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		result.AddError("address", "address is required")
	}
	if req.Birthdate.IsZero() {
		result.AddError("birthdate", "birthdate is required")
	}
	if !models.IsValidGender(req.Gender) {
		result.AddError("gender", "gender must be one of: "+strings.Join(models.Genders, ", "))
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		result.AddError("phone_number", "phone number is required")
	} else if !IsValidPhoneNumber(req.PhoneNumber) {
		result.AddError("phone_number", "phone number is not a valid Philippine number")
	}
	if req.Email != "" && !IsValidEmail(req.Email) {
		result.AddError("email", "email address is not valid")
	}
	if req.CivilStatus != "" && !models.IsValidCivilStatus(req.CivilStatus) {
		result.AddError("civil_status", "civil status must be one of: "+strings.Join(models.CivilStatuses, ", "))
	}
	if req.HouseholdRole != "" && !models.IsValidHouseholdRole(req.HouseholdRole) {
		result.AddError("household_role", "household role must be one of: "+strings.Join(models.HouseholdRoles, ", "))
	}

	return result
}

// ValidateAnnouncement validates an announcement create/update payload
func ValidateAnnouncement(req models.AnnouncementRequest) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(req.Title) == "" {
		result.AddError("title", "title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		result.AddError("content", "content is required")
	}
	if req.Date.IsZero() {
		result.AddError("date", "date is required")
	}
	if !models.IsValidAnnouncementCategory(req.Category) {
		result.AddError("category", "category must be one of: "+strings.Join(models.AnnouncementCategories, ", "))
	}

	return result
}

// ValidateHotline validates a hotline create/update payload
func ValidateHotline(req models.HotlineRequest) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(req.Name) == "" {
		result.AddError("name", "name is required")
	}
	if !models.IsValidHotlineCategory(req.Category) {
		result.AddError("category", "category must be one of: "+strings.Join(models.HotlineCategories, ", "))
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		result.AddError("phone_number", "phone number is required")
	}
	if !models.IsValidHotlineAvailability(req.Availability) {
		result.AddError("availability", "availability must be one of: "+strings.Join(models.HotlineAvailabilities, ", "))
	}
	if !models.IsValidHotlineResponseTime(req.ResponseTime) {
		result.AddError("response_time", "response time must be one of: "+strings.Join(models.HotlineResponseTimes, ", "))
	}

	return result
}

// ValidateIncidentReport validates an incident report intake payload
func ValidateIncidentReport(req models.IncidentReportRequest) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(req.Title) == "" {
		result.AddError("title", "title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		result.AddError("description", "description is required")
	}
	if len(req.IncidentTypes) == 0 {
		result.AddError("incident_types", "at least one incident type is required")
	}
	for _, incidentType := range req.IncidentTypes {
		if !models.IsValidIncidentType(incidentType) {
			result.AddError("incident_types", "unknown incident type: "+incidentType)
		}
	}
	if strings.TrimSpace(req.Location.Address) == "" {
		result.AddError("location.address", "location address is required")
	}
	if req.OccurredAt.IsZero() {
		result.AddError("occurred_at", "occurrence time is required")
	}
	if !models.IsValidIncidentSeverity(req.Severity) {
		result.AddError("severity", "severity must be one of: "+strings.Join(models.IncidentSeverities, ", "))
	}
	if !models.IsValidIncidentPriority(req.Priority) {
		result.AddError("priority", "priority must be one of: "+strings.Join(models.IncidentPriorities, ", "))
	}
	if req.Status != "" && !models.IsValidIncidentStatus(req.Status) {
		result.AddError("status", "status must be one of: "+strings.Join(models.IncidentStatuses, ", "))
	}
	if strings.TrimSpace(req.Reporter.Name) == "" {
		result.AddError("reporter.name", "reporter name is required")
	}
	if strings.TrimSpace(req.Reporter.ContactNumber) == "" {
		result.AddError("reporter.contact_number", "reporter contact number is required")
	}
	if req.Reporter.Email != "" && !IsValidEmail(req.Reporter.Email) {
		result.AddError("reporter.email", "reporter email is not valid")
	}

	return result
}

// ValidateAppointment validates an appointment create/update payload
func ValidateAppointment(req models.AppointmentRequest) *ValidationResult {
	result := NewValidationResult()

	if strings.TrimSpace(req.Title) == "" {
		result.AddError("title", "title is required")
	}
	if !models.IsValidAppointmentType(req.Type) {
		result.AddError("type", "type must be one of: "+strings.Join(models.AppointmentTypes, ", "))
	}
	if req.ScheduledAt.IsZero() {
		result.AddError("scheduled_at", "schedule time is required")
	}
	if strings.TrimSpace(req.Venue) == "" {
		result.AddError("venue", "venue is required")
	}
	if req.Status != "" && !models.IsValidAppointmentStatus(req.Status) {
		result.AddError("status", "status must be one of: "+strings.Join(models.AppointmentStatuses, ", "))
	}
	if strings.TrimSpace(req.ContactInfo.Name) == "" {
		result.AddError("contact_info.name", "contact name is required")
	}
	if strings.TrimSpace(req.ContactInfo.PhoneNumber) == "" {
		result.AddError("contact_info.phone_number", "contact phone number is required")
	}
	if req.ContactInfo.Email != "" && !IsValidEmail(req.ContactInfo.Email) {
		result.AddError("contact_info.email", "contact email is not valid")
	}

	return result
}
