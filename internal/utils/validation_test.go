package utils

import (
	"testing"
	"time"

	"github.com/barangay-portal/api/internal/models"
)

func validResidentRequest() models.ResidentRequest {
	return models.ResidentRequest{
		FirstName:   "Juan",
		LastName:    "Dela Cruz",
		PhoneNumber: "09171234567",
		Address:     "123 Main St",
		Gender:      "Male",
		Birthdate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func hasFieldError(result *ValidationResult, field string) bool {
	for _, e := range result.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateResident_Valid(t *testing.T) {
	result := ValidateResident(validResidentRequest())
	if !result.IsValid {
		t.Errorf("ValidateResident() errors = %v, want none", result.Errors)
	}
}

func TestValidateResident_MissingRequiredFields(t *testing.T) {
	result := ValidateResident(models.ResidentRequest{})
	if result.IsValid {
		t.Fatal("ValidateResident() on empty request = valid, want invalid")
	}

	for _, field := range []string{"first_name", "last_name", "phone_number", "address", "gender", "birthdate"} {
		if !hasFieldError(result, field) {
			t.Errorf("expected error for field %q, got %v", field, result.Errors)
		}
	}
}

func TestValidateResident_BadEmail(t *testing.T) {
	req := validResidentRequest()
	req.Email = "not-an-email"
	result := ValidateResident(req)
	if !hasFieldError(result, "email") {
		t.Errorf("expected email error, got %v", result.Errors)
	}
}

func TestValidateResident_EmailOptional(t *testing.T) {
	req := validResidentRequest()
	req.Email = ""
	if result := ValidateResident(req); !result.IsValid {
		t.Errorf("empty email should be accepted, got %v", result.Errors)
	}
}

func TestValidateResident_BadPhone(t *testing.T) {
	req := validResidentRequest()
	req.PhoneNumber = "12345"
	result := ValidateResident(req)
	if !hasFieldError(result, "phone_number") {
		t.Errorf("expected phone_number error, got %v", result.Errors)
	}
}

func validIncidentRequest() models.IncidentReportRequest {
	return models.IncidentReportRequest{
		Title:         "Stolen bicycle",
		Description:   "Bicycle taken from the front yard overnight",
		IncidentTypes: []string{"Theft"},
		Location:      models.LocationInput{Address: "45 Rizal Ave"},
		OccurredAt:    time.Date(2026, 8, 1, 22, 0, 0, 0, time.UTC),
		Reporter: models.IncidentReporter{
			Name:          "Juan Dela Cruz",
			ContactNumber: "09171234567",
		},
		Severity: "Moderate",
		Priority: "Medium",
	}
}

func TestValidateIncidentReport_Valid(t *testing.T) {
	result := ValidateIncidentReport(validIncidentRequest())
	if !result.IsValid {
		t.Errorf("ValidateIncidentReport() errors = %v, want none", result.Errors)
	}
}

func TestValidateIncidentReport_EmptyTypes(t *testing.T) {
	req := validIncidentRequest()
	req.IncidentTypes = nil
	result := ValidateIncidentReport(req)
	if !hasFieldError(result, "incident_types") {
		t.Errorf("expected incident_types error, got %v", result.Errors)
	}
}

func TestValidateIncidentReport_UnknownType(t *testing.T) {
	req := validIncidentRequest()
	req.IncidentTypes = []string{"Theft", "Jaywalking"}
	result := ValidateIncidentReport(req)
	if !hasFieldError(result, "incident_types") {
		t.Errorf("expected incident_types error, got %v", result.Errors)
	}
}

func TestValidateIncidentReport_BadSeverity(t *testing.T) {
	req := validIncidentRequest()
	req.Severity = "Catastrophic"
	result := ValidateIncidentReport(req)
	if !hasFieldError(result, "severity") {
		t.Errorf("expected severity error, got %v", result.Errors)
	}
}

func TestValidateIncidentReport_MissingReporter(t *testing.T) {
	req := validIncidentRequest()
	req.Reporter = models.IncidentReporter{}
	result := ValidateIncidentReport(req)
	if !hasFieldError(result, "reporter.name") || !hasFieldError(result, "reporter.contact_number") {
		t.Errorf("expected reporter errors, got %v", result.Errors)
	}
}

func TestValidateAppointment_Valid(t *testing.T) {
	req := models.AppointmentRequest{
		Title:       "Barangay Clearance",
		Type:        "Document Request",
		ScheduledAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Venue:       "Barangay Hall",
		ContactInfo: models.AppointmentContact{Name: "Juan Dela Cruz", PhoneNumber: "09171234567"},
	}
	result := ValidateAppointment(req)
	if !result.IsValid {
		t.Errorf("ValidateAppointment() errors = %v, want none", result.Errors)
	}
}

func TestValidateAppointment_BadStatus(t *testing.T) {
	req := models.AppointmentRequest{
		Title:       "Barangay Clearance",
		Type:        "Document Request",
		ScheduledAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Venue:       "Barangay Hall",
		Status:      "Approved", // display label, not a stored status
		ContactInfo: models.AppointmentContact{Name: "Juan Dela Cruz", PhoneNumber: "09171234567"},
	}
	result := ValidateAppointment(req)
	if !hasFieldError(result, "status") {
		t.Errorf("expected status error, got %v", result.Errors)
	}
}

func TestValidateHotline(t *testing.T) {
	req := models.HotlineRequest{
		Name:         "Barangay Rescue",
		Category:     "Disaster",
		PhoneNumber:  "09171234567",
		Availability: "24/7",
		ResponseTime: "Immediate",
	}
	if result := ValidateHotline(req); !result.IsValid {
		t.Errorf("ValidateHotline() errors = %v, want none", result.Errors)
	}

	req.Category = "Unknown"
	if result := ValidateHotline(req); !hasFieldError(result, "category") {
		t.Error("expected category error for unknown category")
	}
}

func TestValidateAnnouncement(t *testing.T) {
	req := models.AnnouncementRequest{
		Title:    "Free clinic",
		Category: "Health",
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Content:  "Free checkup at the barangay hall",
	}
	if result := ValidateAnnouncement(req); !result.IsValid {
		t.Errorf("ValidateAnnouncement() errors = %v, want none", result.Errors)
	}

	req.Category = "Gossip"
	if result := ValidateAnnouncement(req); !hasFieldError(result, "category") {
		t.Error("expected category error for unknown category")
	}
}

func TestIsValidEmail(t *testing.T) {
	if !IsValidEmail("juan@example.com") {
		t.Error("IsValidEmail(juan@example.com) = false, want true")
	}
	if IsValidEmail("no-at-sign") {
		t.Error("IsValidEmail(no-at-sign) = true, want false")
	}
}
