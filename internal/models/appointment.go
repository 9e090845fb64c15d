package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatuses accepted on appointment records. The stored vocabulary
// is the single source of truth; document requests only relabel for display.
var AppointmentStatuses = []string{
	"Pending", "Confirmed", "Cancelled", "Completed",
	"In Progress", "No Show", "Rescheduled",
}

// AppointmentTypes accepted on appointment records
var AppointmentTypes = []string{
	"Document Request", "Consultation", "Complaint Hearing",
	"Medical Checkup", "Community Service", "Other",
}

// documentRequestLabels relabels stored statuses for document-request
// appointments when rendering responses
var documentRequestLabels = map[string]string{
	"Pending":   "Under Review",
	"Confirmed": "Approved",
	"Cancelled": "Rejected",
}

// AppointmentContact holds the inline contact details for an appointment
type AppointmentContact struct {
	Name        string `bson:"name" json:"name"`
	PhoneNumber string `bson:"phone_number" json:"phone_number"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
}

// Appointment represents one scheduled barangay appointment
type Appointment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Type              string             `bson:"type" json:"type"`
	ScheduledAt       time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	Venue             string             `bson:"venue" json:"venue"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	ContactInfo       AppointmentContact `bson:"contact_info" json:"contact_info"`
	IsDocumentRequest bool               `bson:"is_document_request" json:"is_document_request"`
	Status            string             `bson:"status" json:"status"`
	AssignedTo        string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
	Version           int32              `bson:"version" json:"version"`
}

// AppointmentResponse is the served shape, carrying the display relabeling
// for document-request appointments alongside the stored status
type AppointmentResponse struct {
	Appointment
	DisplayStatus string `json:"display_status"`
}

// AppointmentRequest is the create/update payload for an appointment
type AppointmentRequest struct {
	Title             string             `json:"title" binding:"required"`
	Type              string             `json:"type" binding:"required"`
	ScheduledAt       time.Time          `json:"scheduled_at" binding:"required"`
	Venue             string             `json:"venue" binding:"required"`
	Description       string             `json:"description"`
	ContactInfo       AppointmentContact `json:"contact_info"`
	IsDocumentRequest bool               `json:"is_document_request"`
	Status            string             `json:"status"`
	Version           *int32             `json:"version,omitempty"`
}

// AppointmentBulkStatusRequest is the payload for bulk status updates
type AppointmentBulkStatusRequest struct {
	IDs        []string `json:"ids" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	AssignedTo string   `json:"assigned_to"`
}

// AppointmentListResponse is the paginated appointment collection response
type AppointmentListResponse struct {
	Success    bool                  `json:"success"`
	Data       []AppointmentResponse `json:"data"`
	Pagination PaginationInfo        `json:"pagination"`
}

// AppointmentStats is the appointment statistics overview
type AppointmentStats struct {
	Total    int64            `json:"total"`
	Upcoming int64            `json:"upcoming"`
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
}

// DisplayStatus returns the user-facing status label. Document-request
// appointments use the document vocabulary; everything else shows the
// stored status unchanged.
func (a *Appointment) DisplayStatus() string {
	if a.IsDocumentRequest {
		if label, ok := documentRequestLabels[a.Status]; ok {
			return label
		}
	}
	return a.Status
}

// ToResponse attaches the display status label
func (a *Appointment) ToResponse() AppointmentResponse {
	return AppointmentResponse{Appointment: *a, DisplayStatus: a.DisplayStatus()}
}

// BeforeCreate sets the default status and bookkeeping timestamps
func (a *Appointment) BeforeCreate() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = "Pending"
	}
	a.Version = 1
}

// BeforeUpdate refreshes the update timestamp
func (a *Appointment) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}

// IsValidAppointmentStatus reports whether the value is an accepted status
func IsValidAppointmentStatus(value string) bool {
	return containsString(AppointmentStatuses, value)
}

// IsValidAppointmentType reports whether the value is an accepted type
func IsValidAppointmentType(value string) bool {
	return containsString(AppointmentTypes, value)
}
