package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IncidentStatuses accepted on incident report records
var IncidentStatuses = []string{"Pending", "Under Review", "Resolved", "Rejected"}

// IncidentTypes accepted on incident report records
var IncidentTypes = []string{
	"Theft", "Assault", "Vandalism", "Noise Complaint", "Fire", "Flood",
	"Road Accident", "Domestic Dispute", "Missing Person", "Other",
}

// IncidentSeverities accepted on incident report records
var IncidentSeverities = []string{"Minor", "Moderate", "Severe", "Critical"}

// IncidentPriorities accepted on incident report records
var IncidentPriorities = []string{"Low", "Medium", "High", "Urgent"}

// IncidentReporter holds the inline reporter contact details. Reporter data
// is duplicated on the report rather than joined to a resident record.
type IncidentReporter struct {
	Name          string `bson:"name" json:"name"`
	ContactNumber string `bson:"contact_number" json:"contact_number"`
	Email         string `bson:"email,omitempty" json:"email,omitempty"`
	Relationship  string `bson:"relationship,omitempty" json:"relationship,omitempty"`
}

// IncidentReport represents one reported incident
type IncidentReport struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	IncidentTypes   []string           `bson:"incident_types" json:"incident_types"`
	Location        Location           `bson:"location" json:"location"`
	OccurredAt      time.Time          `bson:"occurred_at" json:"occurred_at"`
	Reporter        IncidentReporter   `bson:"reporter" json:"reporter"`
	AffectedPersons []string           `bson:"affected_persons,omitempty" json:"affected_persons,omitempty"`
	Severity        string             `bson:"severity" json:"severity"`
	Priority        string             `bson:"priority" json:"priority"`
	IsEmergency     bool               `bson:"is_emergency" json:"is_emergency"`
	Status          string             `bson:"status" json:"status"`
	AssignedTo      string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	Version         int32              `bson:"version" json:"version"`
}

// IncidentReportRequest is the create/update payload. Location accepts both
// client intake shapes and is normalized before storage.
type IncidentReportRequest struct {
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description" binding:"required"`
	IncidentTypes   []string         `json:"incident_types"`
	Location        LocationInput    `json:"location"`
	OccurredAt      time.Time        `json:"occurred_at" binding:"required"`
	Reporter        IncidentReporter `json:"reporter"`
	AffectedPersons []string         `json:"affected_persons"`
	Severity        string           `json:"severity"`
	Priority        string           `json:"priority"`
	IsEmergency     bool             `json:"is_emergency"`
	Status          string           `json:"status"`
	Version         *int32           `json:"version,omitempty"`
}

// IncidentBulkStatusRequest is the payload for bulk status updates
type IncidentBulkStatusRequest struct {
	IDs        []string `json:"ids" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	AssignedTo string   `json:"assigned_to"`
}

// IncidentReportListResponse is the paginated incident collection response
type IncidentReportListResponse struct {
	Success    bool             `json:"success"`
	Data       []IncidentReport `json:"data"`
	Pagination PaginationInfo   `json:"pagination"`
}

// IncidentStats is the incident statistics overview
type IncidentStats struct {
	Total       int64            `json:"total"`
	Emergencies int64            `json:"emergencies"`
	ByStatus    map[string]int64 `json:"by_status"`
	BySeverity  map[string]int64 `json:"by_severity"`
}

// BeforeCreate sets the default status and bookkeeping timestamps
func (r *IncidentReport) BeforeCreate() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = "Pending"
	}
	r.Version = 1
}

// BeforeUpdate refreshes the update timestamp
func (r *IncidentReport) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}

// IsValidIncidentStatus reports whether the value is an accepted status
func IsValidIncidentStatus(value string) bool {
	return containsString(IncidentStatuses, value)
}

// IsValidIncidentType reports whether the value is an accepted incident type
func IsValidIncidentType(value string) bool {
	return containsString(IncidentTypes, value)
}

// IsValidIncidentSeverity reports whether the value is an accepted severity
func IsValidIncidentSeverity(value string) bool {
	return containsString(IncidentSeverities, value)
}

// IsValidIncidentPriority reports whether the value is an accepted priority
func IsValidIncidentPriority(value string) bool {
	return containsString(IncidentPriorities, value)
}
