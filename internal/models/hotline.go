package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HotlineCategories accepted on hotline records
var HotlineCategories = []string{"Police", "Fire", "Medical", "Disaster", "Barangay", "Utility"}

// EmergencyHotlineCategories are the categories served by the emergency
// directory endpoint
var EmergencyHotlineCategories = []string{"Police", "Fire", "Medical", "Disaster"}

// HotlineAvailabilities accepted on hotline records
var HotlineAvailabilities = []string{"24/7", "Daytime", "Office Hours"}

// HotlineResponseTimes accepted on hotline records
var HotlineResponseTimes = []string{"Immediate", "Under 15 minutes", "Under 1 hour", "Same day"}

// Hotline represents one emergency or service hotline in the directory
type Hotline struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Category        string             `bson:"category" json:"category"`
	PhoneNumber     string             `bson:"phone_number" json:"phone_number"`
	AlternateNumber string             `bson:"alternate_number,omitempty" json:"alternate_number,omitempty"`
	Description     string             `bson:"description" json:"description"`
	Availability    string             `bson:"availability" json:"availability"`
	ResponseTime    string             `bson:"response_time" json:"response_time"`
	Address         string             `bson:"address" json:"address"`
	Coordinates     *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	IsActive        bool               `bson:"is_active" json:"is_active"`
	IsVerified      bool               `bson:"is_verified" json:"is_verified"`
	Tags            []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	Version         int32              `bson:"version" json:"version"`
}

// HotlineRequest is the create/update payload for a hotline
type HotlineRequest struct {
	Name            string       `json:"name" binding:"required"`
	Category        string       `json:"category" binding:"required"`
	PhoneNumber     string       `json:"phone_number" binding:"required"`
	AlternateNumber string       `json:"alternate_number"`
	Description     string       `json:"description"`
	Availability    string       `json:"availability" binding:"required"`
	ResponseTime    string       `json:"response_time" binding:"required"`
	Address         string       `json:"address"`
	Coordinates     *Coordinates `json:"coordinates"`
	IsActive        *bool        `json:"is_active"`
	IsVerified      *bool        `json:"is_verified"`
	Tags            []string     `json:"tags"`
	Version         *int32       `json:"version,omitempty"`
}

// HotlineBulkVerifyRequest is the payload for bulk verification toggles
type HotlineBulkVerifyRequest struct {
	IDs        []string `json:"ids" binding:"required"`
	IsVerified bool     `json:"is_verified"`
}

// HotlineListResponse is the paginated hotline collection response
type HotlineListResponse struct {
	Success    bool           `json:"success"`
	Data       []Hotline      `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// HotlineStats is the directory statistics overview
type HotlineStats struct {
	Total      int64            `json:"total"`
	Active     int64            `json:"active"`
	Verified   int64            `json:"verified"`
	ByCategory map[string]int64 `json:"by_category"`
}

// BeforeCreate sets the bookkeeping timestamps
func (h *Hotline) BeforeCreate() {
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	h.Version = 1
}

// BeforeUpdate refreshes the update timestamp
func (h *Hotline) BeforeUpdate() {
	h.UpdatedAt = time.Now()
}

// IsValidHotlineCategory reports whether the value is an accepted category
func IsValidHotlineCategory(value string) bool {
	return containsString(HotlineCategories, value)
}

// IsValidHotlineAvailability reports whether the value is an accepted availability
func IsValidHotlineAvailability(value string) bool {
	return containsString(HotlineAvailabilities, value)
}

// IsValidHotlineResponseTime reports whether the value is an accepted response time
func IsValidHotlineResponseTime(value string) bool {
	return containsString(HotlineResponseTimes, value)
}
