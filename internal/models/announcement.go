package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnnouncementCategories accepted on announcement records
var AnnouncementCategories = []string{"General", "Health", "Safety", "Event", "Service Advisory"}

// Announcement represents one barangay announcement
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Category  string             `bson:"category" json:"category"`
	Date      time.Time          `bson:"date" json:"date"`
	Content   string             `bson:"content" json:"content"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Version   int32              `bson:"version" json:"version"`
}

// AnnouncementRequest is the create/update payload for an announcement
type AnnouncementRequest struct {
	Title    string    `json:"title" binding:"required"`
	Category string    `json:"category" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Content  string    `json:"content" binding:"required"`
	Source   string    `json:"source"`
	IsActive *bool     `json:"is_active"`
	Version  *int32    `json:"version,omitempty"`
}

// AnnouncementListResponse is the paginated announcement collection response
type AnnouncementListResponse struct {
	Success    bool           `json:"success"`
	Data       []Announcement `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// BeforeCreate sets the bookkeeping timestamps
func (a *Announcement) BeforeCreate() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Version = 1
}

// BeforeUpdate refreshes the update timestamp
func (a *Announcement) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}

// IsValidAnnouncementCategory reports whether the value is an accepted category
func IsValidAnnouncementCategory(value string) bool {
	return containsString(AnnouncementCategories, value)
}
