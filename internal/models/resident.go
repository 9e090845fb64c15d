package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values accepted on resident records
var Genders = []string{"Male", "Female"}

// CivilStatuses accepted on resident records
var CivilStatuses = []string{"Single", "Married", "Widowed", "Separated", "Divorced"}

// HouseholdRoles accepted on resident records
var HouseholdRoles = []string{"Head", "Spouse", "Member"}

// DefaultHouseholdRole is applied when the intake form leaves the role blank
const DefaultHouseholdRole = "Member"

// Resident represents one registered barangay resident
type Resident struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"first_name" json:"first_name"`
	MiddleName     string             `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	LastName       string             `bson:"last_name" json:"last_name"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber    string             `bson:"phone_number" json:"phone_number"`
	Address        string             `bson:"address" json:"address"`
	Gender         string             `bson:"gender" json:"gender"`
	Birthdate      time.Time          `bson:"birthdate" json:"birthdate"`
	CivilStatus    string             `bson:"civil_status,omitempty" json:"civil_status,omitempty"`
	Occupation     string             `bson:"occupation,omitempty" json:"occupation,omitempty"`
	HouseholdRole  string             `bson:"household_role" json:"household_role"`
	VoterStatus    bool               `bson:"voter_status" json:"voter_status"`
	RegisteredDate time.Time          `bson:"registered_date" json:"registered_date"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
	Version        int32              `bson:"version" json:"version"`
}

// ResidentResponse is the list/detail shape served to the admin tables,
// with the age computed from the birthdate
type ResidentResponse struct {
	Resident
	Age int `json:"age"`
}

// ResidentListResponse is the paginated resident collection response
type ResidentListResponse struct {
	Success    bool               `json:"success"`
	Data       []ResidentResponse `json:"data"`
	Pagination PaginationInfo     `json:"pagination"`
}

// ResidentRequest is the create/update payload for a resident record
type ResidentRequest struct {
	FirstName     string    `json:"first_name" binding:"required"`
	MiddleName    string    `json:"middle_name"`
	LastName      string    `json:"last_name" binding:"required"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	Gender        string    `json:"gender" binding:"required"`
	Birthdate     time.Time `json:"birthdate" binding:"required"`
	CivilStatus   string    `json:"civil_status"`
	Occupation    string    `json:"occupation"`
	HouseholdRole string    `json:"household_role"`
	VoterStatus   bool      `json:"voter_status"`
	Version       *int32    `json:"version,omitempty"`
}

// Age computes the resident's age at the given moment, adjusted when the
// birthday has not yet passed in the current year
func (r *Resident) Age(now time.Time) int {
	age := now.Year() - r.Birthdate.Year()
	beforeBirthday := now.Month() < r.Birthdate.Month() ||
		(now.Month() == r.Birthdate.Month() && now.Day() < r.Birthdate.Day())
	if beforeBirthday {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ToResponse attaches the computed age
func (r *Resident) ToResponse(now time.Time) ResidentResponse {
	return ResidentResponse{Resident: *r, Age: r.Age(now)}
}

// BeforeCreate sets the registration and bookkeeping timestamps
func (r *Resident) BeforeCreate() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.RegisteredDate.IsZero() {
		r.RegisteredDate = now
	}
	if r.HouseholdRole == "" {
		r.HouseholdRole = DefaultHouseholdRole
	}
	r.Version = 1
}

// BeforeUpdate refreshes the update timestamp
func (r *Resident) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}

// IsValidGender reports whether the value is an accepted gender
func IsValidGender(value string) bool {
	return containsString(Genders, value)
}

// IsValidCivilStatus reports whether the value is an accepted civil status
func IsValidCivilStatus(value string) bool {
	return containsString(CivilStatuses, value)
}

// IsValidHouseholdRole reports whether the value is an accepted household role
func IsValidHouseholdRole(value string) bool {
	return containsString(HouseholdRoles, value)
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
