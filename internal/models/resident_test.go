package models

import (
	"testing"
	"time"
)

func TestResident_Age(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthdate time.Time
		want      int
	}{
		{"birthday already passed this year", time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), 36},
		{"birthday not yet passed this year", time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), 36},
		{"birthday tomorrow", time.Date(1990, time.June, 16, 0, 0, 0, 0, time.UTC), 35},
		{"born this year", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resident{Birthdate: tt.birthdate}
			if got := r.Age(now); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResident_BeforeCreate(t *testing.T) {
	r := &Resident{FirstName: "Juan", LastName: "Dela Cruz"}
	r.BeforeCreate()

	if r.CreatedAt.IsZero() {
		t.Error("BeforeCreate() did not set CreatedAt")
	}
	if r.UpdatedAt.IsZero() {
		t.Error("BeforeCreate() did not set UpdatedAt")
	}
	if r.RegisteredDate.IsZero() {
		t.Error("BeforeCreate() did not set RegisteredDate")
	}
	if r.HouseholdRole != DefaultHouseholdRole {
		t.Errorf("BeforeCreate() HouseholdRole = %q, want %q", r.HouseholdRole, DefaultHouseholdRole)
	}
	if r.Version != 1 {
		t.Errorf("BeforeCreate() Version = %d, want 1", r.Version)
	}
}

func TestResident_BeforeCreate_KeepsExplicitRole(t *testing.T) {
	r := &Resident{HouseholdRole: "Head"}
	r.BeforeCreate()
	if r.HouseholdRole != "Head" {
		t.Errorf("BeforeCreate() HouseholdRole = %q, want Head", r.HouseholdRole)
	}
}

func TestResident_BeforeUpdate(t *testing.T) {
	r := &Resident{UpdatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	r.BeforeUpdate()
	if !r.UpdatedAt.After(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("BeforeUpdate() did not refresh UpdatedAt")
	}
}

func TestIsValidGender(t *testing.T) {
	if !IsValidGender("Male") || !IsValidGender("Female") {
		t.Error("expected Male and Female to be valid genders")
	}
	if IsValidGender("other") || IsValidGender("") {
		t.Error("unexpected gender value accepted")
	}
}

func TestIsValidCivilStatus(t *testing.T) {
	for _, status := range CivilStatuses {
		if !IsValidCivilStatus(status) {
			t.Errorf("IsValidCivilStatus(%q) = false, want true", status)
		}
	}
	if IsValidCivilStatus("Engaged") {
		t.Error("IsValidCivilStatus(Engaged) = true, want false")
	}
}

func TestResident_ToResponse(t *testing.T) {
	r := &Resident{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Birthdate: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)

	resp := r.ToResponse(now)
	if resp.Age != 36 {
		t.Errorf("ToResponse() Age = %d, want 36", resp.Age)
	}
	if resp.FirstName != "Juan" {
		t.Errorf("ToResponse() FirstName = %q, want Juan", resp.FirstName)
	}
}
