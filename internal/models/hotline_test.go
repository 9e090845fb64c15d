package models

import "testing"

func TestHotline_BeforeCreate(t *testing.T) {
	h := &Hotline{Name: "Barangay Rescue", Category: "Disaster"}
	h.BeforeCreate()

	if h.CreatedAt.IsZero() {
		t.Error("BeforeCreate() should set CreatedAt")
	}
	if !h.UpdatedAt.Equal(h.CreatedAt) {
		t.Error("BeforeCreate() should set UpdatedAt equal to CreatedAt")
	}
	if h.Version != 1 {
		t.Errorf("BeforeCreate() version = %v, want 1", h.Version)
	}
}

func TestHotline_BeforeUpdate(t *testing.T) {
	h := &Hotline{}
	h.BeforeUpdate()

	if h.UpdatedAt.IsZero() {
		t.Error("BeforeUpdate() should set UpdatedAt")
	}
}

func TestIsValidHotlineCategory(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Police", true},
		{"Fire", true},
		{"Medical", true},
		{"Disaster", true},
		{"Barangay", true},
		{"Utility", true},
		{"police", false},
		{"Unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidHotlineCategory(tt.value); got != tt.want {
			t.Errorf("IsValidHotlineCategory(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIsValidHotlineAvailability(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"24/7", true},
		{"Daytime", true},
		{"Office Hours", true},
		{"Weekends", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidHotlineAvailability(tt.value); got != tt.want {
			t.Errorf("IsValidHotlineAvailability(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIsValidHotlineResponseTime(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Immediate", true},
		{"Under 15 minutes", true},
		{"Under 1 hour", true},
		{"Same day", true},
		{"Next week", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidHotlineResponseTime(tt.value); got != tt.want {
			t.Errorf("IsValidHotlineResponseTime(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEmergencyHotlineCategories_AreValidCategories(t *testing.T) {
	for _, category := range EmergencyHotlineCategories {
		if !IsValidHotlineCategory(category) {
			t.Errorf("emergency category %q is not an accepted hotline category", category)
		}
	}
}
