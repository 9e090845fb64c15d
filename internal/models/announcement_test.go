package models

import "testing"

func TestAnnouncement_BeforeCreate(t *testing.T) {
	a := &Announcement{Title: "Libreng Bakuna", Category: "Health"}
	a.BeforeCreate()

	if a.CreatedAt.IsZero() {
		t.Error("BeforeCreate() should set CreatedAt")
	}
	if !a.UpdatedAt.Equal(a.CreatedAt) {
		t.Error("BeforeCreate() should set UpdatedAt equal to CreatedAt")
	}
	if a.Version != 1 {
		t.Errorf("BeforeCreate() version = %v, want 1", a.Version)
	}
}

func TestAnnouncement_BeforeUpdate(t *testing.T) {
	a := &Announcement{}
	a.BeforeUpdate()

	if a.UpdatedAt.IsZero() {
		t.Error("BeforeUpdate() should set UpdatedAt")
	}
}

func TestIsValidAnnouncementCategory(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"General", true},
		{"Health", true},
		{"Safety", true},
		{"Event", true},
		{"Service Advisory", true},
		{"general", false},
		{"News", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidAnnouncementCategory(tt.value); got != tt.want {
			t.Errorf("IsValidAnnouncementCategory(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
