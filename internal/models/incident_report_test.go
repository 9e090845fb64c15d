package models

import "testing"

func TestLocationInput_Normalize_Nested(t *testing.T) {
	in := LocationInput{
		Address:     "123 Main St",
		Coordinates: &Coordinates{Latitude: 14.5995, Longitude: 120.9842},
	}

	loc := in.Normalize()
	if loc.Address != "123 Main St" {
		t.Errorf("Normalize() Address = %q, want 123 Main St", loc.Address)
	}
	if loc.Coordinates == nil {
		t.Fatal("Normalize() Coordinates is nil")
	}
	if loc.Coordinates.Latitude != 14.5995 || loc.Coordinates.Longitude != 120.9842 {
		t.Errorf("Normalize() Coordinates = %+v", loc.Coordinates)
	}
}

func TestLocationInput_Normalize_Flat(t *testing.T) {
	lat, lng := 14.5995, 120.9842
	in := LocationInput{Address: "123 Main St", Latitude: &lat, Longitude: &lng}

	loc := in.Normalize()
	if loc.Coordinates == nil {
		t.Fatal("Normalize() Coordinates is nil for flat input")
	}
	if loc.Coordinates.Latitude != lat || loc.Coordinates.Longitude != lng {
		t.Errorf("Normalize() Coordinates = %+v", loc.Coordinates)
	}
}

func TestLocationInput_Normalize_NestedWinsOverFlat(t *testing.T) {
	lat, lng := 1.0, 2.0
	in := LocationInput{
		Address:     "123 Main St",
		Coordinates: &Coordinates{Latitude: 14.5995, Longitude: 120.9842},
		Latitude:    &lat,
		Longitude:   &lng,
	}

	loc := in.Normalize()
	if loc.Coordinates.Latitude != 14.5995 {
		t.Errorf("Normalize() Latitude = %v, want nested value", loc.Coordinates.Latitude)
	}
}

func TestLocationInput_Normalize_AddressOnly(t *testing.T) {
	in := LocationInput{Address: "123 Main St"}
	loc := in.Normalize()
	if loc.Coordinates != nil {
		t.Errorf("Normalize() Coordinates = %+v, want nil", loc.Coordinates)
	}
}

func TestIncidentReport_BeforeCreate(t *testing.T) {
	r := &IncidentReport{}
	r.BeforeCreate()

	if r.Status != "Pending" {
		t.Errorf("BeforeCreate() Status = %q, want Pending", r.Status)
	}
	if r.Version != 1 {
		t.Errorf("BeforeCreate() Version = %d, want 1", r.Version)
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("BeforeCreate() did not set timestamps")
	}
}

func TestIsValidIncidentStatus(t *testing.T) {
	for _, status := range IncidentStatuses {
		if !IsValidIncidentStatus(status) {
			t.Errorf("IsValidIncidentStatus(%q) = false, want true", status)
		}
	}
	if IsValidIncidentStatus("Closed") {
		t.Error("IsValidIncidentStatus(Closed) = true, want false")
	}
}

func TestIsValidIncidentType(t *testing.T) {
	if !IsValidIncidentType("Theft") || !IsValidIncidentType("Other") {
		t.Error("expected Theft and Other to be valid incident types")
	}
	if IsValidIncidentType("Jaywalking") {
		t.Error("IsValidIncidentType(Jaywalking) = true, want false")
	}
}

func TestIsValidIncidentSeverityAndPriority(t *testing.T) {
	if !IsValidIncidentSeverity("Critical") {
		t.Error("IsValidIncidentSeverity(Critical) = false, want true")
	}
	if IsValidIncidentSeverity("Catastrophic") {
		t.Error("IsValidIncidentSeverity(Catastrophic) = true, want false")
	}
	if !IsValidIncidentPriority("Urgent") {
		t.Error("IsValidIncidentPriority(Urgent) = false, want true")
	}
	if IsValidIncidentPriority("Whenever") {
		t.Error("IsValidIncidentPriority(Whenever) = true, want false")
	}
}
