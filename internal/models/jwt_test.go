package models

import "testing"

func TestClaims_IsAdmin(t *testing.T) {
	tests := []struct {
		name string
		kind string
		want bool
	}{
		{"admin session", PrincipalKindAdmin, true},
		{"citizen session", PrincipalKindCitizen, false},
		{"empty kind", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{PrincipalKind: tt.kind}
			if got := claims.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClaims_HasPermission(t *testing.T) {
	claims := &Claims{
		PrincipalKind: PrincipalKindAdmin,
		Permissions:   []string{"records:read", "records:write", "announcements:publish"},
	}

	tests := []struct {
		name string
		tag  string
		want bool
	}{
		{"granted tag", "records:write", true},
		{"another granted tag", "announcements:publish", true},
		{"missing tag", "admins:manage", false},
		{"empty tag", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claims.HasPermission(tt.tag); got != tt.want {
				t.Errorf("HasPermission(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestClaims_HasPermission_NilPermissions(t *testing.T) {
	claims := &Claims{PrincipalKind: PrincipalKindCitizen}
	if claims.HasPermission("records:read") {
		t.Error("HasPermission() on nil permissions should be false")
	}
}
