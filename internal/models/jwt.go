package models

import "github.com/golang-jwt/jwt/v5"

// Principal kinds carried in issued tokens. A token is either a citizen
// session or an admin session, never both.
const (
	PrincipalKindCitizen = "citizen"
	PrincipalKindAdmin   = "admin"
)

// Claims is the JWT payload issued by the auth and admin login endpoints
type Claims struct {
	PrincipalKind string   `json:"principal_kind"`
	Role          string   `json:"role,omitempty"`
	Permissions   []string `json:"permissions,omitempty"`
	Email         string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token belongs to an admin session
func (c *Claims) IsAdmin() bool {
	return c.PrincipalKind == PrincipalKindAdmin
}

// HasPermission reports whether the token carries a capability tag
func (c *Claims) HasPermission(tag string) bool {
	return containsString(c.Permissions, tag)
}
