package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminRoles accepted on admin user records
var AdminRoles = []string{"admin", "staff", "moderator", "super_admin"}

// rolePermissions maps each role to its capability tags. Permissions are
// derived from the role at create/update time, never stored independently.
var rolePermissions = map[string][]string{
	"staff":       {"records:read"},
	"moderator":   {"records:read", "records:write", "reports:moderate"},
	"admin":       {"records:read", "records:write", "reports:moderate", "announcements:publish", "hotlines:verify"},
	"super_admin": {"records:read", "records:write", "reports:moderate", "announcements:publish", "hotlines:verify", "admins:manage"},
}

// AdminUser represents one back-office account
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	Permissions  []string           `bson:"permissions" json:"permissions"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// AdminCreateRequest is the payload for creating an admin account
type AdminCreateRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

// AdminUpdateRequest is the payload for updating an admin account
type AdminUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
	Password  string `json:"password"`
}

// AdminLoginRequest is the payload for admin login
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse carries the issued token and the account profile
type AdminLoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	Admin   AdminUser `json:"admin"`
}

// AdminListResponse is the paginated admin collection response
type AdminListResponse struct {
	Success    bool           `json:"success"`
	Data       []AdminUser    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PermissionsForRole returns the capability tags derived from a role
func PermissionsForRole(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// IsValidAdminRole reports whether the value is an accepted role
func IsValidAdminRole(value string) bool {
	return containsString(AdminRoles, value)
}

// HasPermission reports whether the account carries a capability tag
func (u *AdminUser) HasPermission(tag string) bool {
	return containsString(u.Permissions, tag)
}

// BeforeCreate derives permissions and sets bookkeeping timestamps
func (u *AdminUser) BeforeCreate() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Permissions = PermissionsForRole(u.Role)
}

// BeforeUpdate refreshes derived permissions and the update timestamp
func (u *AdminUser) BeforeUpdate() {
	u.UpdatedAt = time.Now()
	u.Permissions = PermissionsForRole(u.Role)
}
