package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CitizenAccount represents one citizen login account
type CitizenAccount struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	PasswordHash      string             `bson:"password_hash" json:"-"`
	FirstName         string             `bson:"first_name" json:"first_name"`
	LastName          string             `bson:"last_name" json:"last_name"`
	PhoneNumber       string             `bson:"phone_number" json:"phone_number"`
	EmailVerified     bool               `bson:"email_verified" json:"email_verified"`
	VerificationToken string             `bson:"verification_token,omitempty" json:"-"`
	ResetToken        string             `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry  *time.Time         `bson:"reset_token_expiry,omitempty" json:"-"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// RegisterRequest is the citizen registration payload
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// LoginRequest is the citizen login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the account profile
type LoginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    CitizenAccount `json:"user"`
}

// ProfileUpdateRequest is the citizen profile update payload
type ProfileUpdateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// ForgotPasswordRequest requests a password reset mail
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ResendVerificationRequest requests a new verification mail
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required"`
}

// BeforeCreate sets the bookkeeping timestamps
func (a *CitizenAccount) BeforeCreate() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.IsActive = true
}

// BeforeUpdate refreshes the update timestamp
func (a *CitizenAccount) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}
