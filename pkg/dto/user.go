package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate is a DTO for creating a new user profile.
type UserCreate struct {
	ID          uuid.UUID
	Name        string
	Email       string
	PhoneNumber string
	Lang        string
}

// UserUpdate is a DTO for partial profile updates. Nil fields are left
// untouched.
type UserUpdate struct {
	Name              *string `json:"name,omitempty"`
	Email             *string `json:"email,omitempty"`
	PhoneNumber       *string `json:"phoneNumber,omitempty"`
	Image             *string `json:"image,omitempty"`
	Lang              *string `json:"lang,omitempty"`
	EmailNotification *bool   `json:"emailNotification,omitempty"`
	SMSNotification   *bool   `json:"smsNotification,omitempty"`
}

// UserRead is the public profile of a user. It never carries credentials.
type UserRead struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber,omitempty"`
	EmailVerified     bool      `json:"emailVerified"`
	Image             string    `json:"image,omitempty"`
	Lang              string    `json:"lang"`
	IsActive          bool      `json:"isActive"`
	EmailNotification bool      `json:"emailNotification"`
	SMSNotification   bool      `json:"smsNotification"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// UpdatePasswordRequest is the payload of users UPDATE_PASSWORD.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}
