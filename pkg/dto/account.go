package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountCreate is a DTO for the credentials row created at signup.
type AccountCreate struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	PasswordHash          string
	RefreshTokenHash      string
	RefreshTokenExpiresAt time.Time
}

// AccountUpdate is a DTO for credential changes.
type AccountUpdate struct {
	PasswordHash          *string
	RefreshTokenHash      *string
	RefreshTokenExpiresAt *time.Time
}

// AccountRead carries authentication material and must stay inside the
// authentication and users services.
type AccountRead struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	PasswordHash          string
	RefreshTokenHash      string
	RefreshTokenExpiresAt time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SignUpRequest is the payload of authentication SIGN_UP.
type SignUpRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"max=20"`
	Lang        string `json:"lang,omitempty" validate:"omitempty,max=10"`
}

// SignInRequest is the payload of authentication SIGN_IN.
type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the payload of authentication REFRESH_TOKEN.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthTokens is returned by every successful authentication.
type AuthTokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         *UserRead `json:"user"`
}
