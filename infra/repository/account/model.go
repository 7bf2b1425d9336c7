package account

import (
	"time"

	"github.com/google/uuid"
)

// Account holds the credentials of one user.
type Account struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Password              string    `gorm:"not null"`
	RefreshToken          string    `gorm:"size:64"`
	RefreshTokenExpiresAt time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
