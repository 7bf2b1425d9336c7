package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user profile record in the database.
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"size:255;not null"`
	Email             string    `gorm:"size:255;not null;uniqueIndex"`
	PhoneNumber       string    `gorm:"size:32"`
	EmailVerified     bool      `gorm:"not null;default:false"`
	Image             string
	Lang              string `gorm:"size:8;not null;default:fr"`
	IsActive          bool   `gorm:"not null;default:true"`
	EmailNotification bool   `gorm:"not null;default:true"`
	SMSNotification   bool   `gorm:"column:sms_notification;not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
