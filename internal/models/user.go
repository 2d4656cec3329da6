package models

import (
	"time"
)

// User is an account holder. Rows are hard-deleted so that account removal
// leaves nothing behind.
type User struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Pending         bool       `gorm:"not null;default:false;index" json:"pending"` // signup not yet verified
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account finished signup verification.
func (u *User) IsActive() bool {
	return u != nil && !u.Pending && u.EmailVerifiedAt != nil
}
