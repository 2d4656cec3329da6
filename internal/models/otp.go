package models

import (
	"time"
)

// OTP is a one-time passcode emailed during signup or password reset.
// Issuing a new code removes earlier rows for the same (email, purpose),
// so at most one code per pair is live.
type OTP struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"index;not null" json:"email"`
	Purpose      string    `gorm:"index;not null" json:"purpose"` // signup / password-reset
	Code         string    `gorm:"not null" json:"-"`
	AttemptCount int       `gorm:"default:0" json:"attempt_count"`
	SentAt       time.Time `json:"sent_at"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName sets the table name.
func (OTP) TableName() string {
	return "otps"
}
