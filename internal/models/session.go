package models

import (
	"time"
)

// Session is an opaque server-side login session. The token doubles as the
// cookie value. Expiry is lazy: expired rows are deleted on resolution.
type Session struct {
	Token     string    `gorm:"primarykey" json:"token"` // random UUID
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

// TableName sets the table name.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.After(now)
}
