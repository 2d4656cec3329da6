package models

import (
	"time"
)

// Submission is one accepted form post. Rows are immutable; they disappear
// only when the owning form or account is deleted.
type Submission struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FormID    uint      `gorm:"index;not null" json:"form_id"`
	FormSlug  string    `gorm:"index;not null" json:"form_slug"`
	Data      JSON      `gorm:"type:json" json:"data"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Submission) TableName() string {
	return "submissions"
}
