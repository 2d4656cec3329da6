package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// FieldValidation holds the optional per-field rules. Pointers distinguish
// "unset" from zero values.
type FieldValidation struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Email     *bool    `json:"email,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// FormField is one entry of a form schema. JSON keys follow the public API
// shape consumed by embedded forms.
type FormField struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	Label        string           `json:"label,omitempty"`
	Placeholder  string           `json:"placeholder,omitempty"`
	Description  string           `json:"description,omitempty"`
	DefaultValue string           `json:"defaultValue,omitempty"`
	Required     bool             `json:"required,omitempty"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	Validation   *FieldValidation `json:"validation,omitempty"`
	Options      []string         `json:"options,omitempty"`
}

// FieldList is the ordered field schema stored as a JSON column.
type FieldList []FormField

// Value implements driver.Valuer.
func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]FormField{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *FieldList) Scan(value interface{}) error {
	if value == nil {
		*l = FieldList{}
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// FormSettings is the per-form behavior block stored as a JSON column.
type FormSettings struct {
	SuccessMessage string `json:"successMessage,omitempty"`
	RedirectURL    string `json:"redirectUrl,omitempty"`
	RateLimit      int    `json:"rateLimit,omitempty"` // max submissions per trailing hour, 0 = unlimited
	Enabled        bool   `json:"enabled"`
}

// Value implements driver.Valuer.
func (s FormSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *FormSettings) Scan(value interface{}) error {
	if value == nil {
		*s = FormSettings{}
		return nil
	}
	bytes, ok := normalizeJSONBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Form is a user-owned form schema reachable publicly by slug.
type Form struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	UserID    uint         `gorm:"index;not null" json:"user_id"`
	Name      string       `gorm:"not null" json:"name"`
	Slug      string       `gorm:"uniqueIndex;not null" json:"slug"`
	Fields    FieldList    `gorm:"type:json" json:"fields"`
	Settings  FormSettings `gorm:"type:json" json:"settings"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName sets the table name.
func (Form) TableName() string {
	return "forms"
}
