package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ghostform/ghostform/internal/constants"
	"github.com/ghostform/ghostform/internal/models"
)

var submissionEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmission checks submitted values against a form's field schema.
// Every field is checked; the result maps field IDs to the first failed
// rule's message. An empty map means the submission is valid.
func ValidateSubmission(fields models.FieldList, data models.JSON) map[string]string {
	errors := make(map[string]string)
	for _, field := range fields {
		if msg := validateFieldValue(field, data[field.ID]); msg != "" {
			errors[field.ID] = msg
		}
	}
	return errors
}

// validateFieldValue applies the rules in a fixed order and returns the
// first failure. A custom errorMessage replaces every built-in message.
func validateFieldValue(field models.FormField, raw interface{}) string {
	value, present := stringifySubmissionValue(raw)

	if field.Required && (!present || strings.TrimSpace(value) == "") {
		return fieldErrorMessage(field, fmt.Sprintf("%s is required", fieldLabel(field)))
	}

	// Absent or empty optional values pass the remaining rules untouched.
	if !present {
		return ""
	}

	if field.Type == constants.FieldTypeEmail && emailRuleEnabled(field.Validation) {
		if !submissionEmailRegex.MatchString(value) {
			return fieldErrorMessage(field, "Please enter a valid email address")
		}
	}

	if v := field.Validation; v != nil {
		length := len([]rune(value))
		if v.MinLength != nil && *v.MinLength > 0 && length < *v.MinLength {
			return fieldErrorMessage(field, fmt.Sprintf("%s must be at least %d characters", fieldLabel(field), *v.MinLength))
		}
		if v.MaxLength != nil && *v.MaxLength > 0 && length > *v.MaxLength {
			return fieldErrorMessage(field, fmt.Sprintf("%s must be no more than %d characters", fieldLabel(field), *v.MaxLength))
		}
	}

	if field.Type == constants.FieldTypeNumber && field.Validation != nil {
		// A value that does not parse as a number skips the bounds checks.
		if num, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			if field.Validation.Min != nil && num < *field.Validation.Min {
				return fieldErrorMessage(field, fmt.Sprintf("%s must be at least %s", fieldLabel(field), formatBound(*field.Validation.Min)))
			}
			if field.Validation.Max != nil && num > *field.Validation.Max {
				return fieldErrorMessage(field, fmt.Sprintf("%s must be no more than %s", fieldLabel(field), formatBound(*field.Validation.Max)))
			}
		}
	}

	return ""
}

func emailRuleEnabled(v *models.FieldValidation) bool {
	return v == nil || v.Email == nil || *v.Email
}

func fieldLabel(field models.FormField) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return "This field"
}

func fieldErrorMessage(field models.FormField, fallback string) string {
	if strings.TrimSpace(field.ErrorMessage) != "" {
		return field.ErrorMessage
	}
	return fallback
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// stringifySubmissionValue renders a submitted value as text. The second
// return is false when the value is absent or empty-equivalent (nil, "",
// zero, false), which makes optional rules skip it.
func stringifySubmissionValue(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), v != 0
	case bool:
		return strconv.FormatBool(v), v
	case int:
		return strconv.Itoa(v), v != 0
	case int64:
		return strconv.FormatInt(v, 10), v != 0
	default:
		s := fmt.Sprintf("%v", v)
		return s, s != ""
	}
}
