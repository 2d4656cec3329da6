package service

import (
	"errors"
	"testing"

	"github.com/ghostform/ghostform/internal/config"
)

func TestValidatePasswordEmptyPolicyAcceptsAnything(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, ""); err != nil {
		t.Fatalf("empty policy should accept everything, got %v", err)
	}
}

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8}
	if err := validatePassword(policy, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword, got %v", err)
	}
	if err := validatePassword(policy, "long-enough"); err != nil {
		t.Fatalf("long password should pass, got %v", err)
	}
	// Runes, not bytes.
	if err := validatePassword(policy, "密码密码密码密码"); err != nil {
		t.Fatalf("eight runes should satisfy min length 8, got %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
	cases := []struct {
		password string
		ok       bool
	}{
		{"Abc123!!", true},
		{"abc123!!", false}, // no upper
		{"ABC123!!", false}, // no lower
		{"Abcdef!!", false}, // no digit
		{"Abc12345", false}, // no special
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.ok && err != nil {
			t.Fatalf("%q should pass, got %v", tc.password, err)
		}
		if !tc.ok && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%q want ErrWeakPassword, got %v", tc.password, err)
		}
	}
}
