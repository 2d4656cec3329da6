package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes; messages are safe to surface to clients.
var (
	ErrNotFound = errors.New("resource not found")

	// Accounts and sessions.
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotActive      = errors.New("account not activated")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrSessionInvalid     = errors.New("session invalid or expired")

	// One-time passcodes.
	ErrOTPInvalid          = errors.New("verification code incorrect")
	ErrOTPExpired          = errors.New("verification code expired")
	ErrOTPAttemptsExceeded = errors.New("too many incorrect attempts")
	ErrOTPTooFrequent      = errors.New("verification code requested too frequently")

	// Forms and submissions.
	ErrForbidden        = errors.New("you do not have permission to access this form")
	ErrFormNotFound     = errors.New("form not found")
	ErrSlugConflict     = errors.New("form slug already in use")
	ErrFormInvalid      = errors.New("form definition invalid")
	ErrFormDisabled     = errors.New("form is not accepting submissions")
	ErrRateLimited      = errors.New("too many submissions, please try again later")
	ErrValidationFailed = errors.New("submission failed validation")

	// Email delivery.
	ErrEmailServiceDisabled      = errors.New("email delivery disabled")
	ErrEmailServiceNotConfigured = errors.New("email delivery not configured")
	ErrEmailRecipientRejected    = errors.New("recipient address rejected")

	// Captcha.
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha incorrect")
	ErrCaptchaConfigInvalid = errors.New("captcha configuration invalid")
)
