package constants

// OTP purposes
const (
	OTPPurposeSignup        = "signup"
	OTPPurposePasswordReset = "password-reset"
)

// Form field types
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeNumber   = "number"
	FieldTypeTextarea = "textarea"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
	FieldTypeRadio    = "radio"
	FieldTypeHidden   = "hidden"
)

// Captcha providers
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Captcha scenes
const (
	CaptchaSceneSignup         = "signup"
	CaptchaSceneForgotPassword = "forgot_password"
)

// Queue names and task types
const (
	QueueDefault = "default"
	TaskOTPEmail = "otp:email"
)

// Cache defaults
const (
	RedisPrefixDefault = "gf"
)

// Session defaults
const (
	SessionCookieName        = "session"
	SessionDefaultExpireDays = 30
)

// Submission rate-limit window in minutes
const (
	SubmissionRateWindowMinutes = 60
)

// Default form settings
const (
	DefaultSuccessMessage = "Thank you for your submission!"
)
