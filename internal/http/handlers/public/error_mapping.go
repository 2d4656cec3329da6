package public

import (
	"errors"

	handlershared "github.com/ghostform/ghostform/internal/http/handlers/shared"
	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError binds a sentinel error to a response code and message.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var otpDeliveryErrorRules = []mappedHandlerError{
	{target: service.ErrOTPTooFrequent, code: response.CodeTooManyRequests, msg: "verification code requested too frequently"},
	{target: service.ErrEmailRecipientRejected, code: response.CodeBadRequest, msg: "recipient address rejected"},
	{target: service.ErrEmailServiceDisabled, code: response.CodeInternal, msg: "email delivery not configured"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, msg: "email delivery not configured"},
}

var otpVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrOTPInvalid, code: response.CodeBadRequest, msg: "verification code incorrect"},
	{target: service.ErrOTPExpired, code: response.CodeBadRequest, msg: "verification code expired"},
	{target: service.ErrOTPAttemptsExceeded, code: response.CodeBadRequest, msg: "too many incorrect attempts, request a new code"},
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, msg: "captcha required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, msg: "captcha incorrect"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, msg: "captcha unavailable"},
}

func respondCaptchaError(c *gin.Context, err error) {
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "captcha verification failed")
}
