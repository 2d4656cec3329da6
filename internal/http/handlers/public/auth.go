package public

import (
	"errors"
	"time"

	"github.com/ghostform/ghostform/internal/constants"
	handlershared "github.com/ghostform/ghostform/internal/http/handlers/shared"
	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

// SignupRequest starts account creation.
type SignupRequest struct {
	Email          string                       `json:"email" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// Signup registers a pending account and emails a verification code.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if h.CaptchaService != nil && h.CaptchaService.Required(constants.CaptchaSceneSignup) {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneSignup, req.CaptchaPayload); err != nil {
			respondCaptchaError(c, err)
			return
		}
	}

	if err := h.AuthService.Signup(req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "email already registered", nil)
		default:
			respondWithMappedError(c, err, otpDeliveryErrorRules, response.CodeInternal, "signup failed")
		}
		return
	}

	response.Success(c, gin.H{"verification_required": true})
}

// VerifySignupRequest confirms a signup code.
type VerifySignupRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifySignup activates a pending account and logs it in.
func (h *Handler) VerifySignup(c *gin.Context) {
	var req VerifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.AuthService.VerifySignup(req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "account already verified", nil)
		default:
			respondWithMappedError(c, err, otpVerifyErrorRules, response.CodeInternal, "verification failed")
		}
		return
	}

	h.issueSession(c, user)
}

// ResendCodeRequest asks for a fresh signup code.
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResendSignupCode re-sends the signup verification code.
func (h *Handler) ResendSignupCode(c *gin.Context) {
	var req ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ResendSignupCode(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "account already verified", nil)
		default:
			respondWithMappedError(c, err, otpDeliveryErrorRules, response.CodeInternal, "could not send code")
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// LoginRequest authenticates a verified account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrUserNotActive):
			respondError(c, response.CodeUnauthorized, "account not activated", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	h.issueSession(c, user)
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email          string                       `json:"email" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// ForgotPassword emails a password-reset code.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if h.CaptchaService != nil && h.CaptchaService.Required(constants.CaptchaSceneForgotPassword) {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneForgotPassword, req.CaptchaPayload); err != nil {
			respondCaptchaError(c, err)
			return
		}
	}

	if err := h.AuthService.ForgotPassword(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		default:
			respondWithMappedError(c, err, otpDeliveryErrorRules, response.CodeInternal, "could not send code")
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword confirms a reset code and replaces the password. Every
// existing session of the account is revoked.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "account not found", nil)
		default:
			respondWithMappedError(c, err, otpVerifyErrorRules, response.CodeInternal, "password reset failed")
		}
		return
	}

	response.Success(c, gin.H{"reset": true})
}

func (h *Handler) issueSession(c *gin.Context, user *models.User) {
	session, err := h.SessionService.Issue(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "could not create session", err)
		return
	}

	ttl := h.SessionService.TTL()
	handlershared.SetSessionCookie(c, h.Config.Session, session.Token, int(ttl/time.Second))
	response.Success(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
		"expires_at": session.ExpiresAt,
	})
}
