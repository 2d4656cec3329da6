package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/ghostform/ghostform/internal/config"
	"github.com/ghostform/ghostform/internal/constants"
	"github.com/ghostform/ghostform/internal/logger"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/queue"
	"github.com/ghostform/ghostform/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, email verification, login and account
// lifecycle. New accounts stay pending until their signup code is
// confirmed; only verified accounts can log in or receive sessions.
type AuthService struct {
	cfg            *config.Config
	userRepo       repository.UserRepository
	otpRepo        repository.OTPRepository
	sessionRepo    repository.SessionRepository
	formRepo       repository.FormRepository
	submissionRepo repository.SubmissionRepository
	emailService   *EmailService
	queueClient    *queue.Client
}

// NewAuthService creates an auth service.
func NewAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	sessionRepo repository.SessionRepository,
	formRepo repository.FormRepository,
	submissionRepo repository.SubmissionRepository,
	emailService *EmailService,
	queueClient *queue.Client,
) *AuthService {
	return &AuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		otpRepo:        otpRepo,
		sessionRepo:    sessionRepo,
		formRepo:       formRepo,
		submissionRepo: submissionRepo,
		emailService:   emailService,
		queueClient:    queueClient,
	}
}

// Signup registers a pending account and sends a verification code.
// Re-signing up with an unverified email refreshes the stored password
// and resends the code; a verified email is rejected.
func (s *AuthService) Signup(email, password string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	existing, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	switch {
	case existing == nil:
		user := &models.User{
			Email:        normalized,
			PasswordHash: string(hashedPassword),
			Pending:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(user); err != nil {
			return err
		}
	case existing.Pending:
		existing.PasswordHash = string(hashedPassword)
		existing.UpdatedAt = now
		if err := s.userRepo.Update(existing); err != nil {
			return err
		}
	default:
		return ErrEmailExists
	}

	return s.issueOTP(normalized, constants.OTPPurposeSignup)
}

// VerifySignup confirms a signup code and activates the account. Accounts
// that are already active have no pending registration to confirm and are
// rejected, so this can never be used to log into an existing account.
func (s *AuthService) VerifySignup(email, code string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.IsActive() {
		return nil, ErrEmailExists
	}

	if err := s.verifyOTP(normalized, constants.OTPPurposeSignup, code); err != nil {
		return nil, err
	}

	now := time.Now()
	user.Pending = false
	user.EmailVerifiedAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResendSignupCode sends a fresh signup code to a pending account.
func (s *AuthService) ResendSignupCode(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.IsActive() {
		return ErrEmailExists
	}
	return s.issueOTP(normalized, constants.OTPPurposeSignup)
}

// Login checks credentials against a verified account.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserNotActive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ForgotPassword sends a password-reset code to a verified account.
func (s *AuthService) ForgotPassword(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive() {
		return ErrNotFound
	}
	return s.issueOTP(normalized, constants.OTPPurposePasswordReset)
}

// ResetPassword confirms a reset code, replaces the password and revokes
// every existing session of the account.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.verifyOTP(normalized, constants.OTPPurposePasswordReset, code); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUserID(user.ID)
}

// DeleteAccount removes a user and everything they own: submissions,
// forms, sessions and outstanding codes, in that order, then the user
// row itself.
func (s *AuthService) DeleteAccount(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	forms, err := s.formRepo.ListByUserID(user.ID)
	if err != nil {
		return err
	}
	formIDs := make([]uint, 0, len(forms))
	for _, form := range forms {
		formIDs = append(formIDs, form.ID)
	}
	if err := s.submissionRepo.DeleteByFormIDs(formIDs); err != nil {
		return err
	}
	for _, form := range forms {
		if err := s.formRepo.Delete(form.ID); err != nil {
			return err
		}
	}
	if err := s.sessionRepo.DeleteByUserID(user.ID); err != nil {
		return err
	}
	if err := s.otpRepo.DeleteByEmail(user.Email); err != nil {
		return err
	}
	return s.userRepo.Delete(user.ID)
}

func (s *AuthService) issueOTP(email, purpose string) error {
	otpCfg := s.cfg.Email.OTP
	latest, err := s.otpRepo.GetLatest(email, purpose)
	if err != nil {
		return err
	}
	now := time.Now()
	if latest != nil {
		interval := time.Duration(resolveOTPSendIntervalSeconds(otpCfg)) * time.Second
		if !latest.SentAt.IsZero() && now.Sub(latest.SentAt) < interval {
			return ErrOTPTooFrequent
		}
	}

	code, err := randomNumericCode(resolveOTPLength(otpCfg))
	if err != nil {
		return err
	}

	// Only one live code per (email, purpose).
	if err := s.otpRepo.DeleteByEmailAndPurpose(email, purpose); err != nil {
		return err
	}
	record := &models.OTP{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		SentAt:    now,
		ExpiresAt: now.Add(time.Duration(resolveOTPExpireMinutes(otpCfg)) * time.Minute),
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(record); err != nil {
		return err
	}

	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOTPEmail(queue.OTPEmailPayload{
			Email:   email,
			Code:    code,
			Purpose: purpose,
		})
		if err == nil {
			return nil
		}
		logger.Warnw("otp_email_enqueue_failed",
			"purpose", purpose,
			"error", err,
		)
	}

	if s.emailService == nil {
		return ErrEmailServiceNotConfigured
	}
	return s.emailService.SendOTPEmail(email, code, purpose)
}

func (s *AuthService) verifyOTP(email, purpose, code string) error {
	record, err := s.otpRepo.GetLatest(email, purpose)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrOTPInvalid
	}

	now := time.Now()
	if record.ExpiresAt.Before(now) {
		_ = s.otpRepo.DeleteByID(record.ID)
		return ErrOTPExpired
	}

	maxAttempts := resolveOTPMaxAttempts(s.cfg.Email.OTP)
	if maxAttempts > 0 && record.AttemptCount >= maxAttempts {
		return ErrOTPAttemptsExceeded
	}

	if strings.TrimSpace(record.Code) != strings.TrimSpace(code) {
		_ = s.otpRepo.IncrementAttempt(record.ID)
		return ErrOTPInvalid
	}

	return s.otpRepo.DeleteByID(record.ID)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveOTPExpireMinutes(cfg config.OTPConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 10
	}
	return cfg.ExpireMinutes
}

func resolveOTPSendIntervalSeconds(cfg config.OTPConfig) int {
	if cfg.SendIntervalSeconds <= 0 {
		return 60
	}
	return cfg.SendIntervalSeconds
}

func resolveOTPMaxAttempts(cfg config.OTPConfig) int {
	if cfg.MaxAttempts <= 0 {
		return 5
	}
	return cfg.MaxAttempts
}

func resolveOTPLength(cfg config.OTPConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
