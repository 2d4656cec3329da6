package service

import (
	"context"
	"time"

	"github.com/ghostform/ghostform/internal/constants"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/repository"
)

// SubmissionResult is the outcome of an accepted submission. The handler
// uses the settings to pick the response shape (redirect, HTML page or
// JSON).
type SubmissionResult struct {
	Submission     *models.Submission
	SuccessMessage string
	RedirectURL    string
}

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Errors map[string]string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error()
}

// Is lets errors.Is match the sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// SubmissionService accepts public submissions and lists stored ones.
type SubmissionService struct {
	formService    *FormService
	submissionRepo repository.SubmissionRepository
}

// NewSubmissionService creates a submission service.
func NewSubmissionService(formService *FormService, submissionRepo repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{formService: formService, submissionRepo: submissionRepo}
}

// Submit runs the public intake pipeline for one form: resolve the slug,
// refuse disabled forms, apply the per-form rate limit over the trailing
// hour, validate every field, then persist. Validation failures come back
// as a *ValidationError with messages keyed by field ID.
func (s *SubmissionService) Submit(ctx context.Context, slug string, data models.JSON) (*SubmissionResult, error) {
	form, err := s.formService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !form.Settings.Enabled {
		return nil, ErrFormDisabled
	}

	if form.Settings.RateLimit > 0 {
		windowStart := time.Now().Add(-time.Duration(constants.SubmissionRateWindowMinutes) * time.Minute)
		recent, err := s.submissionRepo.CountByFormSlugSince(form.Slug, windowStart)
		if err != nil {
			return nil, err
		}
		if recent >= int64(form.Settings.RateLimit) {
			return nil, ErrRateLimited
		}
	}

	if data == nil {
		data = models.JSON{}
	}
	if fieldErrors := ValidateSubmission(form.Fields, data); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	submission := &models.Submission{
		FormID:    form.ID,
		FormSlug:  form.Slug,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, err
	}

	message := form.Settings.SuccessMessage
	if message == "" {
		message = constants.DefaultSuccessMessage
	}
	return &SubmissionResult{
		Submission:     submission,
		SuccessMessage: message,
		RedirectURL:    form.Settings.RedirectURL,
	}, nil
}

// ListForForm returns a form's submissions for its owner, newest first.
func (s *SubmissionService) ListForForm(userID, formID uint) ([]models.Submission, error) {
	form, err := s.formService.Get(userID, formID)
	if err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByFormID(form.ID)
}

// ListForSlug returns submissions for a form addressed by slug, enforcing
// ownership.
func (s *SubmissionService) ListForSlug(userID uint, slug string) ([]models.Submission, error) {
	form, err := s.formService.formRepo.GetBySlug(normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if form.UserID != userID {
		return nil, ErrForbidden
	}
	return s.submissionRepo.ListByFormID(form.ID)
}
