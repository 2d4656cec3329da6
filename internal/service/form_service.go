package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ghostform/ghostform/internal/cache"
	"github.com/ghostform/ghostform/internal/constants"
	"github.com/ghostform/ghostform/internal/logger"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/repository"
)

const formCacheTTL = 5 * time.Minute

const defaultFormName = "Untitled Form"

// FormInput is the payload for creating or updating a form.
type FormInput struct {
	Name     string            `json:"name"`
	Slug     string            `json:"slug"`
	Fields   models.FieldList  `json:"fields"`
	Settings FormSettingsInput `json:"settings"`
}

// FormSettingsInput is the settings block as submitted. Enabled is a
// pointer so that an omitted value can default to true; only an explicit
// false disables the form.
type FormSettingsInput struct {
	SuccessMessage string `json:"successMessage"`
	RedirectURL    string `json:"redirectUrl"`
	RateLimit      int    `json:"rateLimit"`
	Enabled        *bool  `json:"enabled"`
}

// FormService manages form schemas and ownership.
type FormService struct {
	formRepo       repository.FormRepository
	submissionRepo repository.SubmissionRepository
}

// NewFormService creates a form service.
func NewFormService(formRepo repository.FormRepository, submissionRepo repository.SubmissionRepository) *FormService {
	return &FormService{formRepo: formRepo, submissionRepo: submissionRepo}
}

// Create registers a new form for the owner. A missing slug is derived
// from the name; slugs are globally unique. A blank name gets a default
// display name and a timestamped slug.
func (s *FormService) Create(userID uint, input FormInput) (*models.Form, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateFields(input.Fields); err != nil {
		return nil, err
	}

	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = deriveSlug(name)
	}
	if name == "" {
		name = defaultFormName
	}
	existing, err := s.formRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugConflict
	}

	now := time.Now()
	form := &models.Form{
		UserID:    userID,
		Name:      name,
		Slug:      slug,
		Fields:    normalizeFields(input.Fields),
		Settings:  normalizeSettings(input.Settings),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.formRepo.Create(form); err != nil {
		return nil, err
	}
	return form, nil
}

// List returns the owner's forms, newest first.
func (s *FormService) List(userID uint) ([]models.Form, error) {
	return s.formRepo.ListByUserID(userID)
}

// Get returns one form, enforcing ownership.
func (s *FormService) Get(userID, formID uint) (*models.Form, error) {
	return s.getOwned(userID, formID)
}

// GetBySlug returns the public view of a form by its slug, consulting the
// cache first. Only callers on the public path should use this; it does
// not check ownership.
func (s *FormService) GetBySlug(ctx context.Context, slug string) (*models.Form, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, ErrFormNotFound
	}

	var cached models.Form
	if hit, err := cache.GetJSON(ctx, formCacheKey(slug), &cached); err != nil {
		logger.Warnw("form_cache_read_failed", "slug", slug, "error", err)
	} else if hit {
		return &cached, nil
	}

	form, err := s.formRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if err := cache.SetJSON(ctx, formCacheKey(slug), form, formCacheTTL); err != nil {
		logger.Warnw("form_cache_write_failed", "slug", slug, "error", err)
	}
	return form, nil
}

// Update replaces a form's name, fields and settings. The slug can change
// too; the old slug stops resolving.
func (s *FormService) Update(ctx context.Context, userID, formID uint, input FormInput) (*models.Form, error) {
	form, err := s.getOwned(userID, formID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultFormName
	}
	if err := validateFields(input.Fields); err != nil {
		return nil, err
	}

	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = form.Slug
	}
	if slug != form.Slug {
		existing, err := s.formRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSlugConflict
		}
	}

	oldSlug := form.Slug
	form.Name = name
	form.Slug = slug
	form.Fields = normalizeFields(input.Fields)
	form.Settings = normalizeSettings(input.Settings)
	form.UpdatedAt = time.Now()
	if err := s.formRepo.Update(form); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, oldSlug)
	if slug != oldSlug {
		s.invalidateCache(ctx, slug)
	}
	return form, nil
}

// Delete removes a form and all of its submissions.
func (s *FormService) Delete(ctx context.Context, userID, formID uint) error {
	form, err := s.getOwned(userID, formID)
	if err != nil {
		return err
	}
	if err := s.submissionRepo.DeleteByFormID(form.ID); err != nil {
		return err
	}
	if err := s.formRepo.Delete(form.ID); err != nil {
		return err
	}
	s.invalidateCache(ctx, form.Slug)
	return nil
}

// getOwned fetches a form and verifies the caller owns it. Missing forms
// and foreign forms are distinct failures.
func (s *FormService) getOwned(userID, formID uint) (*models.Form, error) {
	form, err := s.formRepo.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if form.UserID != userID {
		return nil, ErrForbidden
	}
	return form, nil
}

func (s *FormService) invalidateCache(ctx context.Context, slug string) {
	if err := cache.Del(ctx, formCacheKey(slug)); err != nil {
		logger.Warnw("form_cache_invalidate_failed", "slug", slug, "error", err)
	}
}

func formCacheKey(slug string) string {
	return "form:slug:" + slug
}

// deriveSlug builds a slug from a form name: lowercase with whitespace
// runs collapsed to hyphens. Names with no usable characters fall back to
// a timestamped slug.
func deriveSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		return fmt.Sprintf("form-%d", time.Now().UnixMilli())
	}
	return slug
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func normalizeFields(fields models.FieldList) models.FieldList {
	if fields == nil {
		return models.FieldList{}
	}
	return fields
}

func normalizeSettings(input FormSettingsInput) models.FormSettings {
	settings := models.FormSettings{
		SuccessMessage: strings.TrimSpace(input.SuccessMessage),
		RedirectURL:    strings.TrimSpace(input.RedirectURL),
		RateLimit:      input.RateLimit,
		Enabled:        input.Enabled == nil || *input.Enabled,
	}
	if settings.RateLimit < 0 {
		settings.RateLimit = 0
	}
	return settings
}

// validateFields checks a field schema: every field needs a unique ID and
// a known type, and choice fields need at least one option.
func validateFields(fields models.FieldList) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return ErrFormInvalid
		}
		if _, dup := seen[id]; dup {
			return ErrFormInvalid
		}
		seen[id] = struct{}{}

		switch field.Type {
		case constants.FieldTypeText, constants.FieldTypeEmail, constants.FieldTypeNumber,
			constants.FieldTypeTextarea, constants.FieldTypeHidden:
		case constants.FieldTypeSelect, constants.FieldTypeCheckbox, constants.FieldTypeRadio:
			if len(field.Options) == 0 {
				return ErrFormInvalid
			}
		default:
			return ErrFormInvalid
		}
	}
	return nil
}
