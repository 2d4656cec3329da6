package repository

import (
	"time"

	"github.com/ghostform/ghostform/internal/models"

	"gorm.io/gorm"
)

// SubmissionRepository is the submission data access interface.
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	ListByFormID(formID uint) ([]models.Submission, error)
	CountByFormSlugSince(slug string, since time.Time) (int64, error)
	DeleteByFormID(formID uint) error
	DeleteByFormIDs(formIDs []uint) error
}

// GormSubmissionRepository is the GORM implementation.
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a submission repository.
func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create inserts a submission.
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// ListByFormID returns a form's submissions, newest first.
func (r *GormSubmissionRepository) ListByFormID(formID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.Where("form_id = ?", formID).Order("created_at desc, id desc").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// CountByFormSlugSince counts submissions for a slug created at or after since.
// The submit endpoint uses this for its trailing-window throttle.
func (r *GormSubmissionRepository) CountByFormSlugSince(slug string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Submission{}).
		Where("form_slug = ? AND created_at >= ?", slug, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByFormID removes every submission of one form.
func (r *GormSubmissionRepository) DeleteByFormID(formID uint) error {
	return r.db.Where("form_id = ?", formID).Delete(&models.Submission{}).Error
}

// DeleteByFormIDs removes every submission of the given forms.
func (r *GormSubmissionRepository) DeleteByFormIDs(formIDs []uint) error {
	if len(formIDs) == 0 {
		return nil
	}
	return r.db.Where("form_id IN ?", formIDs).Delete(&models.Submission{}).Error
}
