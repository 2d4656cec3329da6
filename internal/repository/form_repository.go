package repository

import (
	"errors"

	"github.com/ghostform/ghostform/internal/models"

	"gorm.io/gorm"
)

// FormRepository is the form data access interface.
type FormRepository interface {
	Create(form *models.Form) error
	GetByID(id uint) (*models.Form, error)
	GetBySlug(slug string) (*models.Form, error)
	ListByUserID(userID uint) ([]models.Form, error)
	Update(form *models.Form) error
	Delete(id uint) error
}

// GormFormRepository is the GORM implementation.
type GormFormRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a form repository.
func NewFormRepository(db *gorm.DB) *GormFormRepository {
	return &GormFormRepository{db: db}
}

// Create inserts a form.
func (r *GormFormRepository) Create(form *models.Form) error {
	return r.db.Create(form).Error
}

// GetByID looks a form up by ID.
func (r *GormFormRepository) GetByID(id uint) (*models.Form, error) {
	var form models.Form
	if err := r.db.First(&form, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

// GetBySlug looks a form up by its public slug.
func (r *GormFormRepository) GetBySlug(slug string) (*models.Form, error) {
	var form models.Form
	if err := r.db.Where("slug = ?", slug).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

// ListByUserID returns the forms of one owner, newest first.
func (r *GormFormRepository) ListByUserID(userID uint) ([]models.Form, error) {
	var forms []models.Form
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

// Update saves a form.
func (r *GormFormRepository) Update(form *models.Form) error {
	return r.db.Save(form).Error
}

// Delete removes a form row permanently.
func (r *GormFormRepository) Delete(id uint) error {
	return r.db.Delete(&models.Form{}, id).Error
}
