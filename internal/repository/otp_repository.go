package repository

import (
	"errors"

	"github.com/ghostform/ghostform/internal/models"

	"gorm.io/gorm"
)

// OTPRepository is the one-time-passcode data access interface.
type OTPRepository interface {
	Create(otp *models.OTP) error
	GetLatest(email, purpose string) (*models.OTP, error)
	DeleteByID(id uint) error
	DeleteByEmailAndPurpose(email, purpose string) error
	DeleteByEmail(email string) error
	IncrementAttempt(id uint) error
}

// GormOTPRepository is the GORM implementation.
type GormOTPRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates an OTP repository.
func NewOTPRepository(db *gorm.DB) *GormOTPRepository {
	return &GormOTPRepository{db: db}
}

// Create inserts a code record.
func (r *GormOTPRepository) Create(otp *models.OTP) error {
	return r.db.Create(otp).Error
}

// GetLatest returns the newest code for (email, purpose).
func (r *GormOTPRepository) GetLatest(email, purpose string) (*models.OTP, error) {
	var record models.OTP
	if err := r.db.Where("email = ? AND purpose = ?", email, purpose).
		Order("sent_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteByID removes one code record.
func (r *GormOTPRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.OTP{}, id).Error
}

// DeleteByEmailAndPurpose removes every code for (email, purpose).
func (r *GormOTPRepository) DeleteByEmailAndPurpose(email, purpose string) error {
	return r.db.Where("email = ? AND purpose = ?", email, purpose).Delete(&models.OTP{}).Error
}

// DeleteByEmail removes every code for an email regardless of purpose.
func (r *GormOTPRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.OTP{}).Error
}

// IncrementAttempt bumps the failed-attempt counter.
func (r *GormOTPRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.OTP{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
