package main

import (
	"errors"
	"log"
	"time"

	"github.com/ghostform/ghostform/internal/config"
	"github.com/ghostform/ghostform/internal/logger"
	"github.com/ghostform/ghostform/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo account plus a contact form so a fresh install has
// something to click on. Safe to run repeatedly.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	user, err := seedDemoUser(stdLog)
	if err != nil {
		stdLog.Fatalf("Failed to seed demo user: %v", err)
	}
	if err := seedContactForm(stdLog, user.ID); err != nil {
		stdLog.Fatalf("Failed to seed contact form: %v", err)
	}
	stdLog.Printf("Seed complete")
}

func seedDemoUser(stdLog *log.Logger) (*models.User, error) {
	var existing models.User
	err := models.DB.Where("email = ?", "demo@ghostform.dev").First(&existing).Error
	if err == nil {
		stdLog.Printf("Demo user already exists, skipping")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo-Pass-123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := models.User{
		Email:           "demo@ghostform.dev",
		PasswordHash:    string(hash),
		Pending:         false,
		EmailVerifiedAt: &now,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	stdLog.Printf("Created demo user %s (password: Demo-Pass-123)", user.Email)
	return &user, nil
}

func seedContactForm(stdLog *log.Logger, userID uint) error {
	var count int64
	if err := models.DB.Model(&models.Form{}).Where("slug = ?", "demo-contact").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		stdLog.Printf("Demo contact form already exists, skipping")
		return nil
	}

	emailRule := true
	maxLen := 2000
	form := models.Form{
		UserID: userID,
		Name:   "Contact us",
		Slug:   "demo-contact",
		Fields: models.FieldList{
			{ID: "name", Type: "text", Label: "Name", Required: true},
			{ID: "email", Type: "email", Label: "Email", Required: true, Validation: &models.FieldValidation{Email: &emailRule}},
			{ID: "message", Type: "textarea", Label: "Message", Required: true, Validation: &models.FieldValidation{MaxLength: &maxLen}},
		},
		Settings: models.FormSettings{
			SuccessMessage: "Thanks for reaching out, we will reply soon.",
			RateLimit:      30,
			Enabled:        true,
		},
	}
	if err := models.DB.Create(&form).Error; err != nil {
		return err
	}
	stdLog.Printf("Created demo contact form /%s", form.Slug)
	return nil
}
