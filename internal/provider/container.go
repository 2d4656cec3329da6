package provider

import (
	"github.com/ghostform/ghostform/internal/cache"
	"github.com/ghostform/ghostform/internal/config"
	"github.com/ghostform/ghostform/internal/logger"
	"github.com/ghostform/ghostform/internal/models"
	"github.com/ghostform/ghostform/internal/queue"
	"github.com/ghostform/ghostform/internal/repository"
	"github.com/ghostform/ghostform/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	SessionRepo    repository.SessionRepository
	OTPRepo        repository.OTPRepository
	FormRepo       repository.FormRepository
	SubmissionRepo repository.SubmissionRepository

	// Services
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
	AuthService       *service.AuthService
	SessionService    *service.SessionService
	FormService       *service.FormService
	SubmissionService *service.SubmissionService
}

// NewContainer builds the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.SessionRepo = repository.NewSessionRepository(db)
	c.OTPRepo = repository.NewOTPRepository(db)
	c.FormRepo = repository.NewFormRepository(db)
	c.SubmissionRepo = repository.NewSubmissionRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.SessionService = service.NewSessionService(c.SessionRepo, c.UserRepo, &c.Config.Session)
	c.AuthService = service.NewAuthService(
		c.Config,
		c.UserRepo,
		c.OTPRepo,
		c.SessionRepo,
		c.FormRepo,
		c.SubmissionRepo,
		c.EmailService,
		c.QueueClient,
	)
	c.FormService = service.NewFormService(c.FormRepo, c.SubmissionRepo)
	c.SubmissionService = service.NewSubmissionService(c.FormService, c.SubmissionRepo)
}
