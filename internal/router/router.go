package router

import (
	"fmt"
	"strings"

	"github.com/ghostform/ghostform/internal/cache"
	"github.com/ghostform/ghostform/internal/config"
	"github.com/ghostform/ghostform/internal/constants"
	dashboardhandlers "github.com/ghostform/ghostform/internal/http/handlers/dashboard"
	publichandlers "github.com/ghostform/ghostform/internal/http/handlers/public"
	"github.com/ghostform/ghostform/internal/logger"
	"github.com/ghostform/ghostform/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP engine and mounts every route.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	dashboardHandler := dashboardhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	authRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:auth", redisPrefix),
		WindowSeconds: cfg.Security.AuthRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.AuthRateLimit.MaxAttempts,
		Message:       "too many attempts, please try again later",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.Signup)
			auth.POST("/verify-otp", publicHandler.VerifySignup)
			auth.POST("/resend-code", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.ResendSignupCode)
			auth.POST("/login", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, authRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		api.GET("/public/captcha/image", publicHandler.GetImageCaptcha)

		// Public form surface.
		api.GET("/forms/:slug", publicHandler.GetFormBySlug)
		api.POST("/submit/:slug", publicHandler.Submit)
		api.GET("/submit/:slug", publicHandler.SubmitRedirect)

		// Authenticated dashboard.
		user := api.Group("")
		user.Use(SessionAuthMiddleware(c.SessionService, cfg.Session))
		{
			user.GET("/auth/me", dashboardHandler.Me)
			user.POST("/auth/logout", dashboardHandler.Logout)
			user.DELETE("/auth/delete-account", dashboardHandler.DeleteAccount)

			user.GET("/forms", dashboardHandler.ListForms)
			user.POST("/forms", dashboardHandler.CreateForm)
			user.GET("/forms/by-id/:id", dashboardHandler.GetForm)
			user.PUT("/forms/by-id/:id", dashboardHandler.UpdateForm)
			user.DELETE("/forms/by-id/:id", dashboardHandler.DeleteForm)
			user.GET("/forms/by-id/:id/submissions", dashboardHandler.ListFormSubmissions)

			user.GET("/submissions/:slug", dashboardHandler.ListSubmissions)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
