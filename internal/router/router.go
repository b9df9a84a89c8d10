package router

import (
	"fmt"
	"strings"

	"github.com/yuvasaathi/yuvasaathi-api/internal/cache"
	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/constants"
	publichandlers "github.com/yuvasaathi/yuvasaathi-api/internal/http/handlers/public"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts",
	}
	otpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many OTP requests",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded resumes are served statically.
	r.Static("/uploads", cfg.Resume.UploadDir)

	// The verification link lands outside /api so the mailed URL stays short.
	r.GET("/verify-email/:token", handler.VerifyEmail)

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.POST("/generate-otp", RateLimitMiddleware(redisClient, otpRule, KeyByIPAndJSONField("email")), handler.GenerateOTP)
		api.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.LoginWithOTP)
		api.POST("/login-password", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.LoginWithPassword)
		api.GET("/login-history/:user_id", handler.LoginHistory)

		api.POST("/upload_resume/:user_id", handler.UploadResume)
		api.POST("/generate_resume/:user_id", handler.GenerateResume)
		api.GET("/download_resume/:user_id", handler.DownloadResume)

		api.POST("/chat", handler.Chat)

		api.GET("/bihar-map-data", handler.BiharMapData)
		api.GET("/district-data/:district_name", handler.DistrictData)
		api.GET("/mandal-data/:mandal_name", handler.MandalData)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
