package provider

import (
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/cache"
	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/geodata"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"
	"github.com/yuvasaathi/yuvasaathi-api/internal/repository"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"
	"github.com/yuvasaathi/yuvasaathi-api/internal/token"
)

// Container is the dependency-injection container.
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo         repository.UserRepository
	UserLoginLogRepo repository.UserLoginLogRepository

	// Shared state
	OTPStore   cache.OTPStore
	TokenCodec *token.Codec

	// Services
	EmailService   *service.EmailService
	AccountService *service.AccountService
	OTPService     *service.OTPService
	ResumeService  *service.ResumeService
	ChatService    *service.ChatService
	GeoService     *service.GeoService
}

// NewContainer wires repositories and services.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
}

func (c *Container) initServices() {
	c.OTPStore = cache.NewOTPStore()
	c.TokenCodec = token.NewCodec(
		c.Config.Token.Secret,
		time.Duration(c.Config.Token.ExpireHours)*time.Hour,
	)

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AccountService = service.NewAccountService(c.Config, c.UserRepo, c.UserLoginLogRepo, c.EmailService, c.TokenCodec)
	c.OTPService = service.NewOTPService(c.Config, c.UserRepo, c.UserLoginLogRepo, c.EmailService, c.OTPStore)
	c.ResumeService = service.NewResumeService(c.Config, c.UserRepo)
	c.ChatService = service.NewChatService(&c.Config.Chatbot)

	// A failed dataset load keeps the API up; map endpoints answer 500
	// until the files are fixed.
	dataset, err := geodata.Load(&c.Config.Geodata)
	if err != nil {
		logger.Warnw("provider_load_geodata_failed", "error", err)
		dataset = nil
	}
	c.GeoService = service.NewGeoService(dataset)
}
