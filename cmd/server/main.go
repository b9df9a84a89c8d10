package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/yuvasaathi/yuvasaathi-api/internal/app"
	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.Token.Secret) {
			stdLog.Fatalf("token secret is weak or still the default, configure a strong random key in production")
		}
	} else if isWeakSecret(cfg.Token.Secret) {
		stdLog.Printf("warning: token secret is weak or still the default, replace it before going to production")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	for _, dir := range []string{cfg.Resume.UploadDir, cfg.Resume.GeneratedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			stdLog.Fatalf("create directory %s failed: %v", dir, err)
		}
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("server exited with error: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "██╗   ██╗██╗   ██╗██╗   ██╗ █████╗     ███████╗ █████╗  █████╗ ████████╗██╗  ██╗██╗" + ansiReset)
	fmt.Println(ansiCyan + "╚██╗ ██╔╝██║   ██║██║   ██║██╔══██╗    ██╔════╝██╔══██╗██╔══██╗╚══██╔══╝██║  ██║██║" + ansiReset)
	fmt.Println(ansiCyan + " ╚████╔╝ ██║   ██║██║   ██║███████║    ███████╗███████║███████║   ██║   ███████║██║" + ansiReset)
	fmt.Println(ansiCyan + "  ╚██╔╝  ██║   ██║╚██╗ ██╔╝██╔══██║    ╚════██║██╔══██║██╔══██║   ██║   ██╔══██║██║" + ansiReset)
	fmt.Println(ansiCyan + "   ██║   ╚██████╔╝ ╚████╔╝ ██║  ██║    ███████║██║  ██║██║  ██║   ██║   ██║  ██║██║" + ansiReset)
	fmt.Println(ansiCyan + "   ╚═╝    ╚═════╝   ╚═══╝  ╚═╝  ╚═╝    ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Yuva Saathi API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
