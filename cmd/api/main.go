package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "descarga_masiva/docs"
	"descarga_masiva/internal/adapter/http/routes"
	"descarga_masiva/internal/infrastructure/config"
	"descarga_masiva/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Descarga Masiva API
// @version         1.0
// @description     CFDI bulk download from the SAT web service, backed by DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	boot := zap.Must(zap.NewProduction()).Sugar()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatalf("[config][main] invalid configuration err=%v", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		boot.Fatalf("[logger][main] invalid LOG_LEVEL=%q err=%v", cfg.LogLevel, err)
	}
	logger.L = log

	if err := run(cfg, log); err != nil {
		log.Errorf("[app][main] stopped err=%v", err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("[app][main] starting port=%s storage=%s gateway_mock=%t", cfg.Port, cfg.Storage.Backend, cfg.Gateway.Mock)
	return routes.Run(ctx, cfg, log)
}
