package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"nexusfiles/internal/bot"
	"nexusfiles/internal/config"
	"nexusfiles/internal/database"
	"nexusfiles/internal/modules/delivery"
	"nexusfiles/internal/modules/ingest"
	"nexusfiles/internal/repository"
	"nexusfiles/internal/telegram"
)

func main() {
	log := logrus.StandardLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to open registry store")
	}

	fileRepo := repository.NewFileRepository(db)
	if err := fileRepo.Migrate(); err != nil {
		log.WithError(err).Fatal("registry migration failed")
	}

	client := telegram.NewClient(cfg.BotToken)

	ingestSvc := ingest.NewService(fileRepo, cfg.AdminUserID, nil, log)

	cascade := client.CascadeTransports()
	transports := make([]delivery.Transport, 0, len(cascade))
	for _, t := range cascade {
		transports = append(transports, t)
	}
	deliverySvc := delivery.NewService(fileRepo, transports, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("admin_user_id", cfg.AdminUserID).Info("admin identity configured")

	b := bot.New(client, ingestSvc, deliverySvc, cfg.BotUsername, log)
	if err := b.Run(ctx); err != nil {
		log.WithError(err).Fatal("bot failed")
	}
	log.Info("bot shut down")
}
