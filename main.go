package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/config"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/database"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/server"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/storage"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := cfg.NewLogger()

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Info("RABBITMQ_URL not set, order events are disabled")
	}

	images, err := storage.NewImageStore(cfg.UploadDir, cfg.UploadMaxBytes)
	if err != nil {
		log.WithError(err).Fatal("Failed to prepare upload directory")
	}

	srv := server.New(server.Deps{
		DB:        db,
		Logger:    log,
		JWTSecret: cfg.JWTSecret,
		Publisher: publisher,
		Images:    images,
		AccessLog: true,
	})

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := srv.Categories.EnsureDefaults(seedCtx, database.DefaultCategories); err != nil {
		log.WithError(err).Warn("Failed to seed default categories")
	}
	cancel()

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.AppPort).Info("Starting server")
		if err := srv.App.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server gracefully stopped")
}
