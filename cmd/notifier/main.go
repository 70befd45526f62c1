// Command notifier consumes order events and notifies vendors and customers.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/config"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/database"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/notifier"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/repositories"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := cfg.NewLogger()

	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL must be set for the notifier")
	}

	var users repositories.UserRepository
	if db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, log); err != nil {
		log.WithError(err).Warn("Database unavailable, notifications will carry no email")
	} else {
		users = repositories.NewGORMUserRepository(db)
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
	}
	defer mqClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting order notifier...")
	n := notifier.New(users, log)
	if err := mqClient.Consume(ctx, rabbitmq.OrderQueue, n.Handle); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Consumer stopped")
		return
	}
	log.Info("Notifier stopped")
}
