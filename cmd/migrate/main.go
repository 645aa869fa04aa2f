// Command migrate runs goose commands against DATABASE_URL.
//
//	migrate [up|down|status|version]
package main

import (
	"context"
	"os"

	"catalog_service/config"
	"catalog_service/migrations"
	"catalog_service/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg := config.LoadConfig(logger)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, db.Options{
		URL: cfg.DatabaseURL,
		Retry: db.RetryPolicy{
			MaxRetries: cfg.DBRetryMaxAttempts,
			BaseDelay:  cfg.DBRetryBaseDelay,
			MaxDelay:   cfg.DBRetryMaxDelay,
		},
	}, logger)
	if err != nil {
		if database != nil {
			database.Close()
		}
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := migrations.Run(ctx, database, command, logger); err != nil {
		logger.Errorf("%v", err)
		database.Close()
		os.Exit(1)
	}
}
