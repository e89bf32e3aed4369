// Package main implements the entry point for the salon booking API
// server: account management, the service catalog, appointment booking,
// and scheduled notification delivery.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/salonworks/booking-api/internal/config"
	"github.com/salonworks/booking-api/internal/platform/logger"
)

func main() {
	// A missing .env is fine; production configures through real env vars.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"dispatch_enabled", cfg.Dispatch.Enabled)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if app.dispatcher != nil {
		if err := app.dispatcher.Start(); err != nil {
			log.Fatalf("Failed to start notification dispatcher: %v", err)
		}
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
