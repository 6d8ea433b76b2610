package main

//go:generate swag init

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/satheeshds/invoicer/cmd"
	"github.com/satheeshds/invoicer/config"
	_ "github.com/satheeshds/invoicer/docs"
	"github.com/satheeshds/invoicer/logger"
)

// @title           Invoicer API
// @version         1.0.0
// @description     Invoice generation and lifecycle: settings, clients, numbered invoices with VAT and discount totals, status transitions, dashboards and CSV export.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// Defaults until the configuration is known
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.WithComponent("main")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		l.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		l.Fatal().Err(err).Msg("failed to initialize logger")
	}

	cmd.Execute(cfg)
}
