package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate/schema"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/db"
	bridgemcp "github.com/diegogd/orkli-termowifi-hass-integration/pkg/mcp"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/termowifi"
)

func main() {
	// Logging must go to stderr — stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/termowifi-bridge/termowifi.db)")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Load configuration; the hub endpoint comes from the stored
	// config (set it up by running the API daemon once with -hub-host)
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var controller climate.Controller

	if cfg.Hub == nil {
		log.Warn().Msg("No hub configured, using null controller")
		controller = climate.NewNullController()
	} else {
		var dialer termowifi.Dialer
		if cfg.Hub.Link == db.LinkSerial {
			dialer = &termowifi.SerialDialer{Device: cfg.Hub.SerialDevice, BaudRate: cfg.Hub.BaudRate}
		} else {
			dialer = &termowifi.TCPDialer{Host: cfg.Hub.Host, Port: cfg.Hub.Port}
		}

		connector := termowifi.NewConnector(dialer)
		if err := connector.Initialize(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to start hub connector")
		}
		defer connector.Close()

		controller = connector

		log.Info().
			Str("link", cfg.Hub.Link).
			Str("address", dialer.Address()).
			Msg("Hub connector started")
	}

	validator := schema.NewValidator()

	// Create and start MCP server
	mcpServer := bridgemcp.NewServer(controller, validator)

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
