package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate/schema"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/db"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/termowifi"

	_ "github.com/diegogd/orkli-termowifi-hass-integration/docs"
)

// @title           Termowifi Bridge API
// @version         1.0
// @description     REST API for a multi-room Termowifi heating hub

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/termowifi-bridge/termowifi.db)")
	addr := flag.String("addr", "", "API listen address (overrides the stored config)")
	hubHost := flag.String("hub-host", "", "Hub TCP host (persisted for the next run)")
	hubPort := flag.Int("hub-port", 0, "Hub TCP port (default 12345)")
	hubSerial := flag.String("hub-serial", "", "Hub serial device for bench installs (takes precedence over TCP)")
	baudRate := flag.Int("baud", 0, "Serial baud rate (default 9600)")
	pollInterval := flag.Int("poll-interval", 0, "Room poll interval in seconds (default 60)")
	noAnnounce := flag.Bool("no-announce", false, "Disable mDNS announcement of the API")
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

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("timezone", cfg.Timezone()).
		Str("api_address", cfg.APIAddress()).
		Msg("Configuration loaded")

	// Hub flags override and persist the stored config, so the next
	// run needs no flags.
	hub := resolveHub(ctx, database, cfg, *hubHost, *hubPort, *hubSerial, *baudRate, *pollInterval)

	var controller climate.Controller
	var eventSubscriber climate.EventSubscriber
	var hubInfo types.HubInfo
	var connector *termowifi.Connector
	var poller *climate.Poller
	var stopNameSync func()

	if hub == nil {
		log.Warn().Msg("No hub configured, using null controller (set -hub-host or -hub-serial)")
		controller = climate.NewNullController()
		eventSubscriber = climate.NewNullEventSubscriber()
	} else {
		dialer := hubDialer(hub)
		connector = termowifi.NewConnector(dialer)
		controller = connector
		eventSubscriber = connector
		hubInfo = types.HubInfo{
			Name:    hub.Name,
			Link:    hub.Link,
			Address: dialer.Address(),
		}

		// Subscribe before the discovery probe so no room is missed
		stopNameSync = syncRoomNames(ctx, database, hub.ID, connector)

		log.Info().
			Str("link", hub.Link).
			Str("address", dialer.Address()).
			Msg("Connecting to hub")

		if err := connector.Initialize(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to start hub connector")
		}

		poller = climate.NewPoller(controller, hub.PollInterval())
		poller.Start()
	}

	validator := schema.NewValidator()

	// Create API router
	router := api.NewRouter(controller, eventSubscriber, validator, hubInfo)

	listenAddr := cfg.APIAddress()
	if *addr != "" {
		listenAddr = *addr
	}

	// Announce the API over mDNS
	var announcer *api.Announcer
	if !*noAnnounce {
		if port := listenPort(listenAddr); port > 0 {
			announcer, err = api.Announce(port, "link="+hubInfo.Link)
			if err != nil {
				log.Warn().Err(err).Msg("mDNS announcement failed")
			}
		}
	}

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		if announcer != nil {
			announcer.Shutdown()
		}
		if poller != nil {
			poller.Stop()
		}
		if stopNameSync != nil {
			stopNameSync()
		}
		if connector != nil {
			connector.Close()
		}
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	log.Info().Str("address", listenAddr).Msg("Starting API server")

	if err := router.Run(listenAddr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// resolveHub applies hub flags over the stored config and persists any
// change. Returns nil when no hub is configured at all.
func resolveHub(ctx context.Context, database *db.DB, cfg *db.Config, host string, port int, serialDevice string, baud, pollSeconds int) *db.Hub {
	hub := cfg.Hub
	if hub == nil && host == "" && serialDevice == "" {
		return nil
	}

	changed := false
	if hub == nil {
		hub = &db.Hub{ProfileID: cfg.Profile.ID}
		changed = true
	}
	if serialDevice != "" && (hub.Link != db.LinkSerial || hub.SerialDevice != serialDevice) {
		hub.Link = db.LinkSerial
		hub.SerialDevice = serialDevice
		changed = true
	} else if host != "" && (hub.Link != db.LinkTCP || hub.Host != host) {
		hub.Link = db.LinkTCP
		hub.Host = host
		changed = true
	}
	if port != 0 && hub.Port != port {
		hub.Port = port
		changed = true
	}
	if baud != 0 && hub.BaudRate != baud {
		hub.BaudRate = baud
		changed = true
	}
	if pollSeconds != 0 && hub.PollIntervalSeconds != pollSeconds {
		hub.PollIntervalSeconds = pollSeconds
		changed = true
	}

	if changed {
		if err := database.Hubs().Upsert(ctx, hub); err != nil {
			log.Error().Err(err).Msg("Failed to persist hub config")
		} else {
			log.Info().Str("link", hub.Link).Msg("Hub config saved")
		}
	}
	return hub
}

// hubDialer builds the link dialer for the configured hub.
func hubDialer(hub *db.Hub) termowifi.Dialer {
	if hub.Link == db.LinkSerial {
		return &termowifi.SerialDialer{Device: hub.SerialDevice, BaudRate: hub.BaudRate}
	}
	return &termowifi.TCPDialer{Host: hub.Host, Port: hub.Port}
}

// syncRoomNames restores persisted room names when rooms are discovered
// and stores renames as they happen. Returns a function that stops the
// sync goroutine.
func syncRoomNames(ctx context.Context, database *db.DB, hubID int64, connector *termowifi.Connector) func() {
	store := database.RoomNames()
	events := connector.Subscribe()

	// Last name seen per room, to tell real renames apart from the
	// room_changed events our own restore triggers.
	known := make(map[int]string)

	go func() {
		for evt := range events {
			if evt.Room == nil {
				continue
			}

			switch evt.Type {
			case climate.EventRoomDiscovered:
				saved, err := store.Get(ctx, hubID, evt.Room.ID)
				if err != nil {
					if !errors.Is(err, db.ErrRoomNameNotFound) {
						log.Error().Err(err).Int("room", evt.Room.ID).Msg("Failed to load room name")
					}
					known[evt.Room.ID] = evt.Room.Name
					continue
				}
				known[evt.Room.ID] = saved.Name
				if saved.Name != evt.Room.Name {
					if err := connector.RenameRoom(ctx, evt.Room.ID, saved.Name); err != nil {
						log.Error().Err(err).Int("room", evt.Room.ID).Msg("Failed to restore room name")
					}
				}

			case climate.EventRoomChanged:
				if known[evt.Room.ID] == evt.Room.Name {
					continue
				}
				known[evt.Room.ID] = evt.Room.Name
				err := store.Upsert(ctx, &db.RoomName{
					HubID:  hubID,
					RoomID: evt.Room.ID,
					Name:   evt.Room.Name,
				})
				if err != nil {
					log.Error().Err(err).Int("room", evt.Room.ID).Msg("Failed to persist room name")
				}
			}
		}
	}()

	return func() { connector.Unsubscribe(events) }
}

// listenPort extracts the numeric port from a listen address.
func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}
