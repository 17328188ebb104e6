package api

import (
	"fmt"
	"os"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog/log"
)

const (
	announceService = "_termowifi-bridge._tcp"
	announceDomain  = "local."
)

// Announcer advertises the API over mDNS so clients on the LAN can
// find the bridge without configuration.
type Announcer struct {
	server *zeroconf.Server
}

// Announce registers the API endpoint as an mDNS service on all
// interfaces. Extra TXT records can carry link metadata.
func Announce(port int, txt ...string) (*Announcer, error) {
	instance, err := os.Hostname()
	if err != nil || instance == "" {
		instance = "termowifi-bridge"
	}

	records := append([]string{"path=/api/v1"}, txt...)

	server, err := zeroconf.Register(instance, announceService, announceDomain, port, records, nil)
	if err != nil {
		return nil, fmt.Errorf("mdns register: %w", err)
	}

	log.Info().
		Str("service", announceService).
		Str("instance", instance).
		Int("port", port).
		Msg("Announcing API over mDNS")

	return &Announcer{server: server}, nil
}

// Shutdown withdraws the mDNS announcement
func (a *Announcer) Shutdown() {
	if a.server != nil {
		a.server.Shutdown()
	}
}
