package types

import (
	"time"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// --- Request DTOs ---

// RenameRoomRequest is the request body for PATCH /rooms/:id
type RenameRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Hub       string    `json:"hub"`
	Timestamp time.Time `json:"timestamp"`
}

// HubResponse is returned from GET /hub
type HubResponse struct {
	Configured bool   `json:"configured"`
	Name       string `json:"name,omitempty"`
	Link       string `json:"link,omitempty"`
	Address    string `json:"address,omitempty"`
	Connected  bool   `json:"connected"`
	Rooms      int    `json:"rooms"`
}

// ListRoomsResponse is returned from GET /rooms
type ListRoomsResponse struct {
	Rooms []climate.Room `json:"rooms"`
	Count int            `json:"count"`
}

// RoomResponse is returned from room-level endpoints
type RoomResponse struct {
	Room *climate.Room `json:"room"`
}

// PollResponse is returned from the poll endpoints
type PollResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// DiscoveryResponse is returned from POST /discovery
type DiscoveryResponse struct {
	Status string `json:"status"`
}

// HubInfo describes the hub endpoint the daemon was started against.
// The zero value means no hub is configured.
type HubInfo struct {
	Name    string
	Link    string
	Address string
}
