package climate

import "context"

// Controller defines the interface for driving a multi-room thermostat hub.
// This abstraction keeps the API and MCP surfaces independent of the wire
// protocol; the production implementation lives in pkg/termowifi.
type Controller interface {
	// Initialize ensures the hub link is being supervised and sends the
	// room discovery probe. Safe to call repeatedly; each call re-probes.
	Initialize(ctx context.Context) error

	// ListRooms returns snapshots of all discovered rooms
	ListRooms(ctx context.Context) ([]Room, error)

	// GetRoom returns a snapshot of a single room by id
	GetRoom(ctx context.Context, id int) (*Room, error)

	// RenameRoom changes a room's friendly name
	RenameRoom(ctx context.Context, id int, name string) error

	// PollRoom requests a fresh status report for one room
	PollRoom(ctx context.Context, id int) error

	// PollAll requests fresh status reports for every known room,
	// one room at a time
	PollAll(ctx context.Context) error

	// SetPower switches a room's heating circuit on or off
	SetPower(ctx context.Context, id int, on bool) error

	// SetMode switches a room between heat and cool operation
	SetMode(ctx context.Context, id int, mode Mode) error

	// SetTargetTemperature sets a room's setpoint in degrees Celsius
	SetTargetTemperature(ctx context.Context, id int, celsius float64) error

	// SetState applies a generic state map (power/mode/target_temperature)
	// and returns the room snapshot after the commands were issued
	SetState(ctx context.Context, id int, state map[string]any) (*Room, error)

	// IsConnected reports whether the hub link is currently up
	IsConnected() bool

	// Close shuts the controller down. Safe to call multiple times,
	// including before the link ever connected.
	Close()
}

// EventSubscriber defines the interface for subscribing to room events
type EventSubscriber interface {
	// Subscribe returns a channel that receives room events
	Subscribe() chan Event

	// Unsubscribe removes a subscription
	Unsubscribe(ch chan Event)
}
