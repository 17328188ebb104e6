package climate

import (
	"encoding/json"
	"fmt"
	"time"
)

// Power is the on/off state of a room's heating circuit.
type Power string

const (
	PowerOn  Power = "on"
	PowerOff Power = "off"
)

// Mode is the operation mode of a room.
type Mode string

const (
	ModeHeat Mode = "heat"
	ModeCool Mode = "cool"
)

// Target temperature bounds accepted by the hub, in degrees Celsius.
const (
	MinTargetTemperature = 15.0
	MaxTargetTemperature = 35.0
)

// Room is a snapshot of a single hub room. Fields are nil until the hub
// has reported a value for them; they never revert to nil afterwards.
type Room struct {
	ID                  int      `json:"id"`                             // Hub room id (0-4)
	Name                string   `json:"name"`                           // User-friendly name
	Power               *Power   `json:"power,omitempty"`                // Heating circuit on/off
	Mode                *Mode    `json:"mode,omitempty"`                 // heat/cool
	TargetTemperature   *float64 `json:"target_temperature,omitempty"`   // Configured setpoint, Celsius
	MeasuredTemperature *float64 `json:"measured_temperature,omitempty"` // Ambient reading, Celsius
	Humidity            *int     `json:"humidity,omitempty"`             // Relative humidity, percent
}

// Event types published by a Controller.
const (
	EventRoomDiscovered = "room_discovered"
	EventRoomChanged    = "room_changed"
)

// Event represents a room lifecycle or state-change event.
type Event struct {
	Type      string    `json:"type"`           // Event type (room_discovered, room_changed)
	Room      *Room     `json:"room,omitempty"` // Room snapshot at event time
	Timestamp time.Time `json:"timestamp"`      // When the event occurred
}

// State map keys accepted by Controller.SetState.
const (
	StateKeyPower             = "power"
	StateKeyMode              = "mode"
	StateKeyTargetTemperature = "target_temperature"
)

// StateSchema is the JSON Schema describing the settable state of a room.
// Write payloads on the API and MCP surfaces are validated against it.
var StateSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"power": {"type": "string", "enum": ["on", "off"]},
		"mode": {"type": "string", "enum": ["heat", "cool"]},
		"target_temperature": {"type": "number", "minimum": 15, "maximum": 35}
	},
	"additionalProperties": false
}`)

// ParsePower converts a state-map value to a Power.
func ParsePower(v any) (Power, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: power must be a string", ErrValidation)
	}
	switch Power(s) {
	case PowerOn, PowerOff:
		return Power(s), nil
	}
	return "", fmt.Errorf("%w: unknown power state %q", ErrValidation, s)
}

// ParseMode converts a state-map value to a Mode.
func ParseMode(v any) (Mode, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: mode must be a string", ErrValidation)
	}
	switch Mode(s) {
	case ModeHeat, ModeCool:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrValidation, s)
}
