package mcp

import (
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// --- Health Tool ---

// GetHealthInput is the input for the get_health tool
type GetHealthInput struct{}

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Hub       string `json:"hub" jsonschema:"description=Hub link connection status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Rooms Tool ---

// ListRoomsInput is the input for the list_rooms tool
type ListRoomsInput struct{}

// ListRoomsOutput is the output for the list_rooms tool
type ListRoomsOutput struct {
	Rooms []RoomInfo `json:"rooms" jsonschema:"description=List of discovered rooms"`
	Count int        `json:"count" jsonschema:"description=Total number of rooms"`
}

// RoomInfo represents a room in tool outputs
type RoomInfo struct {
	ID                  int      `json:"id" jsonschema:"description=Hub room id (0-4)"`
	Name                string   `json:"name" jsonschema:"description=User-friendly room name"`
	Power               *string  `json:"power,omitempty" jsonschema:"description=Heating circuit state (on or off)"`
	Mode                *string  `json:"mode,omitempty" jsonschema:"description=Operation mode (heat or cool)"`
	TargetTemperature   *float64 `json:"target_temperature,omitempty" jsonschema:"description=Configured setpoint in degrees Celsius"`
	MeasuredTemperature *float64 `json:"measured_temperature,omitempty" jsonschema:"description=Ambient temperature in degrees Celsius"`
	Humidity            *int     `json:"humidity,omitempty" jsonschema:"description=Relative humidity percent"`
}

// --- Get Room Tool ---

// GetRoomInput is the input for the get_room tool
type GetRoomInput struct {
	ID int `json:"id" jsonschema:"required,description=Hub room id"`
}

// GetRoomOutput is the output for the get_room tool
type GetRoomOutput struct {
	Room RoomInfo `json:"room" jsonschema:"description=Room information"`
}

// --- Rename Room Tool ---

// RenameRoomInput is the input for the rename_room tool
type RenameRoomInput struct {
	ID      int    `json:"id" jsonschema:"required,description=Hub room id"`
	NewName string `json:"new_name" jsonschema:"required,description=New friendly name for the room"`
}

// RenameRoomOutput is the output for the rename_room tool
type RenameRoomOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the rename succeeded"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Set Room State Tool ---

// SetRoomStateInput is the input for the set_room_state tool
type SetRoomStateInput struct {
	ID    int            `json:"id" jsonschema:"required,description=Hub room id"`
	State map[string]any `json:"state" jsonschema:"required,description=State properties to set (validated against the room state schema)"`
}

// SetRoomStateOutput is the output for the set_room_state tool
type SetRoomStateOutput struct {
	RoomID int      `json:"room_id" jsonschema:"description=Hub room id"`
	Room   RoomInfo `json:"room" jsonschema:"description=Room state after the change"`
}

// --- Set Target Temperature Tool ---

// SetTargetTemperatureInput is the input for the set_target_temperature tool
type SetTargetTemperatureInput struct {
	ID      int     `json:"id" jsonschema:"required,description=Hub room id"`
	Celsius float64 `json:"celsius" jsonschema:"required,description=Target temperature in degrees Celsius (15-35)"`
}

// SetTargetTemperatureOutput is the output for the set_target_temperature tool
type SetTargetTemperatureOutput struct {
	Success bool     `json:"success" jsonschema:"description=Whether the setpoint was accepted"`
	Message string   `json:"message" jsonschema:"description=Status message"`
	Room    RoomInfo `json:"room" jsonschema:"description=Room state after the change"`
}

// --- Turn Heating On Tool ---

// TurnHeatingOnInput is the input for the turn_heating_on tool
type TurnHeatingOnInput struct {
	ID int `json:"id" jsonschema:"required,description=Hub room id"`
}

// TurnHeatingOnOutput is the output for the turn_heating_on tool
type TurnHeatingOnOutput struct {
	RoomID int      `json:"room_id" jsonschema:"description=Hub room id"`
	Room   RoomInfo `json:"room" jsonschema:"description=Room state after the change"`
}

// --- Turn Heating Off Tool ---

// TurnHeatingOffInput is the input for the turn_heating_off tool
type TurnHeatingOffInput struct {
	ID int `json:"id" jsonschema:"required,description=Hub room id"`
}

// TurnHeatingOffOutput is the output for the turn_heating_off tool
type TurnHeatingOffOutput struct {
	RoomID int      `json:"room_id" jsonschema:"description=Hub room id"`
	Room   RoomInfo `json:"room" jsonschema:"description=Room state after the change"`
}

// --- Poll Rooms Tool ---

// PollRoomsInput is the input for the poll_rooms tool
type PollRoomsInput struct {
	ID *int `json:"id,omitempty" jsonschema:"description=Hub room id to poll (all rooms when omitted)"`
}

// PollRoomsOutput is the output for the poll_rooms tool
type PollRoomsOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the poll was queued"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Discover Rooms Tool ---

// DiscoverRoomsInput is the input for the discover_rooms tool
type DiscoverRoomsInput struct{}

// DiscoverRoomsOutput is the output for the discover_rooms tool
type DiscoverRoomsOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the probe was sent"`
	Message string `json:"message" jsonschema:"description=Status message"`
	Count   int    `json:"count" jsonschema:"description=Number of rooms known after the probe"`
}

// --- Helper conversions ---

// RoomToInfo converts a climate.Room to RoomInfo
func RoomToInfo(r *climate.Room) RoomInfo {
	info := RoomInfo{
		ID:                  r.ID,
		Name:                r.Name,
		TargetTemperature:   r.TargetTemperature,
		MeasuredTemperature: r.MeasuredTemperature,
		Humidity:            r.Humidity,
	}
	if r.Power != nil {
		p := string(*r.Power)
		info.Power = &p
	}
	if r.Mode != nil {
		m := string(*r.Mode)
		info.Mode = &m
	}
	return info
}
