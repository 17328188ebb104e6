package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the bridge and hub link connectivity"),
		),
		s.handleGetHealth,
	)

	// List rooms
	s.mcpServer.AddTool(
		mcp.NewTool("list_rooms",
			mcp.WithDescription("List all rooms discovered on the heating hub with their last known state"),
		),
		s.handleListRooms,
	)

	// Get room
	s.mcpServer.AddTool(
		mcp.NewTool("get_room",
			mcp.WithDescription("Get detailed information about a specific room by its hub room id"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Hub room id (0-4)"),
			),
		),
		s.handleGetRoom,
	)

	// Rename room
	s.mcpServer.AddTool(
		mcp.NewTool("rename_room",
			mcp.WithDescription("Change a room's friendly name"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Hub room id (0-4)"),
			),
			mcp.WithString("new_name",
				mcp.Required(),
				mcp.Description("New friendly name for the room"),
			),
		),
		s.handleRenameRoom,
	)

	// Set room state
	s.mcpServer.AddTool(
		mcp.NewTool("set_room_state",
			mcp.WithDescription("Set the state of a room. Pass power, mode and/or target_temperature validated against the room state schema."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Hub room id (0-4)"),
			),
			mcp.WithObject("state",
				mcp.Required(),
				mcp.Description("State properties to set (e.g. {\"power\": \"on\", \"target_temperature\": 21.5})"),
			),
		),
		s.handleSetRoomState,
	)

	// Set target temperature (convenience)
	s.mcpServer.AddTool(
		mcp.NewTool("set_target_temperature",
			mcp.WithDescription("Set a room's target temperature in degrees Celsius"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Hub room id (0-4)"),
			),
			mcp.WithNumber("celsius",
				mcp.Required(),
				mcp.Description("Target temperature in degrees Celsius (15-35, half-degree steps)"),
			),
		),
		s.handleSetTargetTemperature,
	)

	// Turn heating on (convenience)
	s.mcpServer.AddTool(
		mcp.NewTool("turn_heating_on",
			mcp.WithDescription("Turn on a room's heating circuit"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Hub room id (0-4)"),
			),
		),
		s.handleTurnHeatingOn,
	)

	// Turn heating off (convenience)
	s.mcpServer.AddTool(
		mcp.NewTool("turn_heating_off",
			mcp.WithDescription("Turn off a room's heating circuit"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Hub room id (0-4)"),
			),
		),
		s.handleTurnHeatingOff,
	)

	// Poll rooms
	s.mcpServer.AddTool(
		mcp.NewTool("poll_rooms",
			mcp.WithDescription("Request fresh measured temperature and humidity readings from the hub"),
			mcp.WithNumber("id",
				mcp.Description("Hub room id to poll (all known rooms when omitted)"),
			),
		),
		s.handlePollRooms,
	)

	// Discover rooms
	s.mcpServer.AddTool(
		mcp.NewTool("discover_rooms",
			mcp.WithDescription("Probe the hub for rooms that are not known yet"),
		),
		s.handleDiscoverRooms,
	)
}
