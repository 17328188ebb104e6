package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hubStatus := "disconnected"
	if s.controller.IsConnected() {
		hubStatus = "connected"
	}

	status := "healthy"
	if hubStatus != "connected" {
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Hub:       hubStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms, err := s.controller.ListRooms(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list rooms: %s", err)), nil
	}

	infos := make([]RoomInfo, 0, len(rooms))
	for i := range rooms {
		infos = append(infos, RoomToInfo(&rooms[i]))
	}

	out := ListRoomsOutput{
		Rooms: infos,
		Count: len(infos),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	room, err := s.controller.GetRoom(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("room not found: %s", err)), nil
	}

	out := GetRoomOutput{Room: RoomToInfo(room)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleRenameRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newName, err := requiredString(request, "new_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.RenameRoom(ctx, id, newName); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to rename room: %s", err)), nil
	}

	out := RenameRoomOutput{
		Success: true,
		Message: fmt.Sprintf("Room %d renamed to %q", id, newName),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	// Extract state from args — it can be passed as a nested "state" object or as flat args
	stateMap := map[string]any{}
	if stateRaw, ok := args["state"]; ok {
		if sm, ok := stateRaw.(map[string]any); ok {
			stateMap = sm
		}
	} else {
		// Fall back: use all args except "id" as state properties
		for k, v := range args {
			if k != "id" {
				stateMap[k] = v
			}
		}
	}

	// Validate against the room state schema if validator is available
	if s.validator != nil {
		if err := s.validator.ValidateRoomState(stateMap); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
		}
	}

	room, err := s.controller.SetState(ctx, id, stateMap)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set room state: %s", err)), nil
	}

	out := SetRoomStateOutput{
		RoomID: id,
		Room:   RoomToInfo(room),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetTargetTemperature(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	celsius, err := requiredFloat(request, "celsius")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.SetTargetTemperature(ctx, id, celsius); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set target temperature: %s", err)), nil
	}

	room, err := s.controller.GetRoom(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read room back: %s", err)), nil
	}

	out := SetTargetTemperatureOutput{
		Success: true,
		Message: fmt.Sprintf("Room %d setpoint changed to %.1f°C", id, celsius),
		Room:    RoomToInfo(room),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleTurnHeatingOn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.SetPower(ctx, id, true); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to turn heating on: %s", err)), nil
	}

	room, err := s.controller.GetRoom(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read room back: %s", err)), nil
	}

	out := TurnHeatingOnOutput{
		RoomID: id,
		Room:   RoomToInfo(room),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleTurnHeatingOff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.controller.SetPower(ctx, id, false); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to turn heating off: %s", err)), nil
	}

	room, err := s.controller.GetRoom(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read room back: %s", err)), nil
	}

	out := TurnHeatingOffOutput{
		RoomID: id,
		Room:   RoomToInfo(room),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePollRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if v, ok := request.GetArguments()["id"]; ok && v != nil {
		f, ok := v.(float64)
		if !ok {
			return mcp.NewToolResultError(`parameter "id" must be a number`), nil
		}
		id := int(f)

		if err := s.controller.PollRoom(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to poll room: %s", err)), nil
		}

		out := PollRoomsOutput{
			Success: true,
			Message: fmt.Sprintf("Poll queued for room %d", id),
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	}

	if err := s.controller.PollAll(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to poll rooms: %s", err)), nil
	}

	out := PollRoomsOutput{
		Success: true,
		Message: "Poll queued for all known rooms",
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleDiscoverRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.controller.Initialize(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to probe for rooms: %s", err)), nil
	}

	rooms, err := s.controller.ListRooms(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list rooms: %s", err)), nil
	}

	out := DiscoverRoomsOutput{
		Success: true,
		Message: "Discovery probe sent; rooms answer asynchronously",
		Count:   len(rooms),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredInt(request mcp.CallToolRequest, key string) (int, error) {
	f, err := requiredFloat(request, key)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("parameter %q must be an integer", key)
	}
	return int(f), nil
}

func requiredFloat(request mcp.CallToolRequest, key string) (float64, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("required parameter %q is missing", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
	return f, nil
}

func formatJSON(v any) string {
	b, err := encodeJSON(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
