package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate/schema"
)

// ControlHandler handles room state control and polling endpoints
type ControlHandler struct {
	controller climate.Controller
	validator  *schema.Validator
}

// NewControlHandler creates a new control handler
func NewControlHandler(controller climate.Controller, validator *schema.Validator) *ControlHandler {
	return &ControlHandler{controller: controller, validator: validator}
}

// SetState handles POST /rooms/:id/state
// @Summary      Set room state
// @Description  Sets power, mode and/or target temperature using a free-form JSON object validated against the room state schema
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id       path      int     true  "Room id"
// @Param        request  body      object  true  "State to set, e.g. {\"power\": \"on\", \"target_temperature\": 21.5}"
// @Success      200      {object}  types.RoomResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Room not found"
// @Failure      503      {object}  types.ErrorResponse  "Hub disconnected"
// @Failure      504      {object}  types.ErrorResponse  "Request timed out"
// @Router       /rooms/{id}/state [post]
func (h *ControlHandler) SetState(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	var req map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	// Validate against the room state schema
	if err := h.validator.ValidateRoomState(req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	room, err := h.controller.SetState(c.Request.Context(), id, req)
	if err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RoomResponse{Room: room})
}

// PollRoom handles POST /rooms/:id/poll
// @Summary      Poll a room
// @Description  Queues a measured temperature and humidity poll for one room
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room id"
// @Success      202  {object}  types.PollResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid room id"
// @Failure      404  {object}  types.ErrorResponse  "Room not found"
// @Failure      503  {object}  types.ErrorResponse  "Hub disconnected"
// @Router       /rooms/{id}/poll [post]
func (h *ControlHandler) PollRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	if err := h.controller.PollRoom(c.Request.Context(), id); err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, types.PollResponse{
		Status: "poll_requested",
		Rooms:  1,
	})
}

// PollAll handles POST /rooms/poll
// @Summary      Poll all rooms
// @Description  Queues a measured temperature and humidity poll for every known room
// @Tags         rooms
// @Produce      json
// @Success      202  {object}  types.PollResponse
// @Failure      503  {object}  types.ErrorResponse  "Hub disconnected"
// @Router       /rooms/poll [post]
func (h *ControlHandler) PollAll(c *gin.Context) {
	ctx := c.Request.Context()

	rooms, err := h.controller.ListRooms(ctx)
	if err != nil {
		controllerError(c, err)
		return
	}

	if err := h.controller.PollAll(ctx); err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, types.PollResponse{
		Status: "poll_requested",
		Rooms:  len(rooms),
	})
}
