package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// RoomsHandler handles room query and rename endpoints
type RoomsHandler struct {
	controller climate.Controller
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(controller climate.Controller) *RoomsHandler {
	return &RoomsHandler{controller: controller}
}

// ListRooms handles GET /rooms
// @Summary      List rooms
// @Description  Returns all rooms discovered on the hub with their last known state
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  types.ListRoomsResponse
// @Failure      500  {object}  types.ErrorResponse  "Controller error"
// @Router       /rooms [get]
func (h *RoomsHandler) ListRooms(c *gin.Context) {
	rooms, err := h.controller.ListRooms(c.Request.Context())
	if err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ListRoomsResponse{
		Rooms: rooms,
		Count: len(rooms),
	})
}

// GetRoom handles GET /rooms/:id
// @Summary      Get a room
// @Description  Returns a single room by its hub room id
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room id"
// @Success      200  {object}  types.RoomResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid room id"
// @Failure      404  {object}  types.ErrorResponse  "Room not found"
// @Router       /rooms/{id} [get]
func (h *RoomsHandler) GetRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	room, err := h.controller.GetRoom(c.Request.Context(), id)
	if err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RoomResponse{Room: room})
}

// RenameRoom handles PATCH /rooms/:id
// @Summary      Rename a room
// @Description  Sets the user-friendly name of a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Room id"
// @Param        request  body      types.RenameRoomRequest  true  "New room name"
// @Success      200      {object}  types.RoomResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Room not found"
// @Router       /rooms/{id} [patch]
func (h *RoomsHandler) RenameRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	var req types.RenameRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "name is required",
		})
		return
	}

	ctx := c.Request.Context()

	if err := h.controller.RenameRoom(ctx, id, req.Name); err != nil {
		controllerError(c, err)
		return
	}

	room, err := h.controller.GetRoom(ctx, id)
	if err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RoomResponse{Room: room})
}
