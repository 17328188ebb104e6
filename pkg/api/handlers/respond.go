package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// roomID parses the :id path parameter. Responds 400 and reports false
// for anything that is not a non-negative integer.
func roomID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_room_id",
			Message: "Room id must be a non-negative integer",
		})
		return 0, false
	}
	return id, true
}

// controllerError maps controller sentinel errors onto HTTP statuses.
func controllerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, climate.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Room not found",
		})
	case errors.Is(err, climate.ErrValidation), errors.Is(err, climate.ErrOutOfRange):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, climate.ErrNotConnected):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "hub_disconnected",
			Message: err.Error(),
		})
	case errors.Is(err, climate.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, types.ErrorResponse{
			Error:   "timeout",
			Message: "Request timed out waiting for the hub",
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "controller_error",
			Message: err.Error(),
		})
	}
}
