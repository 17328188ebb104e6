package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// DiscoveryHandler handles room discovery endpoints
type DiscoveryHandler struct {
	controller climate.Controller
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(controller climate.Controller) *DiscoveryHandler {
	return &DiscoveryHandler{controller: controller}
}

// Discover handles POST /discovery
// @Summary      Probe for rooms
// @Description  Re-sends the room discovery probe; rooms that answer are announced on the event stream
// @Tags         discovery
// @Produce      json
// @Success      202  {object}  types.DiscoveryResponse
// @Failure      503  {object}  types.ErrorResponse  "Hub disconnected"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Router       /discovery [post]
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	if err := h.controller.Initialize(c.Request.Context()); err != nil {
		controllerError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, types.DiscoveryResponse{
		Status: "probe_sent",
	})
}
