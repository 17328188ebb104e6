package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// HealthHandler handles health and hub status endpoints
type HealthHandler struct {
	controller climate.Controller
	hub        types.HubInfo
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller climate.Controller, hub types.HubInfo) *HealthHandler {
	return &HealthHandler{controller: controller, hub: hub}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the hub link
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	hubStatus := "disconnected"
	if h.controller.IsConnected() {
		hubStatus = "connected"
	}

	status := "healthy"
	httpStatus := http.StatusOK

	if hubStatus != "connected" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Hub:       hubStatus,
		Timestamp: time.Now(),
	})
}

// Hub handles GET /hub
// @Summary      Hub status
// @Description  Returns the configured hub endpoint, link state and room count
// @Tags         hub
// @Produce      json
// @Success      200  {object}  types.HubResponse
// @Router       /hub [get]
func (h *HealthHandler) Hub(c *gin.Context) {
	rooms, _ := h.controller.ListRooms(c.Request.Context())

	c.JSON(http.StatusOK, types.HubResponse{
		Configured: h.hub.Address != "",
		Name:       h.hub.Name,
		Link:       h.hub.Link,
		Address:    h.hub.Address,
		Connected:  h.controller.IsConnected(),
		Rooms:      len(rooms),
	})
}
