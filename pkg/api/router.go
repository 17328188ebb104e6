package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/handlers"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/api/types"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	controller climate.Controller
	subscriber climate.EventSubscriber
	validator  *schema.Validator
	hub        types.HubInfo
}

// NewRouter creates a new API router
func NewRouter(controller climate.Controller, subscriber climate.EventSubscriber, validator *schema.Validator, hub types.HubInfo) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		controller: controller,
		subscriber: subscriber,
		validator:  validator,
		hub:        hub,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.controller, r.hub)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health and hub status
		v1.GET("/health", healthHandler.Health)
		v1.GET("/hub", healthHandler.Hub)

		// Rooms
		roomsHandler := handlers.NewRoomsHandler(r.controller)
		controlHandler := handlers.NewControlHandler(r.controller, r.validator)
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", roomsHandler.ListRooms)
			rooms.GET("/:id", roomsHandler.GetRoom)
			rooms.PATCH("/:id", roomsHandler.RenameRoom)

			// Room state control and polling
			rooms.POST("/:id/state", controlHandler.SetState)
			rooms.POST("/:id/poll", controlHandler.PollRoom)
			rooms.POST("/poll", controlHandler.PollAll)
		}

		// Discovery probe
		discoveryHandler := handlers.NewDiscoveryHandler(r.controller)
		v1.POST("/discovery", discoveryHandler.Discover)

		// Event feeds
		eventsHandler := handlers.NewEventsHandler(r.subscriber)
		v1.GET("/events", eventsHandler.Events)
		v1.GET("/events/ws", eventsHandler.EventsWS)
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
