package handlers

import (
	"launchpad/internal/logger"
	"launchpad/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultStreamBuffer = 4

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services     *service.Service
	log          *logger.Logger
	streamBuffer int
}

// NewHandler constructs a new HTTP handler. streamBuffer sizes each
// websocket's snapshot queue; non-positive values use a small default.
func NewHandler(services *service.Service, log *logger.Logger, streamBuffer int) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if streamBuffer <= 0 {
		streamBuffer = defaultStreamBuffer
	}
	return &Handler{services: services, log: log, streamBuffer: streamBuffer}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/countdown", h.getCountdown)
		api.POST("/subscribe", h.subscribe)
	}

	admin := api.Group("/admin", h.adminIDMiddleware)
	{
		// Body example: {"target":"2027-01-01T00:00:00+07:00"}
		admin.PUT("/countdown/target", h.setTarget)
		admin.GET("/subscribers/count", h.subscriberCount)
		admin.GET("/subscribers/check", h.subscriberCheck)
		admin.GET("/logs", h.getLogs)
	}
}
