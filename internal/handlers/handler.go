package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"patient_monitoring/internal/logger"
	"patient_monitoring/internal/repository"
	"patient_monitoring/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live room-status stream (HTTP upgrade) — same port
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
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerPatientRoutes(api)
		h.registerRoomRoutes(api)
		h.registerDeviceRoutes(api)
		h.registerAlertRoutes(api)
		h.registerMonitorRoutes(api)
	}
}

func (h *Handler) registerPatientRoutes(api *gin.RouterGroup) {
	patients := api.Group("/patients")
	{
		patients.GET("/", h.listPatients)
		patients.POST("/", h.createPatient)
		patients.GET("/:id", h.getPatient)
		patients.PUT("/:id", h.updatePatient)
		patients.DELETE("/:id", h.deletePatient)
		// Body example: {"min_heart_rate":55,"max_heart_rate":120}
		patients.PUT("/:id/limits", h.updatePatientLimits)
	}
}

func (h *Handler) registerRoomRoutes(api *gin.RouterGroup) {
	rooms := api.Group("/rooms")
	{
		rooms.GET("/", h.listRooms)
		rooms.POST("/", h.createRoom)
		rooms.GET("/:id", h.getRoom)
		rooms.PUT("/:id", h.updateRoom)
		rooms.POST("/:id/assign", h.assignRoom)
		rooms.POST("/:id/release", h.releaseRoom)
		rooms.POST("/:id/toggle-active", h.toggleRoomActive)
	}
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	devices := api.Group("/devices")
	{
		devices.GET("/", h.listDevices)
		devices.POST("/", h.createDevice)
		devices.PUT("/:id", h.updateDevice)
		devices.DELETE("/:id", h.deleteDevice)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("/", h.listAlerts)
		alerts.POST("/:id/viewed", h.markAlertViewed)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	monitor := api.Group("/monitor")
	{
		monitor.GET("/rooms", h.monitorRooms)
		monitor.GET("/rooms/:id", h.monitorRoom)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// parseIDParam reads the numeric :id path param and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// notFound reports whether err is the repository's missing-row sentinel.
func notFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
