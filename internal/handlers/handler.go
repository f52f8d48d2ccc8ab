package handlers

import (
	"net/http"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

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
// The API is reachable both at the root and under /api.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.accessLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAPIRoutes(&router.RouterGroup)
	h.registerAPIRoutes(router.Group("/api"))

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.RouterGroup) {
	h.registerAuthRoutes(r)

	habits := r.Group("/habits", h.userIdentity)
	{
		h.registerHabitRoutes(habits)
		h.registerLogRoutes(habits)
	}
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerHabitRoutes(habits *gin.RouterGroup) {
	habits.GET("", h.listHabits)
	habits.POST("", h.createHabit)
	habits.GET("/:id", h.getHabit)
	habits.PATCH("/:id", h.updateHabit)
	habits.DELETE("/:id", h.deleteHabit)
	habits.PATCH("/:id/color", h.updateHabitColor)
}

func (h *Handler) registerLogRoutes(habits *gin.RouterGroup) {
	habits.GET("/:id/logs", h.listLogs)
	habits.POST("/:id/logs", h.toggleLog)   // body: {"date":"2024-02-29"}
	habits.PUT("/:id/logs", h.addLog)       // idempotent add
	habits.DELETE("/:id/logs", h.removeLog) // idempotent remove
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
