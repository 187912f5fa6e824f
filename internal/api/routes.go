package api

import (
	"campus-vote/internal/api/handlers"
	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes with proper middleware
func SetupRoutes(router *gin.Engine, services interfaces.Services) {
	cfg := services.GetConfig()

	// Global middleware
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(cfg.API.CORS))
	router.Use(middlewares.Security())
	router.Use(middlewares.RequestLogging(services.GetLogger()))
	router.Use(middlewares.RateLimit(cfg.API.RateLimit))

	// Health check (no auth required)
	router.GET("/health", handlers.HealthCheck(services))
	router.GET("/ping", handlers.HealthCheck(services))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		setupElectionRoutes(v1, services)
		setupStudentRoutes(v1, services)
		setupWebSocketRoutes(v1, services)
	}
}

// setupElectionRoutes configures the election and voting surface. Every
// route is authenticated: even the election list is personalized with
// eligibility and voted flags.
func setupElectionRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	elections := rg.Group("/elections")
	elections.Use(middlewares.AuthRequired(services))
	{
		elections.GET("", handlers.ListElections(services))
		elections.GET("/:id", handlers.GetElection(services))
		elections.GET("/:id/ballot", handlers.GetBallotForm(services))
		elections.POST("/:id/votes", handlers.CastBallot(services))
		elections.GET("/:id/results", handlers.GetElectionResults(services))
	}
}

// setupStudentRoutes configures per-student endpoints
func setupStudentRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	students := rg.Group("/students")
	students.Use(middlewares.AuthRequired(services))
	{
		students.GET("/me/stats", handlers.GetMyStats(services))
	}
}

// setupWebSocketRoutes configures WebSocket endpoints
func setupWebSocketRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	ws := rg.Group("/ws")
	ws.Use(middlewares.WSAuthRequired(services))
	{
		ws.GET("/events", handlers.ElectionEventsWebSocket(services))
	}
}
