package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ignite/tuition-service/internal/config"
	"github.com/ignite/tuition-service/internal/handler"
	"github.com/ignite/tuition-service/internal/middleware"
	"github.com/ignite/tuition-service/internal/response"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Tuition *handler.TuitionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and handlers share its logger.
	router.Use(response.RequestIDMiddleware(log), middleware.AccessLog())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Tuition Group (bearer forwarded downstream) ───────────────────
	tuitionAPI := router.Group("/api/v1/tuition")
	tuitionAPI.Use(middleware.RequireJWT(cfg.JWTSecret), middleware.ForwardToken())
	{
		tuitionAPI.POST("", handlers.Tuition.CreateTuition)
		tuitionAPI.GET("/get/all", handlers.Tuition.ListTuitions)
		tuitionAPI.GET("/get/:tuitionId", handlers.Tuition.GetTuition)
		tuitionAPI.DELETE("/delete/:tuitionId", handlers.Tuition.DeleteTuition)
		tuitionAPI.POST("/add/student/:studentId/tuition/:tuitionId", handlers.Tuition.AddStudent)
		tuitionAPI.POST("/remove/student/:studentId/tuition/:tuitionId", handlers.Tuition.RemoveStudent)
	}

	return router
}
