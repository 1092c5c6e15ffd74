package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcourier/internal/auth"
)

// NewRouter creates the desk API router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	deskController := NewDeskController(cfg.Desk, cfg.RateLimiter)
	api := router.Group("/api")
	api.GET("/desk", deskController.State)
	api.POST("/login", deskController.Login)
	api.POST("/logout", deskController.Logout)
	api.POST("/tab", deskController.ChangeTab)
	api.POST("/rows", deskController.ChangeRow)
	api.POST("/actions/comment", deskController.Comment)
	api.POST("/actions/:action", deskController.Action)
	api.POST("/refresh", deskController.Refresh)

	auditController := NewAuditController(cfg.Desk, cfg.Audit)
	api.GET("/audit", auditController.Events)

	return router
}
