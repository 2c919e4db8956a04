package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carenest/pkg/logger"
	"carenest/pkg/metrics"
)

// SetupRoutes настраивает все маршруты сервиса детей
func SetupRoutes(childrenHandler *ChildrenHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("children-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "children-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Проверка статуса токена доступна без аутентификации:
	// родитель сканирует браслет до входа в аккаунт
	router.GET("/tokens/:code", childrenHandler.CheckToken)

	children := router.Group("/children")
	children.Use(authMiddleware.Authenticate())
	{
		children.POST("", childrenHandler.RegisterChild)
		children.GET("", childrenHandler.ListChildren)
		children.GET("/:child_id", childrenHandler.GetChild)
		children.PATCH("/:child_id", childrenHandler.UpdateChild)
		children.DELETE("/:child_id", childrenHandler.DeleteChild)
	}

	staff := router.Group("/staff/children")
	staff.Use(authMiddleware.Authenticate(), RequireRole("doctor", "nurse"))
	{
		staff.GET("/:child_id", childrenHandler.GetChildByID)
		staff.GET("/by-token/:code", childrenHandler.GetChildByToken)
	}

	return router
}
