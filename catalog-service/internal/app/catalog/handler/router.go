package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carenest/pkg/logger"
	"carenest/pkg/metrics"
)

// SetupRoutes настраивает все маршруты сервиса каталога
func SetupRoutes(catalogHandler *CatalogHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

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
			"service": "catalog-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Чтение каталога публичное: им пользуются и витрина,
	// и reviews-service для проверки существования исполнителя
	router.GET("/nannies", catalogHandler.ListNannies)
	router.GET("/nannies/:id", catalogHandler.GetNanny)
	router.GET("/doctors", catalogHandler.ListDoctors)
	router.GET("/doctors/:id", catalogHandler.GetDoctor)

	router.GET("/languages", catalogHandler.ListLanguages)
	router.GET("/services", catalogHandler.ListServices)
	router.GET("/degrees", catalogHandler.ListDegrees)
	router.GET("/locations", catalogHandler.ListLocations)

	// Редактирование каталога доступно только персоналу
	authenticate := authMiddleware.Authenticate()
	staffOnly := RequireRole("doctor", "nurse")

	router.POST("/nannies", authenticate, staffOnly, catalogHandler.CreateNanny)
	router.PATCH("/nannies/:id", authenticate, staffOnly, catalogHandler.UpdateNanny)
	router.DELETE("/nannies/:id", authenticate, staffOnly, catalogHandler.DeleteNanny)

	router.POST("/doctors", authenticate, staffOnly, catalogHandler.CreateDoctor)
	router.PATCH("/doctors/:id", authenticate, staffOnly, catalogHandler.UpdateDoctor)
	router.DELETE("/doctors/:id", authenticate, staffOnly, catalogHandler.DeleteDoctor)

	return router
}
