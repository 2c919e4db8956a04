package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carenest/pkg/logger"
	"carenest/pkg/metrics"
)

// SetupRoutes настраивает все маршруты сервиса отзывов
func SetupRoutes(reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("reviews-service"))

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
			"service": "reviews-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := router.Group("/reviews")
	{
		// Чтение отзывов доступно без аутентификации
		reviews.GET("/:kind/:target_id", reviewHandler.GetReviews)

		protected := reviews.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/:kind/:target_id", reviewHandler.SubmitReview)
			protected.GET("/:kind/:target_id/me", reviewHandler.HasReviewed)
			protected.PATCH("/:review_id", reviewHandler.UpdateReview)
			protected.DELETE("/:review_id", reviewHandler.DeleteReview)
		}
	}

	return router
}
