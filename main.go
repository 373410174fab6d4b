package main

import (
	"time"

	"journal-payments/config"
	"journal-payments/database"
	routes "journal-payments/internal/app/http"
	"journal-payments/internal/app/http/middleware"
	"journal-payments/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	logger.Init("journal-payments", config.APP_ENV != "production")
	database.InitDB()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Callback-Token"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
