package routes

import (
	adminapi "journal-payments/internal/api/admin"
	authapi "journal-payments/internal/api/auth"
	"journal-payments/internal/api/checkout"
	paymentsapi "journal-payments/internal/api/payments"
	"journal-payments/internal/api/xenditwebhook"
	"journal-payments/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine) {
	// Gateway callbacks authenticate with their own token, not a JWT
	r.POST("/journals/:journal/webhook", xenditwebhook.HandleWebhook)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/change-password", authapi.ChangePassword)

	journal := auth.Group("/journals/:journal")
	journal.Use(middleware.JournalContext())
	journal.POST("/payments", checkout.CreatePayment)
	journal.POST("/payments/:id/checkout", checkout.Checkout)
	journal.GET("/payments", paymentsapi.GetPaymentHistory)
	journal.GET("/payments/pending", paymentsapi.GetPendingPayments)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/payments/pending", adminapi.ListPendingPayments)

	adminJournal := admin.Group("/journals/:journal")
	adminJournal.Use(middleware.JournalContext())
	adminJournal.GET("/settings", adminapi.GetPaymentSettings)
	adminJournal.PUT("/settings", adminapi.UpdatePaymentSettings)
}
