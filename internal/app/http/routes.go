package routes

import (
	adminapi "marketplace-app/internal/api/admin"
	"marketplace-app/internal/api/billing"
	connectapi "marketplace-app/internal/api/connect"
	offersapi "marketplace-app/internal/api/offers"
	payoutsapi "marketplace-app/internal/api/payouts"
	stripewebhooks "marketplace-app/internal/api/stripewebhook"
	"marketplace-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook stays outside every middleware: the raw body is needed for
	// signature verification.
	r.POST("/webhooks/payments", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	auth.POST("/checkout", billing.CreateCheckoutSession)
	auth.GET("/payments", billing.GetPaymentHistory)

	auth.POST("/offers", offersapi.CreateOffer)
	auth.GET("/offers", offersapi.ListMyOffers)
	auth.GET("/offers/:id", offersapi.GetOffer)
	auth.POST("/offers/:id/accept", offersapi.AcceptOffer)
	auth.POST("/offers/:id/reject", offersapi.RejectOffer)

	// Coach area
	coach := auth.Group("/coach")
	coach.POST("/stripe/account", connectapi.CreateAccount)
	coach.POST("/stripe/onboarding-link", connectapi.CreateOnboardingLink)
	coach.GET("/stripe/status", connectapi.GetAccountStatus)
	coach.POST("/register-invoice", payoutsapi.RegisterInvoice)
	coach.GET("/payouts", payoutsapi.ListMyPayouts)
	coach.GET("/earnings", payoutsapi.GetMyEarnings)

	// Batch: pre-shared secret or admin token
	batch := r.Group("/admin")
	batch.Use(middleware.BatchAuthMiddleware())
	batch.POST("/batch-payout", payoutsapi.RunBatchPayout)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/payouts", adminapi.ListAllPayouts)
	admin.GET("/offers", adminapi.ListAllOffers)
	admin.GET("/transactions", adminapi.ListAllTransactions)
	admin.POST("/verify-invoice", payoutsapi.VerifyInvoice)
	admin.POST("/payouts/:id/reset", payoutsapi.ResetPayout)
}
