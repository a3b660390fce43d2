package routes

import (
	"net/http"
	"time"

	"glowbook/handlers"
	"glowbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and session endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/admin-login", hb.AdminLoginHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/session", hb.SessionHandler)
		api.POST("/session/resume", hb.ResumeHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the reservation flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		// Browsing the catalog and day availability needs no account.
		bookingGroup.GET("/treatments", hb.TreatmentsHandler)
		bookingGroup.GET("/slots", hb.SlotsHandler)

		protected := bookingGroup.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		protected.POST("/wizard", hb.StartWizardHandler)
		protected.GET("/wizard", hb.GetWizardHandler)
		protected.PUT("/wizard/treatment", hb.SelectTreatmentHandler)
		protected.PUT("/wizard/schedule", hb.SelectDateTimeHandler)
		protected.PUT("/wizard/details", hb.SetDetailsHandler)
		protected.POST("/wizard/next", hb.NextStepHandler)
		protected.POST("/wizard/back", hb.PrevStepHandler)
		protected.POST("/wizard/confirm", hb.ConfirmWizardHandler)
		protected.DELETE("/wizard", hb.CancelWizardHandler)
		protected.GET("/mine", hb.MyBookingsHandler)
		protected.DELETE("/mine/:id", hb.CancelMyBookingHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the management dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(hb.SessionStore))
		adminGroup.GET("/bookings", hb.AdminBookingsHandler)
		adminGroup.PATCH("/bookings/:id/status", hb.UpdateBookingStatusHandler)
		adminGroup.PATCH("/bookings/:id/time", hb.RescheduleBookingHandler)
		adminGroup.GET("/stats/treatments", hb.TreatmentStatsHandler)
		adminGroup.GET("/users", hb.AdminUsersHandler)
		adminGroup.GET("/availability", hb.ListAvailabilityHandler)
		adminGroup.PUT("/availability/:date", hb.SetDayAvailabilityHandler)
		adminGroup.DELETE("/availability/:date", hb.ClearDayAvailabilityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Glowbook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Client-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.ClientIDMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
