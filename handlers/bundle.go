package handlers

import (
	userRepoPkg "glowbook/database/repository/user"
	"glowbook/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo     userRepoPkg.UserRepository
	SessionStore session.Store

	// Auth and session endpoints
	RegisterHandler   gin.HandlerFunc
	LoginHandler      gin.HandlerFunc
	AdminLoginHandler gin.HandlerFunc
	LogoutHandler     gin.HandlerFunc
	SessionHandler    gin.HandlerFunc
	ResumeHandler     gin.HandlerFunc

	// Booking endpoints
	TreatmentsHandler      gin.HandlerFunc
	SlotsHandler           gin.HandlerFunc
	StartWizardHandler     gin.HandlerFunc
	GetWizardHandler       gin.HandlerFunc
	SelectTreatmentHandler gin.HandlerFunc
	SelectDateTimeHandler  gin.HandlerFunc
	SetDetailsHandler      gin.HandlerFunc
	NextStepHandler        gin.HandlerFunc
	PrevStepHandler        gin.HandlerFunc
	ConfirmWizardHandler   gin.HandlerFunc
	CancelWizardHandler    gin.HandlerFunc
	MyBookingsHandler      gin.HandlerFunc
	CancelMyBookingHandler gin.HandlerFunc
	UpdateFCMTokenHandler  gin.HandlerFunc

	// Admin endpoints
	AdminBookingsHandler        gin.HandlerFunc
	UpdateBookingStatusHandler  gin.HandlerFunc
	RescheduleBookingHandler    gin.HandlerFunc
	TreatmentStatsHandler       gin.HandlerFunc
	AdminUsersHandler           gin.HandlerFunc
	ListAvailabilityHandler     gin.HandlerFunc
	SetDayAvailabilityHandler   gin.HandlerFunc
	ClearDayAvailabilityHandler gin.HandlerFunc
}
