package handlers

import (
	"errors"
	"net/http"

	adminSvc "glowbook/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminBookingsHandler returns the full booking ledger with client details,
// optionally narrowed by date and treatment query parameters.
func AdminBookingsHandler(svc adminSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svc.ListBookings(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list bookings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
			return
		}
		views = adminSvc.FilterBookings(views, c.Query("date"), c.Query("treatment"))
		c.JSON(http.StatusOK, gin.H{"bookings": views})
	}
}

// UpdateBookingStatusHandler confirms or cancels a pending booking.
func UpdateBookingStatusHandler(svc adminSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		b, err := svc.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			adminError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// RescheduleBookingHandler moves a booking to a different slot.
func RescheduleBookingHandler(svc adminSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Time string `json:"time"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		b, err := svc.RescheduleBooking(c.Request.Context(), c.Param("id"), req.Time)
		if err != nil {
			adminError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// TreatmentStatsHandler returns confirmed booking counts per treatment.
func TreatmentStatsHandler(svc adminSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.TreatmentStats(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to compute treatment stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}

// AdminUsersHandler lists registered clients, newest first.
func AdminUsersHandler(svc adminSvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

func adminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, adminSvc.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, adminSvc.ErrNotPending),
		errors.Is(err, adminSvc.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, adminSvc.ErrUnknownSlot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Admin operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed, please try again"})
	}
}
