package handlers

import (
	"errors"
	"net/http"

	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/availability"
	bookingSvc "glowbook/services/booking"
	"glowbook/services/notification"
	userSvc "glowbook/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TreatmentsHandler returns the treatment catalog.
func TreatmentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"treatments": models.Treatments})
}

// SlotsHandler returns the offered slots for a date, with a disabled flag so
// the client can grey out the day.
func SlotsHandler(avail availability.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
			return
		}

		disabled, err := avail.IsDayDisabled(date)
		if err != nil {
			if errors.Is(err, availability.ErrInvalidDate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			getLogger(c).Error("Failed to check day availability", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
			return
		}

		slots := []string{}
		if !disabled {
			slots, err = avail.SlotsForDate(date)
			if err != nil {
				getLogger(c).Error("Failed to load slots", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"date":     date,
			"disabled": disabled,
			"slots":    slots,
		})
	}
}

// wizardError maps wizard failures onto HTTP statuses.
func wizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingSvc.ErrWizardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bookingSvc.ErrInvalidTreatment),
		errors.Is(err, bookingSvc.ErrTreatmentRequired),
		errors.Is(err, bookingSvc.ErrScheduleRequired),
		errors.Is(err, bookingSvc.ErrPhoneRequired),
		errors.Is(err, bookingSvc.ErrInvalidStep),
		errors.Is(err, availability.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, bookingSvc.ErrDayUnavailable),
		errors.Is(err, bookingSvc.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Booking wizard failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking failed, please try again"})
	}
}

// StartWizardHandler opens a fresh booking wizard for the client, prefilled
// from the authenticated user's profile.
func StartWizardHandler(wiz bookingSvc.WizardService, users userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		u, err := users.GetUserByID(userID)
		if err != nil || u == nil {
			getLogger(c).Error("Failed to load user for wizard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start booking"})
			return
		}

		st, err := wiz.Start(c.Request.Context(), middleware.ClientID(c), u)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusCreated, st)
	}
}

// GetWizardHandler returns the client's in-progress wizard.
func GetWizardHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := wiz.Current(c.Request.Context(), middleware.ClientID(c))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// SelectTreatmentHandler records the chosen treatment.
func SelectTreatmentHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TreatmentID string `json:"treatmentId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		st, err := wiz.SelectTreatment(c.Request.Context(), middleware.ClientID(c), req.TreatmentID)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// SelectDateTimeHandler records the chosen date and slot after checking the
// day is open and the slot offered.
func SelectDateTimeHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Date string `json:"date"`
			Time string `json:"time"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		st, err := wiz.SelectDateTime(c.Request.Context(), middleware.ClientID(c), req.Date, req.Time)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// SetDetailsHandler records the contact details step.
func SetDetailsHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone   string `json:"phone"`
			Address string `json:"address"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		st, err := wiz.SetDetails(c.Request.Context(), middleware.ClientID(c), req.Phone, req.Address)
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// NextStepHandler advances the wizard one step.
func NextStepHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := wiz.Next(c.Request.Context(), middleware.ClientID(c))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// PrevStepHandler moves the wizard one step back.
func PrevStepHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := wiz.Back(c.Request.Context(), middleware.ClientID(c))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// ConfirmWizardHandler finalizes the wizard into a pending booking.
func ConfirmWizardHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := wiz.Confirm(c.Request.Context(), middleware.ClientID(c))
		if err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// CancelWizardHandler abandons the in-progress wizard.
func CancelWizardHandler(wiz bookingSvc.WizardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := wiz.Cancel(c.Request.Context(), middleware.ClientID(c)); err != nil {
			wizardError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}

// MyBookingsHandler returns the authenticated user's bookings, newest first.
func MyBookingsHandler(users userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		bookings, err := users.GetUserBookings(userID)
		if err != nil {
			getLogger(c).Error("Failed to load user bookings", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

// CancelMyBookingHandler cancels one of the authenticated user's bookings
// and queues a best-effort cancellation notice.
func CancelMyBookingHandler(users userSvc.UserService, notify notification.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		b, err := users.CancelBooking(userID, c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, userSvc.ErrBookingNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, userSvc.ErrBookingCancelled):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				getLogger(c).Error("Failed to cancel booking", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
			}
			return
		}

		if notify != nil {
			if u, uerr := users.GetUserByID(userID); uerr == nil && u != nil {
				p := notification.Payload{
					Kind:     notification.KindCancelled,
					Email:    u.Email,
					Name:     u.FullName,
					FCMToken: u.FCMToken,
					Date:     b.Date,
					Time:     b.Time,
				}
				if t, ok := models.TreatmentByID(b.TreatmentID); ok {
					p.TreatmentName = t.Name
				}
				if derr := notify.Dispatch(c.Request.Context(), p); derr != nil {
					getLogger(c).Warn("failed to queue cancellation notice", zap.Error(derr))
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"booking": b})
	}
}

// UpdateFCMTokenHandler stores the device token push notifications go to.
func UpdateFCMTokenHandler(users userSvc.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A device token is required"})
			return
		}
		userID := c.GetString("userID")
		if err := users.UpdateFCMToken(userID, req.Token); err != nil {
			getLogger(c).Error("Failed to update device token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
