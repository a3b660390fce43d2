package handlers

import (
	"errors"
	"net/http"

	"glowbook/models"
	"glowbook/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListAvailabilityHandler returns every configured day plus the full slot
// catalog, so the editor can render the picker.
func ListAvailabilityHandler(avail availability.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := avail.GetAll()
		if err != nil {
			getLogger(c).Error("Failed to list availability", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"days":    days,
			"catalog": models.SlotCatalog,
		})
	}
}

// SetDayAvailabilityHandler replaces a date's offered slots. An empty list
// disables the day explicitly.
func SetDayAvailabilityHandler(avail availability.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")

		var req struct {
			Slots []string `json:"slots"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		day, err := avail.SetDay(date, req.Slots)
		if err != nil {
			switch {
			case errors.Is(err, availability.ErrInvalidDate),
				errors.Is(err, availability.ErrPastDate),
				errors.Is(err, availability.ErrUnknownSlot):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				getLogger(c).Error("Failed to save availability", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save availability"})
			}
			return
		}
		c.JSON(http.StatusOK, day)
	}
}

// ClearDayAvailabilityHandler removes a date's record entirely.
func ClearDayAvailabilityHandler(avail availability.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if err := avail.ClearDay(date); err != nil {
			if errors.Is(err, availability.ErrInvalidDate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			getLogger(c).Error("Failed to clear availability", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear availability"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cleared", "date": date})
	}
}
