package bookingRepo

import (
	"glowbook/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(b *models.Booking) error
	// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when
	// no such booking exists.
	GetByID(id string) (*models.Booking, error)
	// GetAll retrieves all bookings ordered by date and time, newest first.
	GetAll() ([]models.Booking, error)
	// GetByUserID retrieves a user's bookings, newest first.
	GetByUserID(userID string) ([]models.Booking, error)
	// UpdateStatus sets a booking's status.
	UpdateStatus(id, status string) error
	// UpdateTime sets a booking's time slot.
	UpdateTime(id, timeSlot string) error
}
