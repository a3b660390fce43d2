package user

import (
	"errors"

	"glowbook/models"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCancelled = errors.New("booking is already cancelled")
)

// CancelBooking withdraws one of the user's own bookings. A booking that
// belongs to someone else is reported as not found rather than forbidden.
func (s *DefaultUserService) CancelBooking(userID, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, ErrBookingCancelled
	}
	if err := s.Bookings.UpdateStatus(bookingID, models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusCancelled
	return b, nil
}
