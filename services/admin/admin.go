// Package admin backs the management dashboard: the full booking ledger with
// client details, status transitions, rescheduling and usage statistics.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "glowbook/database/repository/booking"
	userRepo "glowbook/database/repository/user"
	"glowbook/models"
	"glowbook/services/notification"

	"go.uber.org/zap"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotPending        = errors.New("only pending bookings can be confirmed or cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownSlot       = errors.New("slot is not part of the offered catalog")
)

// Service is the management surface.
type Service interface {
	// ListBookings returns every booking joined with its client's name and
	// email, newest first.
	ListBookings(ctx context.Context) ([]models.BookingView, error)
	// UpdateBookingStatus moves a pending booking to confirmed or
	// cancelled and notifies the client.
	UpdateBookingStatus(ctx context.Context, bookingID, status string) (*models.Booking, error)
	// RescheduleBooking moves a booking to a new time slot on its date and
	// notifies the client.
	RescheduleBooking(ctx context.Context, bookingID, timeSlot string) (*models.Booking, error)
	// TreatmentStats counts confirmed bookings per treatment.
	TreatmentStats(ctx context.Context) ([]models.TreatmentStat, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// DefaultService backs Service with the booking and user repositories.
type DefaultService struct {
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Notify   notification.Dispatcher
	Logger   *zap.Logger
}

func (s *DefaultService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

func (s *DefaultService) ListBookings(_ context.Context) ([]models.BookingView, error) {
	bookings, err := s.Bookings.GetAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bookings))
	seen := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if !seen[b.UserID] {
			seen[b.UserID] = true
			ids = append(ids, b.UserID)
		}
	}

	// The join is best effort: a missing or failed profile lookup falls
	// back to an ID-derived label so the ledger still renders.
	byID := make(map[string]models.User, len(ids))
	if len(ids) > 0 {
		users, err := s.Users.GetManyByIDs(ids)
		if err != nil {
			s.logger().Warn("failed to join client profiles onto bookings", zap.Error(err))
		} else {
			for _, u := range users {
				byID[u.ID] = u
			}
		}
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := models.BookingView{Booking: b}
		if u, ok := byID[b.UserID]; ok {
			view.UserName = u.FullName
			view.UserEmail = u.Email
		} else {
			view.UserName = fallbackName(b.UserID)
		}
		views = append(views, view)
	}
	return views, nil
}

// fallbackName derives a short display label from a user ID.
func fallbackName(userID string) string {
	if len(userID) > 8 {
		userID = userID[:8]
	}
	return fmt.Sprintf("Cliente %s", userID)
}

// FilterBookings narrows a booking list by date and treatment. Empty filter
// values match everything.
func FilterBookings(views []models.BookingView, date, treatmentID string) []models.BookingView {
	out := make([]models.BookingView, 0, len(views))
	for _, v := range views {
		if date != "" && v.Date != date {
			continue
		}
		if treatmentID != "" && v.TreatmentID != treatmentID {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *DefaultService) UpdateBookingStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	if status != models.BookingStatusConfirmed && status != models.BookingStatusCancelled {
		return nil, ErrInvalidTransition
	}
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.Status != models.BookingStatusPending {
		return nil, ErrNotPending
	}

	if err := s.Bookings.UpdateStatus(bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status

	kind := notification.KindConfirmed
	if status == models.BookingStatusCancelled {
		kind = notification.KindCancelled
	}
	s.notifyClient(ctx, b, kind)
	if status == models.BookingStatusConfirmed {
		s.scheduleReminder(ctx, b)
	}
	return b, nil
}

func (s *DefaultService) RescheduleBooking(ctx context.Context, bookingID, timeSlot string) (*models.Booking, error) {
	if !models.ValidSlot(timeSlot) {
		return nil, ErrUnknownSlot
	}
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, ErrInvalidTransition
	}

	if err := s.Bookings.UpdateTime(bookingID, timeSlot); err != nil {
		return nil, err
	}
	b.Time = timeSlot
	s.notifyClient(ctx, b, notification.KindRescheduled)
	return b, nil
}

func (s *DefaultService) TreatmentStats(_ context.Context) ([]models.TreatmentStat, error) {
	bookings, err := s.Bookings.GetAll()
	if err != nil {
		return nil, err
	}
	return ComputeTreatmentStats(bookings), nil
}

// ComputeTreatmentStats counts confirmed bookings per catalog treatment,
// preserving catalog order. Treatments with no confirmed bookings still
// appear with a zero count.
func ComputeTreatmentStats(bookings []models.Booking) []models.TreatmentStat {
	counts := make(map[string]int, len(models.Treatments))
	for _, b := range bookings {
		if b.Status == models.BookingStatusConfirmed {
			counts[b.TreatmentID]++
		}
	}
	stats := make([]models.TreatmentStat, 0, len(models.Treatments))
	for _, t := range models.Treatments {
		stats = append(stats, models.TreatmentStat{
			TreatmentID: t.ID,
			Name:        t.Name,
			Count:       counts[t.ID],
		})
	}
	return stats
}

func (s *DefaultService) ListUsers(_ context.Context) ([]models.User, error) {
	return s.Users.GetAll()
}

// notifyClient dispatches a lifecycle notification for the booking. Delivery
// problems are logged, never surfaced to the admin flow.
func (s *DefaultService) notifyClient(ctx context.Context, b *models.Booking, kind string) {
	if s.Notify == nil {
		return
	}
	u, err := s.Users.GetByID(b.UserID)
	if err != nil || u == nil {
		s.logger().Warn("skipping notification, client lookup failed",
			zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	treatmentName := b.TreatmentID
	if t, ok := models.TreatmentByID(b.TreatmentID); ok {
		treatmentName = t.Name
	}
	p := notification.Payload{
		Kind:          kind,
		Email:         u.Email,
		Name:          u.FullName,
		FCMToken:      u.FCMToken,
		TreatmentName: treatmentName,
		Date:          b.Date,
		Time:          b.Time,
	}
	if err := s.Notify.Dispatch(ctx, p); err != nil {
		s.logger().Warn("failed to dispatch notification",
			zap.String("bookingId", b.ID), zap.String("kind", kind), zap.Error(err))
	}
}

// scheduleReminder queues a reminder a day before the appointment. Skipped
// when the appointment is less than a day away.
func (s *DefaultService) scheduleReminder(ctx context.Context, b *models.Booking) {
	if s.Notify == nil {
		return
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, time.Local)
	if err != nil {
		return
	}
	fireAt := at.Add(-24 * time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}
	u, err := s.Users.GetByID(b.UserID)
	if err != nil || u == nil {
		return
	}
	treatmentName := b.TreatmentID
	if t, ok := models.TreatmentByID(b.TreatmentID); ok {
		treatmentName = t.Name
	}
	p := notification.Payload{
		Kind:          notification.KindReminder,
		Email:         u.Email,
		Name:          u.FullName,
		FCMToken:      u.FCMToken,
		TreatmentName: treatmentName,
		Date:          b.Date,
		Time:          b.Time,
	}
	if err := s.Notify.DispatchAt(ctx, p, fireAt); err != nil {
		s.logger().Warn("failed to schedule reminder",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
}
