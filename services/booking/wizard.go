// Package booking drives the multi-step reservation flow. Progress lives in
// a per-client wizard session so a client can resume where it left off.
package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "glowbook/database/repository/booking"
	"glowbook/models"
	"glowbook/services/availability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Wizard steps, in order. A step's data must be complete before the flow
// advances past it.
const (
	StepSelectTreatment = 1
	StepSelectDateTime  = 2
	StepConfirmDetails  = 3
	StepDone            = 4
)

var (
	ErrWizardNotFound    = errors.New("no booking in progress")
	ErrInvalidStep       = errors.New("invalid wizard step")
	ErrInvalidTreatment  = errors.New("unknown treatment")
	ErrTreatmentRequired = errors.New("select a treatment first")
	ErrScheduleRequired  = errors.New("select a date and time first")
	ErrPhoneRequired     = errors.New("a phone number is required to confirm")
	ErrDayUnavailable    = errors.New("the selected day is not available")
	ErrSlotUnavailable   = errors.New("the selected time is not offered on that day")
)

// WizardState is the in-progress reservation for one client.
type WizardState struct {
	UserID      string    `json:"userId"`
	Step        int       `json:"step"`
	TreatmentID string    `json:"treatmentId,omitempty"`
	Date        string    `json:"date,omitempty"`
	Time        string    `json:"time,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WizardStore persists wizard sessions keyed by client ID.
type WizardStore interface {
	// Load returns the client's wizard state, or (nil, nil) when absent.
	Load(ctx context.Context, clientID string) (*WizardState, error)
	Save(ctx context.Context, clientID string, st *WizardState) error
	Delete(ctx context.Context, clientID string) error
}

// WizardService runs the reservation flow end to end.
type WizardService interface {
	// Start opens a fresh wizard for the client, prefilled from the user's
	// profile where possible.
	Start(ctx context.Context, clientID string, u *models.User) (*WizardState, error)
	Current(ctx context.Context, clientID string) (*WizardState, error)
	SelectTreatment(ctx context.Context, clientID, treatmentID string) (*WizardState, error)
	SelectDateTime(ctx context.Context, clientID, date, timeSlot string) (*WizardState, error)
	SetDetails(ctx context.Context, clientID, phone, address string) (*WizardState, error)
	Next(ctx context.Context, clientID string) (*WizardState, error)
	Back(ctx context.Context, clientID string) (*WizardState, error)
	// Confirm finalizes the wizard into a pending booking and clears the
	// session.
	Confirm(ctx context.Context, clientID string) (*models.Booking, error)
	Cancel(ctx context.Context, clientID string) error
}

// DefaultWizardService backs WizardService with a wizard store, the booking
// repository and the availability service.
type DefaultWizardService struct {
	Store        WizardStore
	Bookings     bookingRepo.BookingRepository
	Availability availability.Service
	Logger       *zap.Logger
}

func (s *DefaultWizardService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

func (s *DefaultWizardService) Start(ctx context.Context, clientID string, u *models.User) (*WizardState, error) {
	st := &WizardState{
		Step:      StepSelectTreatment,
		UpdatedAt: time.Now(),
	}
	if u != nil {
		st.UserID = u.ID
		st.Phone = u.Phone
	}
	if err := s.Store.Save(ctx, clientID, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *DefaultWizardService) Current(ctx context.Context, clientID string) (*WizardState, error) {
	st, err := s.Store.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrWizardNotFound
	}
	return st, nil
}

func (s *DefaultWizardService) SelectTreatment(ctx context.Context, clientID, treatmentID string) (*WizardState, error) {
	st, err := s.Current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if _, ok := models.TreatmentByID(treatmentID); !ok {
		return nil, ErrInvalidTreatment
	}
	st.TreatmentID = treatmentID
	return st, s.save(ctx, clientID, st)
}

func (s *DefaultWizardService) SelectDateTime(ctx context.Context, clientID, date, timeSlot string) (*WizardState, error) {
	st, err := s.Current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	disabled, err := s.Availability.IsDayDisabled(date)
	if err != nil {
		return nil, err
	}
	if disabled {
		return nil, ErrDayUnavailable
	}
	slots, err := s.Availability.SlotsForDate(date)
	if err != nil {
		return nil, err
	}
	offered := false
	for _, slot := range slots {
		if slot == timeSlot {
			offered = true
			break
		}
	}
	if !offered {
		return nil, ErrSlotUnavailable
	}
	st.Date = date
	st.Time = timeSlot
	return st, s.save(ctx, clientID, st)
}

func (s *DefaultWizardService) SetDetails(ctx context.Context, clientID, phone, address string) (*WizardState, error) {
	st, err := s.Current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	st.Phone = phone
	st.Address = address
	return st, s.save(ctx, clientID, st)
}

// Next advances one step. The current step's data must be complete.
func (s *DefaultWizardService) Next(ctx context.Context, clientID string) (*WizardState, error) {
	st, err := s.Current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	switch st.Step {
	case StepSelectTreatment:
		if st.TreatmentID == "" {
			return nil, ErrTreatmentRequired
		}
	case StepSelectDateTime:
		if st.Date == "" || st.Time == "" {
			return nil, ErrScheduleRequired
		}
	case StepConfirmDetails:
		if st.Phone == "" {
			return nil, ErrPhoneRequired
		}
	default:
		return nil, ErrInvalidStep
	}
	st.Step++
	return st, s.save(ctx, clientID, st)
}

func (s *DefaultWizardService) Back(ctx context.Context, clientID string) (*WizardState, error) {
	st, err := s.Current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if st.Step <= StepSelectTreatment {
		return st, nil
	}
	st.Step--
	return st, s.save(ctx, clientID, st)
}

func (s *DefaultWizardService) Confirm(ctx context.Context, clientID string) (*models.Booking, error) {
	st, err := s.Current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if st.TreatmentID == "" {
		return nil, ErrTreatmentRequired
	}
	if st.Date == "" || st.Time == "" {
		return nil, ErrScheduleRequired
	}
	if st.Phone == "" {
		return nil, ErrPhoneRequired
	}

	// Re-check the slot at confirm time, it may have been withdrawn while
	// the wizard sat idle.
	slots, err := s.Availability.SlotsForDate(st.Date)
	if err != nil {
		return nil, err
	}
	offered := false
	for _, slot := range slots {
		if slot == st.Time {
			offered = true
			break
		}
	}
	if !offered {
		return nil, ErrSlotUnavailable
	}

	b := &models.Booking{
		ID:          uuid.NewString(),
		UserID:      st.UserID,
		TreatmentID: st.TreatmentID,
		Date:        st.Date,
		Time:        st.Time,
		Status:      models.BookingStatusPending,
		Phone:       st.Phone,
		Address:     st.Address,
		CreatedAt:   time.Now(),
	}
	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}
	if err := s.Store.Delete(ctx, clientID); err != nil {
		s.logger().Warn("failed to clear wizard session after confirm", zap.Error(err))
	}
	return b, nil
}

func (s *DefaultWizardService) Cancel(ctx context.Context, clientID string) error {
	return s.Store.Delete(ctx, clientID)
}

func (s *DefaultWizardService) save(ctx context.Context, clientID string, st *WizardState) error {
	st.UpdatedAt = time.Now()
	return s.Store.Save(ctx, clientID, st)
}
