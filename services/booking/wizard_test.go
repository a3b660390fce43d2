package booking

import (
	"context"
	"errors"
	"testing"

	"glowbook/models"
	"glowbook/services/availability"
)

// fakeAvailability serves a fixed per-date slot table.
type fakeAvailability struct {
	open map[string][]string
}

func (f *fakeAvailability) SetDay(string, []string) (*models.DayAvailability, error) { return nil, nil }
func (f *fakeAvailability) ClearDay(string) error                                    { return nil }
func (f *fakeAvailability) GetAll() ([]models.DayAvailability, error)                { return nil, nil }

func (f *fakeAvailability) SlotsForDate(date string) ([]string, error) {
	return f.open[date], nil
}

func (f *fakeAvailability) IsDayDisabled(date string) (bool, error) {
	return len(f.open[date]) == 0, nil
}

var _ availability.Service = (*fakeAvailability)(nil)

// fakeBookingRepo records created bookings.
type fakeBookingRepo struct {
	created []models.Booking
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.created = append(r.created, *b)
	return nil
}
func (r *fakeBookingRepo) GetByID(string) (*models.Booking, error)      { return nil, nil }
func (r *fakeBookingRepo) GetAll() ([]models.Booking, error)            { return nil, nil }
func (r *fakeBookingRepo) GetByUserID(string) ([]models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) UpdateStatus(string, string) error            { return nil }
func (r *fakeBookingRepo) UpdateTime(string, string) error              { return nil }

func newWizard(repo *fakeBookingRepo) *DefaultWizardService {
	return &DefaultWizardService{
		Store:    NewMemoryWizardStore(),
		Bookings: repo,
		Availability: &fakeAvailability{open: map[string][]string{
			"2026-03-15": {"09:00", "14:00"},
		}},
	}
}

const clientID = "client-1"

func startedWizard(t *testing.T, svc *DefaultWizardService) context.Context {
	t.Helper()
	ctx := context.Background()
	u := &models.User{ID: "u1", Phone: "333 1234567"}
	if _, err := svc.Start(ctx, clientID, u); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return ctx
}

func TestStartPrefillsPhone(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	st, err := svc.Current(ctx, clientID)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if st.Step != StepSelectTreatment {
		t.Fatalf("expected first step, got %d", st.Step)
	}
	if st.Phone != "333 1234567" {
		t.Fatalf("phone not prefilled: %q", st.Phone)
	}
}

func TestCurrentWithoutWizard(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	if _, err := svc.Current(context.Background(), "nobody"); !errors.Is(err, ErrWizardNotFound) {
		t.Fatalf("expected ErrWizardNotFound, got %v", err)
	}
}

func TestNextGuardsEachStep(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	// Step 1 without a treatment.
	if _, err := svc.Next(ctx, clientID); !errors.Is(err, ErrTreatmentRequired) {
		t.Fatalf("expected ErrTreatmentRequired, got %v", err)
	}

	if _, err := svc.SelectTreatment(ctx, clientID, "gel_fill"); err != nil {
		t.Fatalf("SelectTreatment failed: %v", err)
	}
	if _, err := svc.Next(ctx, clientID); err != nil {
		t.Fatalf("Next to step 2 failed: %v", err)
	}

	// Step 2 without a schedule.
	if _, err := svc.Next(ctx, clientID); !errors.Is(err, ErrScheduleRequired) {
		t.Fatalf("expected ErrScheduleRequired, got %v", err)
	}

	if _, err := svc.SelectDateTime(ctx, clientID, "2026-03-15", "09:00"); err != nil {
		t.Fatalf("SelectDateTime failed: %v", err)
	}
	if _, err := svc.Next(ctx, clientID); err != nil {
		t.Fatalf("Next to step 3 failed: %v", err)
	}

	// Step 3 without a phone.
	if _, err := svc.SetDetails(ctx, clientID, "", ""); err != nil {
		t.Fatalf("SetDetails failed: %v", err)
	}
	if _, err := svc.Next(ctx, clientID); !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}

	if _, err := svc.SetDetails(ctx, clientID, "333 1234567", "Via Roma 1"); err != nil {
		t.Fatalf("SetDetails failed: %v", err)
	}
	st, err := svc.Next(ctx, clientID)
	if err != nil {
		t.Fatalf("Next to done failed: %v", err)
	}
	if st.Step != StepDone {
		t.Fatalf("expected done step, got %d", st.Step)
	}
}

func TestSelectTreatmentUnknown(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	if _, err := svc.SelectTreatment(ctx, clientID, "massage"); !errors.Is(err, ErrInvalidTreatment) {
		t.Fatalf("expected ErrInvalidTreatment, got %v", err)
	}
}

func TestSelectDateTimeValidation(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	if _, err := svc.SelectDateTime(ctx, clientID, "2026-03-16", "09:00"); !errors.Is(err, ErrDayUnavailable) {
		t.Fatalf("expected ErrDayUnavailable, got %v", err)
	}
	if _, err := svc.SelectDateTime(ctx, clientID, "2026-03-15", "17:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestBackStopsAtFirstStep(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	st, err := svc.Back(ctx, clientID)
	if err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if st.Step != StepSelectTreatment {
		t.Fatalf("Back moved before the first step: %d", st.Step)
	}
}

func TestConfirmCreatesPendingBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newWizard(repo)
	ctx := startedWizard(t, svc)

	if _, err := svc.SelectTreatment(ctx, clientID, "nail_reconstruction"); err != nil {
		t.Fatalf("SelectTreatment failed: %v", err)
	}
	if _, err := svc.SelectDateTime(ctx, clientID, "2026-03-15", "14:00"); err != nil {
		t.Fatalf("SelectDateTime failed: %v", err)
	}

	b, err := svc.Confirm(ctx, clientID)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("expected pending booking, got %s", b.Status)
	}
	if b.UserID != "u1" || b.TreatmentID != "nail_reconstruction" || b.Date != "2026-03-15" || b.Time != "14:00" {
		t.Fatalf("booking fields wrong: %+v", b)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one stored booking, got %d", len(repo.created))
	}

	// The wizard session is gone after confirmation.
	if _, err := svc.Current(ctx, clientID); !errors.Is(err, ErrWizardNotFound) {
		t.Fatalf("wizard survived confirmation: %v", err)
	}
}

func TestConfirmRequiresPhone(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	if _, err := svc.SelectTreatment(ctx, clientID, "gel_fill"); err != nil {
		t.Fatalf("SelectTreatment failed: %v", err)
	}
	if _, err := svc.SelectDateTime(ctx, clientID, "2026-03-15", "09:00"); err != nil {
		t.Fatalf("SelectDateTime failed: %v", err)
	}
	if _, err := svc.SetDetails(ctx, clientID, "", ""); err != nil {
		t.Fatalf("SetDetails failed: %v", err)
	}

	if _, err := svc.Confirm(ctx, clientID); !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
}

func TestConfirmRechecksSlot(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	if _, err := svc.SelectTreatment(ctx, clientID, "gel_fill"); err != nil {
		t.Fatalf("SelectTreatment failed: %v", err)
	}
	if _, err := svc.SelectDateTime(ctx, clientID, "2026-03-15", "09:00"); err != nil {
		t.Fatalf("SelectDateTime failed: %v", err)
	}

	// The slot is withdrawn while the wizard sits idle.
	svc.Availability.(*fakeAvailability).open["2026-03-15"] = []string{"14:00"}

	if _, err := svc.Confirm(ctx, clientID); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestCancelDropsWizard(t *testing.T) {
	svc := newWizard(&fakeBookingRepo{})
	ctx := startedWizard(t, svc)

	if err := svc.Cancel(ctx, clientID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if _, err := svc.Current(ctx, clientID); !errors.Is(err, ErrWizardNotFound) {
		t.Fatalf("wizard survived cancel: %v", err)
	}
}
