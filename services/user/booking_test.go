package user

import (
	"errors"
	"testing"

	"glowbook/models"
)

// fakeBookingRepo is an in-memory booking repository.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	statErr  error
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetAll() ([]models.Booking, error) { return nil, nil }

func (r *fakeBookingRepo) GetByUserID(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(id, status string) error {
	if r.statErr != nil {
		return r.statErr
	}
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) UpdateTime(id, timeSlot string) error {
	if b, ok := r.bookings[id]; ok {
		b.Time = timeSlot
	}
	return nil
}

func TestCancelBooking(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		bookingID string
		status    string
		wantErr   error
	}{
		{name: "pending booking cancelled", userID: "u1", bookingID: "b1", status: models.BookingStatusPending},
		{name: "confirmed booking cancelled", userID: "u1", bookingID: "b1", status: models.BookingStatusConfirmed},
		{name: "already cancelled rejected", userID: "u1", bookingID: "b1", status: models.BookingStatusCancelled, wantErr: ErrBookingCancelled},
		{name: "someone else's booking looks absent", userID: "u2", bookingID: "b1", status: models.BookingStatusPending, wantErr: ErrBookingNotFound},
		{name: "unknown booking", userID: "u1", bookingID: "nope", status: models.BookingStatusPending, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo(&models.Booking{
				ID:          "b1",
				UserID:      "u1",
				TreatmentID: "gel_fill",
				Date:        "2026-04-02",
				Time:        "10:00",
				Status:      tt.status,
			})
			svc := &DefaultUserService{Bookings: repo}

			b, err := svc.CancelBooking(tt.userID, tt.bookingID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CancelBooking error = %v, want %v", err, tt.wantErr)
				}
				if stored := repo.bookings["b1"]; stored.Status != tt.status {
					t.Fatalf("booking status changed to %q despite failure", stored.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("CancelBooking failed: %v", err)
			}
			if b.Status != models.BookingStatusCancelled {
				t.Fatalf("returned status = %q, want cancelled", b.Status)
			}
			if stored := repo.bookings["b1"]; stored.Status != models.BookingStatusCancelled {
				t.Fatalf("stored status = %q, want cancelled", stored.Status)
			}
		})
	}
}

func TestCancelBookingPropagatesRepoFailure(t *testing.T) {
	repo := newFakeBookingRepo(&models.Booking{ID: "b1", UserID: "u1", Status: models.BookingStatusPending})
	repo.statErr = errors.New("write failed")
	svc := &DefaultUserService{Bookings: repo}

	if _, err := svc.CancelBooking("u1", "b1"); err == nil {
		t.Fatal("expected the repository failure to surface")
	}
}
