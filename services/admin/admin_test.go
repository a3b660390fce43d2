package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"glowbook/models"
	"glowbook/services/notification"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory booking store.
type fakeBookingRepo struct {
	bookings map[string]models.Booking
	order    []string
}

func newFakeBookingRepo(bookings ...models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
		r.order = append(r.order, b.ID)
	}
	return r
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.bookings[b.ID] = *b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) GetAll() ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bookings[id])
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByUserID(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, id := range r.order {
		if r.bookings[id].UserID == userID {
			out = append(out, r.bookings[id])
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(id, status string) error {
	b := r.bookings[id]
	b.Status = status
	r.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) UpdateTime(id, timeSlot string) error {
	b := r.bookings[id]
	b.Time = timeSlot
	r.bookings[id] = b
	return nil
}

// fakeUserRepo serves a fixed user set and can be told to fail lookups.
type fakeUserRepo struct {
	users   map[string]models.User
	manyErr error
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(string) (*models.User, error)    { return nil, nil }
func (r *fakeUserRepo) GetByUsername(string) (*models.User, error) { return nil, nil }

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetManyByIDs(ids []string) ([]models.User, error) {
	if r.manyErr != nil {
		return nil, r.manyErr
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(*models.User) error { return nil }
func (r *fakeUserRepo) Delete(string) error       { return nil }
func (r *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.GetByID(id)
}
func (r *fakeUserRepo) UpdateSetDocument(string, bson.M) error { return nil }

// recordingDispatcher captures dispatched notifications.
type recordingDispatcher struct {
	sent      []notification.Payload
	scheduled []notification.Payload
}

func (d *recordingDispatcher) Dispatch(_ context.Context, p notification.Payload) error {
	d.sent = append(d.sent, p)
	return nil
}

func (d *recordingDispatcher) DispatchAt(_ context.Context, p notification.Payload, _ time.Time) error {
	d.scheduled = append(d.scheduled, p)
	return nil
}

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ID: "b1", UserID: "u1", TreatmentID: "gel_fill", Date: "2026-03-15", Time: "09:00", Status: models.BookingStatusPending},
		{ID: "b2", UserID: "u2", TreatmentID: "nail_reconstruction", Date: "2026-03-15", Time: "14:00", Status: models.BookingStatusConfirmed},
		{ID: "b3", UserID: "u1", TreatmentID: "gel_fill", Date: "2026-03-16", Time: "10:00", Status: models.BookingStatusConfirmed},
		{ID: "b4", UserID: "u3", TreatmentID: "pedi_semi", Date: "2026-03-16", Time: "11:00", Status: models.BookingStatusCancelled},
	}
}

func sampleUsers() map[string]models.User {
	return map[string]models.User{
		"u1": {ID: "u1", FullName: "Anna Bianchi", Email: "anna@example.com", FCMToken: "tok-1"},
		"u2": {ID: "u2", FullName: "Giulia Verdi", Email: "giulia@example.com"},
	}
}

func newAdmin(bookings *fakeBookingRepo, users *fakeUserRepo, d notification.Dispatcher) *DefaultService {
	return &DefaultService{Bookings: bookings, Users: users, Notify: d}
}

func TestListBookingsJoinsClients(t *testing.T) {
	svc := newAdmin(newFakeBookingRepo(sampleBookings()...), &fakeUserRepo{users: sampleUsers()}, nil)

	views, err := svc.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if len(views) != 4 {
		t.Fatalf("expected 4 bookings, got %d", len(views))
	}
	if views[0].UserName != "Anna Bianchi" || views[0].UserEmail != "anna@example.com" {
		t.Fatalf("join missing for %+v", views[0])
	}
	// u3 has no account record anymore, the ledger still renders it.
	if views[3].UserName == "" {
		t.Fatal("missing client not given a fallback label")
	}
	if views[3].UserEmail != "" {
		t.Fatalf("missing client got an email: %q", views[3].UserEmail)
	}
}

func TestListBookingsSurvivesJoinFailure(t *testing.T) {
	users := &fakeUserRepo{users: sampleUsers(), manyErr: errors.New("db down")}
	svc := newAdmin(newFakeBookingRepo(sampleBookings()...), users, nil)

	views, err := svc.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	for _, v := range views {
		if v.UserName == "" {
			t.Fatalf("no fallback label for %+v", v)
		}
	}
}

func TestFilterBookings(t *testing.T) {
	views := []models.BookingView{
		{Booking: models.Booking{ID: "b1", Date: "2026-03-15", TreatmentID: "gel_fill"}},
		{Booking: models.Booking{ID: "b2", Date: "2026-03-15", TreatmentID: "pedi_semi"}},
		{Booking: models.Booking{ID: "b3", Date: "2026-03-16", TreatmentID: "gel_fill"}},
	}

	tests := []struct {
		name      string
		date      string
		treatment string
		wantIDs   []string
	}{
		{name: "no filters", wantIDs: []string{"b1", "b2", "b3"}},
		{name: "by date", date: "2026-03-15", wantIDs: []string{"b1", "b2"}},
		{name: "by treatment", treatment: "gel_fill", wantIDs: []string{"b1", "b3"}},
		{name: "both filters", date: "2026-03-15", treatment: "gel_fill", wantIDs: []string{"b1"}},
		{name: "no match", date: "2026-03-17", wantIDs: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterBookings(views, tc.date, tc.treatment)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("expected %v, got %+v", tc.wantIDs, got)
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Fatalf("expected %v, got %+v", tc.wantIDs, got)
				}
			}
		})
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		status    string
		wantErr   error
	}{
		{name: "confirm pending", bookingID: "b1", status: models.BookingStatusConfirmed},
		{name: "cancel pending", bookingID: "b1", status: models.BookingStatusCancelled},
		{name: "already confirmed", bookingID: "b2", status: models.BookingStatusCancelled, wantErr: ErrNotPending},
		{name: "back to pending rejected", bookingID: "b1", status: models.BookingStatusPending, wantErr: ErrInvalidTransition},
		{name: "unknown booking", bookingID: "nope", status: models.BookingStatusConfirmed, wantErr: ErrBookingNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeBookingRepo(sampleBookings()...)
			d := &recordingDispatcher{}
			svc := newAdmin(repo, &fakeUserRepo{users: sampleUsers()}, d)

			b, err := svc.UpdateBookingStatus(context.Background(), tc.bookingID, tc.status)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if len(d.sent) != 0 {
					t.Fatal("notification dispatched on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateBookingStatus failed: %v", err)
			}
			if b.Status != tc.status {
				t.Fatalf("status not applied: %s", b.Status)
			}
			if len(d.sent) != 1 {
				t.Fatalf("expected one notification, got %d", len(d.sent))
			}
			wantKind := notification.KindConfirmed
			if tc.status == models.BookingStatusCancelled {
				wantKind = notification.KindCancelled
			}
			if d.sent[0].Kind != wantKind {
				t.Fatalf("expected %s notification, got %s", wantKind, d.sent[0].Kind)
			}
			if d.sent[0].Email != "anna@example.com" {
				t.Fatalf("notification to wrong client: %s", d.sent[0].Email)
			}
			// Treatment names are resolved for the message body.
			if d.sent[0].TreatmentName != "Refill/Copertura in Gel" {
				t.Fatalf("treatment name not resolved: %s", d.sent[0].TreatmentName)
			}
		})
	}
}

func TestRescheduleBooking(t *testing.T) {
	repo := newFakeBookingRepo(sampleBookings()...)
	d := &recordingDispatcher{}
	svc := newAdmin(repo, &fakeUserRepo{users: sampleUsers()}, d)

	b, err := svc.RescheduleBooking(context.Background(), "b2", "16:00")
	if err != nil {
		t.Fatalf("RescheduleBooking failed: %v", err)
	}
	if b.Time != "16:00" {
		t.Fatalf("time not applied: %s", b.Time)
	}
	if len(d.sent) != 1 || d.sent[0].Kind != notification.KindRescheduled {
		t.Fatalf("expected rescheduled notification, got %+v", d.sent)
	}

	if _, err := svc.RescheduleBooking(context.Background(), "b2", "13:00"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if _, err := svc.RescheduleBooking(context.Background(), "b4", "16:00"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for cancelled booking, got %v", err)
	}
}

func TestConfirmSchedulesReminder(t *testing.T) {
	future := time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	repo := newFakeBookingRepo(models.Booking{
		ID: "b9", UserID: "u1", TreatmentID: "mani_semi",
		Date: future, Time: "10:00", Status: models.BookingStatusPending,
	})
	d := &recordingDispatcher{}
	svc := newAdmin(repo, &fakeUserRepo{users: sampleUsers()}, d)

	if _, err := svc.UpdateBookingStatus(context.Background(), "b9", models.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if len(d.scheduled) != 1 || d.scheduled[0].Kind != notification.KindReminder {
		t.Fatalf("expected one scheduled reminder, got %+v", d.scheduled)
	}
}

func TestCancelDoesNotScheduleReminder(t *testing.T) {
	future := time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	repo := newFakeBookingRepo(models.Booking{
		ID: "b9", UserID: "u1", TreatmentID: "mani_semi",
		Date: future, Time: "10:00", Status: models.BookingStatusPending,
	})
	d := &recordingDispatcher{}
	svc := newAdmin(repo, &fakeUserRepo{users: sampleUsers()}, d)

	if _, err := svc.UpdateBookingStatus(context.Background(), "b9", models.BookingStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(d.scheduled) != 0 {
		t.Fatalf("reminder scheduled for a cancelled booking: %+v", d.scheduled)
	}
}

func TestComputeTreatmentStats(t *testing.T) {
	stats := ComputeTreatmentStats(sampleBookings())

	byID := make(map[string]models.TreatmentStat, len(stats))
	for _, s := range stats {
		byID[s.TreatmentID] = s
	}

	if byID["gel_fill"].Count != 1 {
		t.Fatalf("gel_fill: expected 1 confirmed, got %d", byID["gel_fill"].Count)
	}
	if byID["nail_reconstruction"].Count != 1 {
		t.Fatalf("nail_reconstruction: expected 1, got %d", byID["nail_reconstruction"].Count)
	}
	// Pending and cancelled bookings never count.
	if byID["pedi_semi"].Count != 0 {
		t.Fatalf("pedi_semi: expected 0, got %d", byID["pedi_semi"].Count)
	}
	// Every catalog treatment appears, even unused ones.
	if len(stats) != len(models.Treatments) {
		t.Fatalf("expected %d stats rows, got %d", len(models.Treatments), len(stats))
	}
}
