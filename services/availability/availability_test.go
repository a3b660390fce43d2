package availability

import (
	"errors"
	"testing"
	"time"

	"glowbook/models"
)

// fakeRepo is an in-memory availability repository.
type fakeRepo struct {
	days     map[string]models.DayAvailability
	getCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{days: make(map[string]models.DayAvailability)}
}

func (r *fakeRepo) Upsert(day *models.DayAvailability) error {
	r.days[day.Date] = *day
	return nil
}

func (r *fakeRepo) GetByDate(date string) (*models.DayAvailability, error) {
	r.getCalls++
	d, ok := r.days[date]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeRepo) GetAll() ([]models.DayAvailability, error) {
	out := make([]models.DayAvailability, 0, len(r.days))
	for _, d := range r.days {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeRepo) Delete(date string) error {
	delete(r.days, date)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
}

func newService(repo *fakeRepo) *DefaultService {
	return &DefaultService{Repo: repo, Now: fixedNow}
}

func TestSetDayNormalizesToCatalogOrder(t *testing.T) {
	svc := newService(newFakeRepo())

	day, err := svc.SetDay("2026-03-15", []string{"14:00", "09:00", "14:00"})
	if err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	want := []string{"09:00", "14:00"}
	if len(day.Slots) != len(want) {
		t.Fatalf("expected %v, got %v", want, day.Slots)
	}
	for i := range want {
		if day.Slots[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, day.Slots)
		}
	}
}

func TestSetDayRejections(t *testing.T) {
	svc := newService(newFakeRepo())

	tests := []struct {
		name    string
		date    string
		slots   []string
		wantErr error
	}{
		{name: "malformed date", date: "15/03/2026", slots: nil, wantErr: ErrInvalidDate},
		{name: "past date", date: "2026-03-09", slots: []string{"09:00"}, wantErr: ErrPastDate},
		{name: "slot outside catalog", date: "2026-03-15", slots: []string{"13:00"}, wantErr: ErrUnknownSlot},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SetDay(tc.date, tc.slots); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSetDayTodayAllowed(t *testing.T) {
	svc := newService(newFakeRepo())
	if _, err := svc.SetDay("2026-03-10", []string{"17:00"}); err != nil {
		t.Fatalf("today should be editable: %v", err)
	}
}

func TestIsDayDisabled(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	if _, err := svc.SetDay("2026-03-15", []string{"09:00", "14:00"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := svc.SetDay("2026-03-16", []string{}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "open day", date: "2026-03-15", want: false},
		{name: "explicitly emptied day", date: "2026-03-16", want: true},
		{name: "never configured day", date: "2026-03-20", want: true},
		{name: "past day", date: "2026-03-01", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsDayDisabled(tc.date)
			if err != nil {
				t.Fatalf("IsDayDisabled failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsDayDisabled(%s) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestSlotsForDateAbsentDay(t *testing.T) {
	svc := newService(newFakeRepo())
	slots, err := svc.SlotsForDate("2026-04-01")
	if err != nil {
		t.Fatalf("SlotsForDate failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestClearDay(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	if _, err := svc.SetDay("2026-03-15", []string{"09:00"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := svc.ClearDay("2026-03-15"); err != nil {
		t.Fatalf("ClearDay failed: %v", err)
	}
	disabled, err := svc.IsDayDisabled("2026-03-15")
	if err != nil || !disabled {
		t.Fatalf("cleared day still enabled (disabled=%v, err=%v)", disabled, err)
	}
	// Clearing an absent day is not an error.
	if err := svc.ClearDay("2026-03-15"); err != nil {
		t.Fatalf("double clear failed: %v", err)
	}
}

func TestGetAllSortedByDate(t *testing.T) {
	svc := newService(newFakeRepo())
	for _, d := range []string{"2026-03-20", "2026-03-12", "2026-03-15"} {
		if _, err := svc.SetDay(d, []string{"09:00"}); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	days, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	for i := 1; i < len(days); i++ {
		if days[i-1].Date > days[i].Date {
			t.Fatalf("days not sorted: %v", days)
		}
	}
}

func TestCachedReadsSkipRepository(t *testing.T) {
	repo := newFakeRepo()
	cache := NewMemoryDayCache()
	svc := &DefaultService{Repo: repo, Cache: cache, Now: fixedNow}

	if _, err := svc.SetDay("2026-03-15", []string{"09:00", "14:00"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	// SetDay writes through, so reads should never reach the repository.
	for i := 0; i < 3; i++ {
		slots, err := svc.SlotsForDate("2026-03-15")
		if err != nil {
			t.Fatalf("SlotsForDate failed: %v", err)
		}
		if len(slots) != 2 || slots[0] != "09:00" || slots[1] != "14:00" {
			t.Fatalf("unexpected slots: %v", slots)
		}
	}
	if repo.getCalls != 0 {
		t.Fatalf("repository consulted %d times despite warm cache", repo.getCalls)
	}
}

func TestCacheWarmedOnFirstMiss(t *testing.T) {
	repo := newFakeRepo()
	repo.days["2026-03-15"] = models.DayAvailability{Date: "2026-03-15", Slots: []string{"10:00"}}
	svc := &DefaultService{Repo: repo, Cache: NewMemoryDayCache(), Now: fixedNow}

	for i := 0; i < 3; i++ {
		disabled, err := svc.IsDayDisabled("2026-03-15")
		if err != nil || disabled {
			t.Fatalf("day unexpectedly disabled (disabled=%v, err=%v)", disabled, err)
		}
	}
	if repo.getCalls != 1 {
		t.Fatalf("repository consulted %d times, want 1", repo.getCalls)
	}
}

func TestClearDayEvictsCache(t *testing.T) {
	repo := newFakeRepo()
	cache := NewMemoryDayCache()
	svc := &DefaultService{Repo: repo, Cache: cache, Now: fixedNow}

	if _, err := svc.SetDay("2026-03-15", []string{"09:00"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := svc.ClearDay("2026-03-15"); err != nil {
		t.Fatalf("ClearDay failed: %v", err)
	}

	if _, ok := cache.Get("2026-03-15"); ok {
		t.Fatal("cache still holds the cleared day")
	}
	slots, err := svc.SlotsForDate("2026-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("cleared day still offers slots: %v", slots)
	}
}
