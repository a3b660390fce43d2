// Package availability manages the per-day slot offering the admin curates
// and the booking flow reads.
package availability

import (
	"errors"
	"sort"
	"time"

	availabilityRepo "glowbook/database/repository/availability"
	"glowbook/models"
)

var (
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
	ErrPastDate    = errors.New("cannot edit availability for a past date")
	ErrUnknownSlot = errors.New("slot is not part of the offered catalog")
)

// Service curates and reads day availability.
type Service interface {
	// SetDay replaces the offered slots for a date. An empty slice disables
	// the day explicitly.
	SetDay(date string, slots []string) (*models.DayAvailability, error)
	// ClearDay removes the availability record for a date.
	ClearDay(date string) error
	GetAll() ([]models.DayAvailability, error)
	// SlotsForDate returns the offered slots for a date, empty when the day
	// has no record.
	SlotsForDate(date string) ([]string, error)
	// IsDayDisabled reports whether the date is not bookable: past, never
	// configured, or configured with no slots.
	IsDayDisabled(date string) (bool, error)
}

// DefaultService backs Service with the availability repository. Cache is
// optional and consulted before the repository on reads. Now is injectable
// for tests and defaults to time.Now.
type DefaultService struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache DayCache
	Now   func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// parseDate validates the YYYY-MM-DD form and returns the day at midnight.
func parseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (s *DefaultService) isPast(day time.Time) bool {
	today := s.now()
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return day.Before(todayMidnight)
}

func (s *DefaultService) SetDay(date string, slots []string) (*models.DayAvailability, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if s.isPast(day) {
		return nil, ErrPastDate
	}

	// Deduplicate against the catalog and keep catalog order.
	offered := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if !models.ValidSlot(slot) {
			return nil, ErrUnknownSlot
		}
		offered[slot] = true
	}
	normalized := make([]string, 0, len(offered))
	for _, slot := range models.SlotCatalog {
		if offered[slot] {
			normalized = append(normalized, slot)
		}
	}

	record := &models.DayAvailability{
		Date:      date,
		Slots:     normalized,
		UpdatedAt: s.now(),
	}
	if err := s.Repo.Upsert(record); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(date, *record)
	}
	return record, nil
}

func (s *DefaultService) ClearDay(date string) error {
	if _, err := parseDate(date); err != nil {
		return err
	}
	if err := s.Repo.Delete(date); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Delete(date)
	}
	return nil
}

// getDay reads a day record through the cache. Only existing records are
// cached; unconfigured days always consult the repository.
func (s *DefaultService) getDay(date string) (*models.DayAvailability, error) {
	if s.Cache != nil {
		if day, ok := s.Cache.Get(date); ok {
			return day, nil
		}
	}
	record, err := s.Repo.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if record != nil && s.Cache != nil {
		s.Cache.Set(date, *record)
	}
	return record, nil
}

func (s *DefaultService) GetAll() ([]models.DayAvailability, error) {
	records, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records, nil
}

func (s *DefaultService) SlotsForDate(date string) ([]string, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	record, err := s.getDay(date)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []string{}, nil
	}
	return record.Slots, nil
}

func (s *DefaultService) IsDayDisabled(date string) (bool, error) {
	day, err := parseDate(date)
	if err != nil {
		return false, err
	}
	if s.isPast(day) {
		return true, nil
	}
	record, err := s.getDay(date)
	if err != nil {
		return false, err
	}
	return record == nil || len(record.Slots) == 0, nil
}
