package availabilityRepo

import (
	"glowbook/models"
)

// AvailabilityRepository defines methods for per-date slot data access.
type AvailabilityRepository interface {
	// Upsert stores the whole slot list for one date, replacing any
	// existing record (keyed by date).
	Upsert(day *models.DayAvailability) error
	// GetByDate retrieves the record for one date. Returns (nil, nil) when
	// no record exists.
	GetByDate(date string) (*models.DayAvailability, error)
	// GetAll retrieves every configured day.
	GetAll() ([]models.DayAvailability, error)
	// Delete removes the record for one date. Deleting an absent date is
	// not an error.
	Delete(date string) error
}
