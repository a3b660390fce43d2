package models

import "time"

// DayAvailability is the admin-configured slot list for one calendar date.
// Absence of a record, or an empty slot list, means the day is closed.
type DayAvailability struct {
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slots     []string  `bson:"slots" json:"slots"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// SlotCatalog lists every time label an admin may open for a day.
// The 13:00 hour is skipped for the lunch break.
var SlotCatalog = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// ValidSlot reports whether label is part of the catalog.
func ValidSlot(label string) bool {
	for _, s := range SlotCatalog {
		if s == label {
			return true
		}
	}
	return false
}
