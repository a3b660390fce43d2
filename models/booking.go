package models

import "time"

// Booking status values. A new request starts pending; the admin moves it
// to confirmed or cancelled.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a treatment request made through the wizard.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	TreatmentID string    `bson:"treatment_id" json:"treatmentId"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time        string    `bson:"time" json:"time"` // "HH:MM"
	Status      string    `bson:"status" json:"status"`
	Phone       string    `bson:"phone" json:"phone"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// BookingView is a booking joined in memory with its owner's profile for
// the admin dashboard.
type BookingView struct {
	Booking
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// TreatmentStat counts confirmed bookings for one catalog entry.
type TreatmentStat struct {
	TreatmentID string `json:"treatmentId"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
}
