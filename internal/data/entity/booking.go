package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Blocking reports whether a booking in this status holds its slot.
// Pending bookings block so a slot cannot be sold twice while payment
// verification is outstanding; cancelled and completed bookings free it.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusPaid
}

// Terminal statuses are never transitioned out of.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

type Booking struct {
	Base
	ReferenceCode string        `db:"reference_code"`
	UserID        uuid.UUID     `db:"user_id"`
	CourtID       uuid.UUID     `db:"court_id"`
	BookingDate   time.Time     `db:"booking_date"`
	StartTime     string        `db:"start_time"` // "HH:MM:SS"
	EndTime       string        `db:"end_time"`   // "HH:MM:SS"
	TotalAmount   float64       `db:"total_amount"`
	Status        BookingStatus `db:"status"`
	ExpiresAt     time.Time     `db:"expires_at"`
}
