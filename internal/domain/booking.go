package domain

import "time"

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a guest reservation against a property for a date range.
// Status is mutated only through the transition engine; Version guards
// every write (optimistic concurrency).
type Booking struct {
	ID           string
	PropertyID   string
	GuestID      string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       BookingStatus
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
