package dto

import (
	"time"

	"github.com/Singh-Prajwal/rental/internal/domain"
)

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	PropertyID   string    `json:"property_id"`
	GuestID      string    `json:"guest_id"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
}

// BookingResponse response body.
type BookingResponse struct {
	ID           string               `json:"id"`
	PropertyID   string               `json:"property_id"`
	GuestID      string               `json:"guest_id"`
	CheckInDate  time.Time            `json:"check_in_date"`
	CheckOutDate time.Time            `json:"check_out_date"`
	Status       domain.BookingStatus `json:"status"`
	Version      int64                `json:"version"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}
