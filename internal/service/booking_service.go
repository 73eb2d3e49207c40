package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/repository"
	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

// BookingService creates and reads bookings. It never touches status beyond
// the initial PENDING; transitions go through TransitionService.
type BookingService struct {
	bookings repository.BookingRepository
}

// BookingCreateInput describes booking creation payload.
type BookingCreateInput struct {
	PropertyID   string
	GuestID      string
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// NewBookingService constructs the service.
func NewBookingService(bookings repository.BookingRepository) *BookingService {
	return &BookingService{bookings: bookings}
}

// CreateBooking creates a PENDING booking for a property and date range.
func (s *BookingService) CreateBooking(ctx context.Context, input BookingCreateInput) (*domain.Booking, error) {
	if input.PropertyID == "" || input.GuestID == "" {
		return nil, apperrors.NewInvalidInput("property_id and guest_id required", nil)
	}
	if input.CheckInDate.IsZero() || input.CheckOutDate.IsZero() {
		return nil, apperrors.NewInvalidInput("check_in_date and check_out_date required", nil)
	}
	if !input.CheckInDate.Before(input.CheckOutDate) {
		return nil, apperrors.NewInvalidInput("check_in_date must precede check_out_date", nil)
	}

	booking := &domain.Booking{
		ID:           uuid.NewString(),
		PropertyID:   input.PropertyID,
		GuestID:      input.GuestID,
		CheckInDate:  input.CheckInDate,
		CheckOutDate: input.CheckOutDate,
		Status:       domain.BookingStatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return booking, nil
}

// GetBooking fetches a booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, mapBookingErr(err)
	}
	return booking, nil
}
