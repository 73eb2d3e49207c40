package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Singh-Prajwal/rental/internal/api/dto"
	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/service"
	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

// BookingsHandler manages booking endpoints.
type BookingsHandler struct {
	bookings    *service.BookingService
	transitions *service.TransitionService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService, transitions *service.TransitionService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings, transitions: transitions}
}

// CreateBooking POST /bookings.
func (h *BookingsHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	booking, err := h.bookings.CreateBooking(c.UserContext(), service.BookingCreateInput{
		PropertyID:   req.PropertyID,
		GuestID:      req.GuestID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": bookingResponse(booking)})
}

// GetBooking GET /bookings/:id.
func (h *BookingsHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.bookings.GetBooking(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

// TransitionBooking PATCH /bookings/:id.
func (h *BookingsHandler) TransitionBooking(c *fiber.Ctx) error {
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.ExpectedVersion == nil {
		return apperrors.NewInvalidInput("expected_version required", nil)
	}

	booking, err := h.transitions.TransitionBooking(c.UserContext(), c.Params("id"), domain.BookingStatus(req.Status), *req.ExpectedVersion)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bookingResponse(booking)})
}

func bookingResponse(booking *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:           booking.ID,
		PropertyID:   booking.PropertyID,
		GuestID:      booking.GuestID,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Status:       booking.Status,
		Version:      booking.Version,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}
