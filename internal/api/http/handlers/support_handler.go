package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Singh-Prajwal/rental/internal/api/dto"
	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/service"
	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

// SupportHandler manages support ticket endpoints.
type SupportHandler struct {
	tickets     *service.TicketService
	transitions *service.TransitionService
	scheduler   *service.SchedulingService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(tickets *service.TicketService, transitions *service.TransitionService, scheduler *service.SchedulingService) *SupportHandler {
	return &SupportHandler{tickets: tickets, transitions: transitions, scheduler: scheduler}
}

// CreateTicket POST /support.
func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), service.TicketCreateInput{
		BookingID:  req.BookingID,
		PropertyID: req.PropertyID,
		Issue:      req.Issue,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /support.
func (h *SupportHandler) ListTickets(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)

	tickets, err := h.tickets.ListTickets(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /support/:id.
func (h *SupportHandler) GetTicket(c *fiber.Ctx) error {
	ticket, visits, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	detail := dto.TicketDetailResponse{
		TicketResponse: ticketResponse(ticket),
		Visits:         make([]dto.VisitResponse, 0, len(visits)),
	}
	for i := range visits {
		detail.Visits = append(detail.Visits, visitResponse(&visits[i]))
	}
	return c.JSON(fiber.Map{"data": detail})
}

// TransitionTicket PATCH /support/:id.
func (h *SupportHandler) TransitionTicket(c *fiber.Ctx) error {
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.ExpectedVersion == nil {
		return apperrors.NewInvalidInput("expected_version required", nil)
	}

	ticket, err := h.transitions.TransitionTicket(c.UserContext(), c.Params("id"), domain.TicketStatus(req.Status), *req.ExpectedVersion)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ScheduleVisit POST /support/:id/visits.
func (h *SupportHandler) ScheduleVisit(c *fiber.Ctx) error {
	var req dto.ScheduleVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.ExpectedVersion == nil {
		return apperrors.NewInvalidInput("expected_version required", nil)
	}

	result, err := h.scheduler.ScheduleVisit(c.UserContext(), service.ScheduleVisitInput{
		TicketID:        c.Params("id"),
		TechnicianName:  req.TechnicianName,
		ScheduledAt:     req.ScheduledAt,
		Notes:           req.Notes,
		ExpectedVersion: *req.ExpectedVersion,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ScheduleVisitResponse{
		Visit:  visitResponse(result.Visit),
		Ticket: ticketResponse(result.Ticket),
	}})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.SupportTicket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		BookingID:     ticket.BookingID,
		PropertyID:    ticket.PropertyID,
		Issue:         ticket.Issue,
		Status:        ticket.Status,
		ActiveVisitID: ticket.ActiveVisitID,
		Version:       ticket.Version,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

func visitResponse(visit *domain.TechnicianVisit) dto.VisitResponse {
	return dto.VisitResponse{
		ID:             visit.ID,
		TicketID:       visit.TicketID,
		TechnicianName: visit.TechnicianName,
		ScheduledAt:    visit.ScheduledAt,
		Notes:          visit.Notes,
		CreatedAt:      visit.CreatedAt,
	}
}
