package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/events"
	"github.com/Singh-Prajwal/rental/internal/repository"
	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

// TicketService handles ticket creation and reads. Status mutation lives in
// TransitionService and SchedulingService.
type TicketService struct {
	tickets    repository.TicketRepository
	bookings   repository.BookingRepository
	visits     repository.VisitRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	BookingRepo repository.BookingRepository
	VisitRepo   repository.VisitRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	BookingID  string
	PropertyID string
	Issue      string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		bookings:   deps.BookingRepo,
		visits:     deps.VisitRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates an OPEN ticket against an existing booking. Booking
// existence is checked here at write time; the store holds no foreign key.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.SupportTicket, error) {
	issue := strings.TrimSpace(input.Issue)
	if issue == "" {
		return nil, apperrors.NewInvalidInput("issue required", nil)
	}
	if input.BookingID == "" || input.PropertyID == "" {
		return nil, apperrors.NewInvalidInput("booking_id and property_id required", nil)
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, mapBookingErr(err)
	}

	ticket := &domain.SupportTicket{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		PropertyID: input.PropertyID,
		Issue:      issue,
		Status:     domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			BookingID:  ticket.BookingID,
			PropertyID: ticket.PropertyID,
			Issue:      stringPreview(ticket.Issue, 120),
		},
	})
	return ticket, nil
}

// ListTickets returns tickets newest-created-first.
func (s *TicketService) ListTickets(ctx context.Context, limit, offset int) ([]domain.SupportTicket, error) {
	tickets, err := s.tickets.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return tickets, nil
}

// GetTicket fetches a ticket with its visit history.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.SupportTicket, []domain.TechnicianVisit, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, nil, mapTicketErr(err)
	}
	var visits []domain.TechnicianVisit
	if s.visits != nil {
		visits, err = s.visits.ListByTicket(ctx, ticket.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewPersistenceFailure(err)
		}
	}
	return ticket, visits, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
