package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/events"
	"github.com/Singh-Prajwal/rental/internal/repository"
	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

// SchedulingService composes a technician visit creation with a ticket
// status advance into one recoverable operation. The two-document write is
// transactional at the store; the guest notification runs after commit and
// never rolls committed state back.
type SchedulingService struct {
	tickets     repository.TicketRepository
	visits      repository.VisitRepository
	transitions *TransitionService
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// SchedulingDependencies bundles collaborators for the scheduler.
type SchedulingDependencies struct {
	TicketRepo  repository.TicketRepository
	VisitRepo   repository.VisitRepository
	Transitions *TransitionService
	Dispatcher  events.Dispatcher
	Now         func() time.Time
}

// ScheduleVisitInput describes a scheduling request.
type ScheduleVisitInput struct {
	TicketID        string
	TechnicianName  string
	ScheduledAt     time.Time
	Notes           string
	ExpectedVersion int64
}

// ScheduleVisitResult carries both documents after a successful commit.
type ScheduleVisitResult struct {
	Visit  *domain.TechnicianVisit
	Ticket *domain.SupportTicket
}

// NewSchedulingService constructs the service.
func NewSchedulingService(deps SchedulingDependencies) *SchedulingService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SchedulingService{
		tickets:     deps.TicketRepo,
		visits:      deps.VisitRepo,
		transitions: deps.Transitions,
		dispatcher:  deps.Dispatcher,
		now:         now,
	}
}

// ScheduleVisit creates a visit for the ticket, sets active_visit_id and
// advances OPEN tickets to IN_PROGRESS, all in one store transaction. Input
// validation happens before any store access.
func (s *SchedulingService) ScheduleVisit(ctx context.Context, input ScheduleVisitInput) (*ScheduleVisitResult, error) {
	if strings.TrimSpace(input.TechnicianName) == "" {
		return nil, apperrors.NewInvalidInput("technician_name required", nil)
	}
	if !input.ScheduledAt.After(s.now()) {
		return nil, apperrors.NewInvalidInput("scheduled_at must be in the future", map[string]any{
			"scheduled_at": input.ScheduledAt,
		})
	}
	if input.ExpectedVersion < 0 {
		return nil, apperrors.NewInvalidInput("expected_version must be non-negative", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, input.TicketID)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewInvalidState("cannot schedule a visit against a closed ticket", map[string]any{
			"ticket_id": ticket.ID,
		})
	}
	if ticket.Version != input.ExpectedVersion {
		return nil, apperrors.NewVersionConflict("ticket", map[string]any{
			"expected": input.ExpectedVersion,
			"current":  ticket.Version,
		})
	}

	newStatus := ticket.Status
	if ticket.Status == domain.TicketStatusOpen {
		// reuses the transition table rather than assigning blindly
		if !domain.CanTransitionTicket(ticket.Status, domain.TicketStatusInProgress) {
			return nil, apperrors.NewInvalidTransition("ticket cannot enter IN_PROGRESS", nil)
		}
		newStatus = domain.TicketStatusInProgress
	}

	visit := &domain.TechnicianVisit{
		ID:             uuid.NewString(),
		TicketID:       ticket.ID,
		TechnicianName: strings.TrimSpace(input.TechnicianName),
		ScheduledAt:    input.ScheduledAt,
		Notes:          input.Notes,
	}

	updated, err := s.visits.ScheduleVisit(ctx, visit, newStatus, input.ExpectedVersion)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	// past this point the operation has committed; notification delivery
	// failures are the notification service's problem, not the caller's
	s.publishEvent(ctx, events.Event{
		Type:     events.EventVisitScheduled,
		EntityID: updated.ID,
		Payload: events.VisitScheduledPayload{
			VisitID:        visit.ID,
			TicketID:       updated.ID,
			BookingID:      updated.BookingID,
			PropertyID:     updated.PropertyID,
			TechnicianName: visit.TechnicianName,
			ScheduledAt:    visit.ScheduledAt,
			TicketStatus:   updated.Status,
		},
	})
	return &ScheduleVisitResult{Visit: visit, Ticket: updated}, nil
}

// CloseTicket is a thin alias for a CLOSED transition. Races against a
// concurrent ScheduleVisit resolve through the version guard, not through
// any special-casing here.
func (s *SchedulingService) CloseTicket(ctx context.Context, ticketID string, expectedVersion int64) (*domain.SupportTicket, error) {
	return s.transitions.TransitionTicket(ctx, ticketID, domain.TicketStatusClosed, expectedVersion)
}

func (s *SchedulingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
