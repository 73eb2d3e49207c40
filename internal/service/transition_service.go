package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/events"
	"github.com/Singh-Prajwal/rental/internal/observability"
	"github.com/Singh-Prajwal/rental/internal/repository"
	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

// TransitionService is the sole gate for changing status on a booking or a
// support ticket. Every transition is validated against the fixed tables in
// the domain package and persisted under the optimistic version guard.
type TransitionService struct {
	bookings   repository.BookingRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// TransitionDependencies bundles collaborators for the transition service.
type TransitionDependencies struct {
	BookingRepo repository.BookingRepository
	TicketRepo  repository.TicketRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
}

// NewTransitionService constructs the service.
func NewTransitionService(deps TransitionDependencies) *TransitionService {
	return &TransitionService{
		bookings:   deps.BookingRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// TransitionBooking moves a booking to target if the transition table
// allows it and expectedVersion matches the stored version.
func (s *TransitionService) TransitionBooking(ctx context.Context, id string, target domain.BookingStatus, expectedVersion int64) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(target) {
		return nil, apperrors.NewInvalidInput("unknown booking status", map[string]any{"status": target})
	}
	if expectedVersion < 0 {
		return nil, apperrors.NewInvalidInput("expected_version must be non-negative", nil)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, mapBookingErr(err)
	}
	// version first: a stale caller must see the conflict and re-read
	// before learning anything about reachable targets
	if booking.Version != expectedVersion {
		return nil, apperrors.NewVersionConflict("booking", map[string]any{
			"expected": expectedVersion,
			"current":  booking.Version,
		})
	}
	if !domain.CanTransitionBooking(booking.Status, target) {
		return nil, apperrors.NewInvalidTransition("booking cannot move to requested status", map[string]any{
			"current": booking.Status,
			"target":  target,
		})
	}

	oldStatus := booking.Status
	updated, err := s.bookings.UpdateStatus(ctx, id, target, expectedVersion)
	if err != nil {
		return nil, mapBookingErr(err)
	}

	s.metrics.RecordTransition("booking", string(oldStatus), string(target))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventBookingStatusChanged,
		EntityID: updated.ID,
		Payload: events.BookingStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// TransitionTicket moves a ticket to target under the same contract.
// Closing a ticket leaves active_visit_id in place as a historical
// reference; CLOSED is terminal, so no later write can touch it.
func (s *TransitionService) TransitionTicket(ctx context.Context, id string, target domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error) {
	if !domain.ValidTicketStatus(target) {
		return nil, apperrors.NewInvalidInput("unknown ticket status", map[string]any{"status": target})
	}
	if expectedVersion < 0 {
		return nil, apperrors.NewInvalidInput("expected_version must be non-negative", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	if ticket.Version != expectedVersion {
		return nil, apperrors.NewVersionConflict("ticket", map[string]any{
			"expected": expectedVersion,
			"current":  ticket.Version,
		})
	}
	if !domain.CanTransitionTicket(ticket.Status, target) {
		return nil, apperrors.NewInvalidTransition("ticket cannot move to requested status", map[string]any{
			"current": ticket.Status,
			"target":  target,
		})
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.UpdateStatus(ctx, id, target, expectedVersion)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	s.metrics.RecordTransition("ticket", string(oldStatus), string(target))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		EntityID: updated.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *TransitionService) publishEvent(ctx context.Context, event events.Event) {
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

func mapBookingErr(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound("booking", nil)
	case errors.Is(err, repository.ErrVersionConflict):
		return apperrors.NewVersionConflict("booking", nil)
	default:
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return apperrors.NewPersistenceFailure(err)
	}
}

func mapTicketErr(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound("ticket", nil)
	case errors.Is(err, repository.ErrVersionConflict):
		return apperrors.NewVersionConflict("ticket", nil)
	default:
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return apperrors.NewPersistenceFailure(err)
	}
}
