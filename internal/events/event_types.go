package events

import (
	"time"

	"github.com/Singh-Prajwal/rental/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventVisitScheduled       EventType = "visit_scheduled"
)

// Event represents a domain event emitted by services. EntityID is the
// booking or ticket the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	BookingID  string `json:"booking_id"`
	PropertyID string `json:"property_id"`
	Issue      string `json:"issue"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	OldStatus domain.BookingStatus `json:"old_status"`
	NewStatus domain.BookingStatus `json:"new_status"`
}

// VisitScheduledPayload payload delivered to the guest-facing gateway.
type VisitScheduledPayload struct {
	VisitID        string              `json:"visit_id"`
	TicketID       string              `json:"ticket_id"`
	BookingID      string              `json:"booking_id"`
	PropertyID     string              `json:"property_id"`
	TechnicianName string              `json:"technician_name"`
	ScheduledAt    time.Time           `json:"scheduled_at"`
	TicketStatus   domain.TicketStatus `json:"ticket_status"`
}
