package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// SupportTicket is a guest-reported issue tied to a booking and property.
// ActiveVisitID references the at-most-one non-completed technician visit;
// it survives closing as a historical reference only, since CLOSED is
// terminal and no field changes afterward.
type SupportTicket struct {
	ID            string
	BookingID     string
	PropertyID    string
	Issue         string
	Status        TicketStatus
	ActiveVisitID *string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
