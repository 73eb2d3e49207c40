package dto

import (
	"time"

	"github.com/Singh-Prajwal/rental/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	BookingID  string `json:"booking_id"`
	PropertyID string `json:"property_id"`
	Issue      string `json:"issue"`
}

// TransitionRequest payload for ticket and booking status changes.
// ExpectedVersion is a pointer so that a missing field is distinguishable
// from version zero.
type TransitionRequest struct {
	Status          string `json:"status"`
	ExpectedVersion *int64 `json:"expected_version"`
}

// ScheduleVisitRequest payload.
type ScheduleVisitRequest struct {
	TechnicianName  string    `json:"technician_name"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Notes           string    `json:"notes"`
	ExpectedVersion *int64    `json:"expected_version"`
}

// TicketResponse response body.
type TicketResponse struct {
	ID            string              `json:"id"`
	BookingID     string              `json:"booking_id"`
	PropertyID    string              `json:"property_id"`
	Issue         string              `json:"issue"`
	Status        domain.TicketStatus `json:"status"`
	ActiveVisitID *string             `json:"active_visit_id"`
	Version       int64               `json:"version"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// VisitResponse response body.
type VisitResponse struct {
	ID             string    `json:"id"`
	TicketID       string    `json:"ticket_id"`
	TechnicianName string    `json:"technician_name"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// TicketDetailResponse includes the visit history.
type TicketDetailResponse struct {
	TicketResponse
	Visits []VisitResponse `json:"visits"`
}

// ScheduleVisitResponse carries both documents after scheduling.
type ScheduleVisitResponse struct {
	Visit  VisitResponse  `json:"visit"`
	Ticket TicketResponse `json:"ticket"`
}
