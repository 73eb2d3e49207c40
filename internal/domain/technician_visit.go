package domain

import "time"

// TechnicianVisit is a scheduled in-person appointment created to resolve
// a ticket. Visits are created exclusively through the scheduling
// coordinator and never independently mutated.
type TechnicianVisit struct {
	ID             string
	TicketID       string
	TechnicianName string
	ScheduledAt    time.Time
	Notes          string
	CreatedAt      time.Time
}
