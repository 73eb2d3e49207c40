package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/repository"
)

// fakeBookingRepo is an in-memory BookingRepository with the same
// version-guard semantics as the pgx implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.Version = 0
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, expectedVersion int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if booking.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}
	booking.Status = status
	booking.Version++
	booking.UpdatedAt = time.Now()
	clone := *booking
	return &clone, nil
}

// fakeTicketRepo mirrors the pgx ticket repository.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.SupportTicket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.SupportTicket)}
}

func (f *fakeTicketRepo) put(ticket *domain.SupportTicket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *ticket
	f.tickets[ticket.ID] = &clone
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket.Version = 0
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	f.tickets[ticket.ID] = &clone
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepo) List(ctx context.Context, limit, offset int) ([]domain.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.SupportTicket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeTicketRepo) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if ticket.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}
	ticket.Status = status
	ticket.Version++
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	return &clone, nil
}

// fakeVisitRepo implements the two-document scheduling write against the
// shared fakeTicketRepo. failWith simulates a store that cannot commit:
// when set, neither the visit nor the ticket change is observable after
// the call, matching the transactional guarantee.
type fakeVisitRepo struct {
	mu       sync.Mutex
	visits   map[string]*domain.TechnicianVisit
	tickets  *fakeTicketRepo
	failWith error
}

func newFakeVisitRepo(tickets *fakeTicketRepo) *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[string]*domain.TechnicianVisit), tickets: tickets}
}

func (f *fakeVisitRepo) GetByID(ctx context.Context, id string) (*domain.TechnicianVisit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	visit, ok := f.visits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *visit
	return &clone, nil
}

func (f *fakeVisitRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.TechnicianVisit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.TechnicianVisit
	for _, visit := range f.visits {
		if visit.TicketID == ticketID {
			result = append(result, *visit)
		}
	}
	return result, nil
}

func (f *fakeVisitRepo) ScheduleVisit(ctx context.Context, visit *domain.TechnicianVisit, newStatus domain.TicketStatus, expectedVersion int64) (*domain.SupportTicket, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.tickets.mu.Lock()
	defer f.tickets.mu.Unlock()
	ticket, ok := f.tickets.tickets[visit.TicketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if ticket.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}

	visit.CreatedAt = time.Now()
	f.mu.Lock()
	clone := *visit
	f.visits[visit.ID] = &clone
	f.mu.Unlock()

	ticket.Status = newStatus
	visitID := visit.ID
	ticket.ActiveVisitID = &visitID
	ticket.Version++
	ticket.UpdatedAt = time.Now()
	updated := *ticket
	return &updated, nil
}

func (f *fakeVisitRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visits)
}
