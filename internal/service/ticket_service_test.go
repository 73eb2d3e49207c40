package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Singh-Prajwal/rental/internal/domain"
	"github.com/Singh-Prajwal/rental/internal/events"
)

func newTicketFixture() (*TicketService, *fakeBookingRepo, *fakeTicketRepo, events.Dispatcher) {
	bookings := newFakeBookingRepo()
	tickets := newFakeTicketRepo()
	visits := newFakeVisitRepo(tickets)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		BookingRepo: bookings,
		VisitRepo:   visits,
		Dispatcher:  dispatcher,
	})
	return svc, bookings, tickets, dispatcher
}

func TestCreateTicketOpensAgainstExistingBooking(t *testing.T) {
	svc, bookings, _, dispatcher := newTicketFixture()
	seedBooking(t, bookings, "b1", domain.BookingStatusConfirmed)

	var created events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		created = event
		return nil
	})

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		BookingID:  "b1",
		PropertyID: "p1",
		Issue:      "  heating broken  ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, int64(0), ticket.Version)
	assert.Equal(t, "heating broken", ticket.Issue)
	assert.Nil(t, ticket.ActiveVisitID)
	assert.Equal(t, ticket.ID, created.EntityID)
}

func TestCreateTicketRejectsEmptyIssue(t *testing.T) {
	svc, bookings, _, _ := newTicketFixture()
	seedBooking(t, bookings, "b1", domain.BookingStatusConfirmed)

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		BookingID:  "b1",
		PropertyID: "p1",
		Issue:      "   ",
	})
	assert.Equal(t, "INVALID_INPUT", errorCode(t, err))
}

func TestCreateTicketRejectsUnknownBooking(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		BookingID:  "missing",
		PropertyID: "p1",
		Issue:      "leak",
	})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestListTicketsNewestFirst(t *testing.T) {
	svc, _, tickets, _ := newTicketFixture()
	base := time.Now()
	for i, id := range []string{"t1", "t2", "t3"} {
		tickets.put(&domain.SupportTicket{
			ID:         id,
			BookingID:  "b1",
			PropertyID: "p1",
			Issue:      "issue",
			Status:     domain.TicketStatusOpen,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	listed, err := svc.ListTickets(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "t3", listed[0].ID)
	assert.Equal(t, "t2", listed[1].ID)
	assert.Equal(t, "t1", listed[2].ID)
}

func TestGetTicketIncludesVisitHistory(t *testing.T) {
	bookings := newFakeBookingRepo()
	tickets := newFakeTicketRepo()
	visits := newFakeVisitRepo(tickets)
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		BookingRepo: bookings,
		VisitRepo:   visits,
	})

	tickets.put(&domain.SupportTicket{ID: "t1", BookingID: "b1", PropertyID: "p1", Issue: "leak", Status: domain.TicketStatusOpen})
	_, err := visits.ScheduleVisit(context.Background(), &domain.TechnicianVisit{
		ID:             "v1",
		TicketID:       "t1",
		TechnicianName: "Alex",
		ScheduledAt:    time.Now().Add(time.Hour),
	}, domain.TicketStatusInProgress, 0)
	require.NoError(t, err)

	ticket, visitList, err := svc.GetTicket(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
	require.Len(t, visitList, 1)
	assert.Equal(t, "v1", visitList[0].ID)
}

func TestBookingServiceCreateValidatesDates(t *testing.T) {
	bookings := newFakeBookingRepo()
	svc := NewBookingService(bookings)

	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), BookingCreateInput{
		PropertyID:   "p1",
		GuestID:      "g1",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn,
	})
	assert.Equal(t, "INVALID_INPUT", errorCode(t, err))

	booking, err := svc.CreateBooking(context.Background(), BookingCreateInput{
		PropertyID:   "p1",
		GuestID:      "g1",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(0), booking.Version)
}
