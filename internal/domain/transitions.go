package domain

// The transition tables below are the only authority over which status
// values an entity may move between. Terminal states map to an empty
// target list; a transition to the current status is not in any table and
// is therefore rejected rather than silently accepted.

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusClosed},
	TicketStatusClosed:     {},
}

// ValidBookingStatus reports whether s is a recognized booking status.
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// ValidTicketStatus reports whether s is a recognized ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	_, ok := ticketTransitions[s]
	return ok
}

// CanTransitionBooking reports whether next is reachable from current.
func CanTransitionBooking(current, next BookingStatus) bool {
	for _, candidate := range bookingTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CanTransitionTicket reports whether next is reachable from current.
func CanTransitionTicket(current, next TicketStatus) bool {
	for _, candidate := range ticketTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
