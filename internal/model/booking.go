package model

import "time"

// Booking statuses.  A booking starts out pending, gets confirmed or
// cancelled by the hotel, and is marked completed after the stay.
// Cancellation is always a soft status transition, never a delete.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// ValidBookingStatus reports whether s is one of the four booking statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another.  Allowed moves: pending → confirmed → completed, and
// pending|confirmed → cancelled.  Cancelled and completed are terminal.
// A same-status "transition" is permitted so that repeating an update is
// harmless.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}

// Overlaps reports whether the half-open date ranges [aStart,aEnd) and
// [bStart,bEnd) conflict: aStart < bEnd AND bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Booking records a guest's stay in a room over a half-open date range
// [StartDate, EndDate).  The end date is the checkout day and does not
// collide with another booking starting that same day.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room being booked.
//  UserID    – guest who requested the booking.
//  StartDate – inclusive check-in date (midnight UTC).
//  EndDate   – exclusive check-out date (midnight UTC).
//  Status    – one of pending, confirmed, cancelled, completed.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	RoomID    uint64    // bookings.room_id
	UserID    uint64    // bookings.user_id
	StartDate time.Time // bookings.start_date
	EndDate   time.Time // bookings.end_date
	Status    string    // bookings.status
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}

// Nights returns the number of nights covered by the booking.
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}
