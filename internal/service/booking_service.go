// Package service holds the booking workflow: the validation rules and
// availability check that guard every booking creation, reschedule and
// status change before anything is persisted.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// Validation and authorization failures surfaced to handlers.  Handlers
// map these onto HTTP status codes; everything else is a 500.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("forbidden")
	ErrDateOrder       = errors.New("start date must be before end date")
	ErrStartInPast     = errors.New("start date cannot be in the past")
	ErrEndInPast       = errors.New("end date cannot be in the past")
	ErrNotAvailable    = errors.New("room is not available for the selected dates")
	ErrBadStatus       = errors.New("invalid booking status")
	ErrBadTransition   = errors.New("status transition not allowed")
)

// BookingStore is the persistence surface the booking service needs.
// *repository.BookingRepo satisfies it; tests provide an in-memory fake.
type BookingStore interface {
	InRoomTx(ctx context.Context, roomID uint64, fn func(repository.BookingTx) error) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	GetWithHotelOwner(ctx context.Context, id uint64) (*model.Booking, uint64, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// BookingService validates and persists booking state changes.
type BookingService struct {
	bookings BookingStore
}

// NewBookingService returns a BookingService over the given store.
func NewBookingService(bookings BookingStore) *BookingService {
	return &BookingService{bookings: bookings}
}

// today returns the current UTC calendar date at midnight.  Booking
// dates are stored the same way, so date comparisons stay exact.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// validateRange applies the date rules shared by create and reschedule.
func validateRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrDateOrder
	}
	now := today()
	if start.Before(now) {
		return ErrStartInPast
	}
	if end.Before(now) {
		return ErrEndInPast
	}
	return nil
}

// available reports whether the room is free over [start, end), ignoring
// the booking with excludeID (0 means exclude nothing).  The scan keeps
// every stored booking regardless of status, matching the data model's
// observed conflict semantics.
func available(tx repository.BookingTx, roomID uint64, start, end time.Time, excludeID uint64) (bool, error) {
	overlapping, err := tx.Overlapping(roomID, start, end)
	if err != nil {
		return false, err
	}
	for _, b := range overlapping {
		if b.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

// IsAvailable reports whether a room is free over [start, end).  A
// non-zero excludeBookingID drops that booking from the conflict scan,
// which is how a reschedule avoids colliding with itself.
func (s *BookingService) IsAvailable(ctx context.Context, roomID uint64, start, end time.Time, excludeBookingID uint64) (bool, error) {
	var ok bool
	err := s.bookings.InRoomTx(ctx, roomID, func(tx repository.BookingTx) error {
		var err error
		ok, err = available(tx, roomID, start, end, excludeBookingID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}
	return ok, nil
}

// Create validates and persists a new booking for a guest.  The
// availability check and the insert run under a row lock on the room so
// concurrent requests cannot double-book.  New bookings start pending
// and await confirmation by the hotel.
func (s *BookingService) Create(ctx context.Context, userID, roomID uint64, start, end time.Time) (*model.Booking, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	b := &model.Booking{
		RoomID:    roomID,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Status:    model.BookingPending,
	}
	err := s.bookings.InRoomTx(ctx, roomID, func(tx repository.BookingTx) error {
		ok, err := available(tx, roomID, start, end, 0)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAvailable
		}
		return tx.Insert(b)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return b, nil
}

// Reschedule moves an existing booking to a new date range.  The booking
// excludes itself from the conflict scan, so rescheduling to the same or
// an overlapping-with-itself range succeeds.  Only the booking's guest
// may reschedule, and terminal bookings cannot move.
func (s *BookingService) Reschedule(ctx context.Context, bookingID, userID uint64, start, end time.Time) (*model.Booking, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if current.UserID != userID {
		return nil, ErrForbidden
	}
	if current.Status == model.BookingCancelled || current.Status == model.BookingCompleted {
		return nil, ErrBadTransition
	}

	var out *model.Booking
	err = s.bookings.InRoomTx(ctx, current.RoomID, func(tx repository.BookingTx) error {
		// Re-read under the lock; the booking may have changed since the
		// unlocked read above.
		b, err := tx.Get(bookingID)
		if err != nil {
			return err
		}
		ok, err := available(tx, b.RoomID, start, end, b.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAvailable
		}
		if err := tx.UpdateDates(b.ID, start, end); err != nil {
			return err
		}
		b.StartDate = start
		b.EndDate = end
		out = b
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return out, nil
}

// Cancel soft-cancels a guest's own booking.  Cancelling an already
// cancelled booking is an idempotent no-op; a completed stay cannot be
// cancelled.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status == model.BookingCancelled {
		return b, nil
	}
	if !model.CanTransition(b.Status, model.BookingCancelled) {
		return nil, ErrBadTransition
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, model.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = model.BookingCancelled
	return b, nil
}

// UpdateStatus applies a status change requested by a hotel account.
// Only the owner of the booked room's hotel may change status, and the
// move must follow the booking state machine.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, ownerID uint64, status string) (*model.Booking, error) {
	if !model.ValidBookingStatus(status) {
		return nil, ErrBadStatus
	}
	b, hotelOwner, err := s.bookings.GetWithHotelOwner(ctx, bookingID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if hotelOwner != ownerID {
		return nil, ErrForbidden
	}
	if !model.CanTransition(b.Status, status) {
		return nil, ErrBadTransition
	}
	if b.Status != status {
		if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
			return nil, err
		}
		b.Status = status
	}
	return b, nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, repository.ErrRoomNotFound):
		return ErrRoomNotFound
	}
	return err
}
