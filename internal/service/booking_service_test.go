package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// fakeStore keeps bookings in memory and implements BookingStore plus
// repository.BookingTx.  InRoomTx runs the callback directly; the tests
// exercise the guard logic, not MySQL locking.
type fakeStore struct {
	rooms    map[uint64]bool
	bookings map[uint64]*model.Booking
	nextID   uint64
	owners   map[uint64]uint64 // booking id -> hotel owner id
}

func newFakeStore(roomIDs ...uint64) *fakeStore {
	s := &fakeStore{
		rooms:    make(map[uint64]bool),
		bookings: make(map[uint64]*model.Booking),
		owners:   make(map[uint64]uint64),
		nextID:   1,
	}
	for _, id := range roomIDs {
		s.rooms[id] = true
	}
	return s
}

func (s *fakeStore) InRoomTx(_ context.Context, roomID uint64, fn func(repository.BookingTx) error) error {
	if !s.rooms[roomID] {
		return repository.ErrRoomNotFound
	}
	return fn(s)
}

func (s *fakeStore) Overlapping(roomID uint64, start, end time.Time) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.RoomID == roomID && model.Overlaps(b.StartDate, b.EndDate, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeStore) Insert(b *model.Booking) error {
	b.ID = s.nextID
	s.nextID++
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *fakeStore) Get(id uint64) (*model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) UpdateDates(id uint64, start, end time.Time) error {
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.StartDate, b.EndDate = start, end
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	return s.Get(id)
}

func (s *fakeStore) GetWithHotelOwner(_ context.Context, id uint64) (*model.Booking, uint64, error) {
	b, err := s.Get(id)
	if err != nil {
		return nil, 0, err
	}
	return b, s.owners[id], nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

const (
	roomA  = uint64(1)
	guest  = uint64(10)
	guest2 = uint64(11)
	owner  = uint64(20)
)

func TestCreateBooking(t *testing.T) {
	store := newFakeStore(roomA)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, guest, roomA, day("2030-06-01"), day("2030-06-05"))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.NotZero(t, b.ID)

	t.Run("disjoint range succeeds", func(t *testing.T) {
		_, err := svc.Create(ctx, guest2, roomA, day("2030-06-10"), day("2030-06-12"))
		assert.NoError(t, err)
	})

	t.Run("back to back succeeds", func(t *testing.T) {
		// Checkout day equals the next check-in; half-open ranges do
		// not collide.
		_, err := svc.Create(ctx, guest2, roomA, day("2030-06-05"), day("2030-06-07"))
		assert.NoError(t, err)
	})

	t.Run("overlapping range rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, guest2, roomA, day("2030-06-03"), day("2030-06-06"))
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("cancelled booking still blocks", func(t *testing.T) {
		_, err := svc.Cancel(ctx, b.ID, guest)
		require.NoError(t, err)
		_, err = svc.Create(ctx, guest2, roomA, day("2030-06-02"), day("2030-06-04"))
		assert.ErrorIs(t, err, ErrNotAvailable)
	})
}

func TestCreateBookingValidation(t *testing.T) {
	store := newFakeStore(roomA)
	svc := NewBookingService(store)
	ctx := context.Background()

	t.Run("start equals end", func(t *testing.T) {
		_, err := svc.Create(ctx, guest, roomA, day("2030-06-01"), day("2030-06-01"))
		assert.ErrorIs(t, err, ErrDateOrder)
		assert.EqualError(t, err, "start date must be before end date")
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := svc.Create(ctx, guest, roomA, day("2030-06-05"), day("2030-06-01"))
		assert.ErrorIs(t, err, ErrDateOrder)
	})

	t.Run("start in the past", func(t *testing.T) {
		_, err := svc.Create(ctx, guest, roomA, day("2001-01-01"), day("2030-06-05"))
		assert.ErrorIs(t, err, ErrStartInPast)
		assert.EqualError(t, err, "start date cannot be in the past")
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.Create(ctx, guest, 999, day("2030-06-01"), day("2030-06-05"))
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestIsAvailable(t *testing.T) {
	store := newFakeStore(roomA)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, guest, roomA, day("2030-06-01"), day("2030-06-05"))
	require.NoError(t, err)

	ok, err := svc.IsAvailable(ctx, roomA, day("2030-06-03"), day("2030-06-06"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsAvailable(ctx, roomA, day("2030-06-05"), day("2030-06-08"), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	// Excluding the booking itself frees its own range.
	ok, err = svc.IsAvailable(ctx, roomA, day("2030-06-01"), day("2030-06-05"), b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.IsAvailable(ctx, 999, day("2030-06-01"), day("2030-06-05"), 0)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestReschedule(t *testing.T) {
	store := newFakeStore(roomA)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, guest, roomA, day("2030-06-01"), day("2030-06-05"))
	require.NoError(t, err)

	t.Run("same dates succeed via self exclusion", func(t *testing.T) {
		got, err := svc.Reschedule(ctx, b.ID, guest, day("2030-06-01"), day("2030-06-05"))
		require.NoError(t, err)
		assert.Equal(t, day("2030-06-01"), got.StartDate)
	})

	t.Run("shifted within own range succeeds", func(t *testing.T) {
		got, err := svc.Reschedule(ctx, b.ID, guest, day("2030-06-02"), day("2030-06-06"))
		require.NoError(t, err)
		assert.Equal(t, day("2030-06-06"), got.EndDate)
	})

	t.Run("collision with another booking rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, guest2, roomA, day("2030-06-10"), day("2030-06-12"))
		require.NoError(t, err)
		_, err = svc.Reschedule(ctx, b.ID, guest, day("2030-06-09"), day("2030-06-11"))
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("only the booking's guest may move it", func(t *testing.T) {
		_, err := svc.Reschedule(ctx, b.ID, guest2, day("2030-07-01"), day("2030-07-03"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.Reschedule(ctx, 999, guest, day("2030-07-01"), day("2030-07-03"))
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	store := newFakeStore(roomA)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, guest, roomA, day("2030-06-01"), day("2030-06-05"))
	require.NoError(t, err)

	t.Run("only the owner may cancel", func(t *testing.T) {
		_, err := svc.Cancel(ctx, b.ID, guest2)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	got, err := svc.Cancel(ctx, b.ID, guest)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, got.Status)

	t.Run("cancelling again is a no-op", func(t *testing.T) {
		got, err := svc.Cancel(ctx, b.ID, guest)
		require.NoError(t, err)
		assert.Equal(t, model.BookingCancelled, got.Status)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		done, err := svc.Create(ctx, guest, roomA, day("2030-07-01"), day("2030-07-03"))
		require.NoError(t, err)
		store.bookings[done.ID].Status = model.BookingCompleted

		_, err = svc.Cancel(ctx, done.ID, guest)
		assert.ErrorIs(t, err, ErrBadTransition)
	})
}

func TestUpdateStatus(t *testing.T) {
	store := newFakeStore(roomA)
	svc := NewBookingService(store)
	ctx := context.Background()

	b, err := svc.Create(ctx, guest, roomA, day("2030-06-01"), day("2030-06-05"))
	require.NoError(t, err)
	store.owners[b.ID] = owner

	t.Run("foreign owner rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, guest2, model.BookingConfirmed)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("bad status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, owner, "archived")
		assert.ErrorIs(t, err, ErrBadStatus)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, owner, model.BookingCompleted)
		assert.ErrorIs(t, err, ErrBadTransition)
	})

	got, err := svc.UpdateStatus(ctx, b.ID, owner, model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, got.Status)

	got, err = svc.UpdateStatus(ctx, b.ID, owner, model.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, got.Status)

	t.Run("terminal status stays put", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, owner, model.BookingCancelled)
		assert.ErrorIs(t, err, ErrBadTransition)
	})
}
