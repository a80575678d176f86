package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd           string
		bStart, bEnd           string
		want                   bool
	}{
		{"identical ranges", "2030-06-01", "2030-06-05", "2030-06-01", "2030-06-05", true},
		{"contained range", "2030-06-01", "2030-06-10", "2030-06-03", "2030-06-05", true},
		{"partial overlap at start", "2030-06-01", "2030-06-05", "2030-06-04", "2030-06-08", true},
		{"partial overlap at end", "2030-06-04", "2030-06-08", "2030-06-01", "2030-06-05", true},
		{"disjoint ranges", "2030-06-01", "2030-06-05", "2030-06-10", "2030-06-12", false},
		{"checkout equals checkin", "2030-06-01", "2030-06-05", "2030-06-05", "2030-06-08", false},
		{"checkin equals checkout", "2030-06-05", "2030-06-08", "2030-06-01", "2030-06-05", false},
		{"one night each adjacent", "2030-06-01", "2030-06-02", "2030-06-02", "2030-06-03", false},
		{"one night same day", "2030-06-01", "2030-06-02", "2030-06-01", "2030-06-02", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(date(tc.aStart), date(tc.aEnd), date(tc.bStart), date(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(date(tc.bStart), date(tc.bEnd), date(tc.aStart), date(tc.aEnd)))
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]string{
		{BookingPending, BookingCompleted},
		{BookingCancelled, BookingPending},
		{BookingCancelled, BookingConfirmed},
		{BookingCancelled, BookingCompleted},
		{BookingCompleted, BookingPending},
		{BookingCompleted, BookingConfirmed},
		{BookingCompleted, BookingCancelled},
	}
	for _, pair := range denied {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	for _, s := range []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		assert.True(t, CanTransition(s, s), "same-status move must be allowed for %s", s)
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
		assert.True(t, ValidBookingStatus(s))
	}
	for _, s := range []string{"", "PENDING", "done", "canceled"} {
		assert.False(t, ValidBookingStatus(s))
	}
}

func TestNights(t *testing.T) {
	b := &Booking{StartDate: date("2030-06-01"), EndDate: date("2030-06-05")}
	assert.Equal(t, 4, b.Nights())

	one := &Booking{StartDate: date("2030-06-01"), EndDate: date("2030-06-02")}
	assert.Equal(t, 1, one.Nights())
}

func TestValidRoomType(t *testing.T) {
	for _, s := range []string{"SINGLE", "DOUBLE", "TRIPLE", "QUAD", "KING", "SUITE"} {
		assert.True(t, ValidRoomType(s))
	}
	for _, s := range []string{"", "single", "PENTHOUSE"} {
		assert.False(t, ValidRoomType(s))
	}
}
