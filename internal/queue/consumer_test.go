package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessage(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := BookingCreatedEvent{
		BookingID: 42,
		UserID:    7,
		RoomID:    3,
		HotelID:   1,
		HotelName: "Seaside",
		RoomType:  "DOUBLE",
		StartDate: "2030-06-01",
		EndDate:   "2030-06-05",
		Nights:    4,
		Status:    "pending",
		CreatedAt: "2030-05-20T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "booking_id=42")
	assert.Contains(t, line, `hotel="Seaside"`)
	assert.Contains(t, line, "2030-06-01 -> 2030-06-05")
	assert.Contains(t, line, "nights=4")
}

func TestHandleMessageBadPayload(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, handleMessage([]byte("not json")))
}
