// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// BookingCreatedEvent is published when a guest successfully books a room.
// It carries enough context for downstream consumers to log or notify
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	HotelID   uint64 `json:"hotel_id"`
	HotelName string `json:"hotel_name"`
	RoomType  string `json:"room_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Nights    int    `json:"nights"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
