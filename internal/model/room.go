package model

import "time"

// Room types mirror the enumerated categories stored in rooms.room_type.
const (
	RoomTypeSingle = "SINGLE"
	RoomTypeDouble = "DOUBLE"
	RoomTypeTriple = "TRIPLE"
	RoomTypeQuad   = "QUAD"
	RoomTypeKing   = "KING"
	RoomTypeSuite  = "SUITE"
)

// ValidRoomType reports whether s is one of the enumerated room categories.
func ValidRoomType(s string) bool {
	switch s {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTriple, RoomTypeQuad, RoomTypeKing, RoomTypeSuite:
		return true
	}
	return false
}

// Room describes a bookable room inside a hotel.  Rooms belong to exactly
// one hotel and own many bookings.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – hotel to which this room belongs.
//  Price       – nightly price; feeds the hotel's derived price_per_night.
//  Description – optional description of the room.
//  BedCount    – number of beds.
//  MaxAdults   – maximum adult capacity.
//  RoomType    – enumerated category (SINGLE, DOUBLE, TRIPLE, QUAD, KING, SUITE).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    // rooms.id
	HotelID     uint64    // rooms.hotel_id
	Price       float64   // rooms.price
	Description *string   // rooms.description (nullable)
	BedCount    uint32    // rooms.bed_count
	MaxAdults   uint32    // rooms.max_adults
	RoomType    string    // rooms.room_type
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
