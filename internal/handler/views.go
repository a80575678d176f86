package handler

import (
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// Response shapes for domain records.  Models carry no JSON tags, so
// every handler answers with one of these views.

type hotelResp struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Stars         uint8    `json:"stars"`
	Address       string   `json:"address"`
	Website       *string  `json:"website"`
	Description   *string  `json:"description"`
	PricePerNight *float64 `json:"price_per_night"`
	IsApproved    bool     `json:"is_approved"`
}

func hotelView(h *model.Hotel) hotelResp {
	return hotelResp{
		ID:            h.ID,
		Name:          h.Name,
		Stars:         h.Stars,
		Address:       h.Address,
		Website:       h.Website,
		Description:   h.Description,
		PricePerNight: h.PricePerNight,
		IsApproved:    h.IsApproved,
	}
}

type roomResp struct {
	ID          uint64  `json:"id"`
	HotelID     uint64  `json:"hotel_id"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	BedCount    uint32  `json:"bed_count"`
	MaxAdults   uint32  `json:"max_adults"`
	RoomType    string  `json:"room_type"`
}

func roomView(r *model.Room) roomResp {
	return roomResp{
		ID:          r.ID,
		HotelID:     r.HotelID,
		Price:       r.Price,
		Description: r.Description,
		BedCount:    r.BedCount,
		MaxAdults:   r.MaxAdults,
		RoomType:    r.RoomType,
	}
}

func roomViews(rooms []*model.Room) []roomResp {
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomView(r))
	}
	return out
}

type bookingResp struct {
	ID        uint64 `json:"id"`
	RoomID    uint64 `json:"room_id"`
	UserID    uint64 `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Nights    int    `json:"nights"`
}

func bookingView(b *model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		Status:    b.Status,
		Nights:    b.Nights(),
	}
}

type reviewResp struct {
	ID        uint64  `json:"id"`
	HotelID   uint64  `json:"hotel_id"`
	UserID    uint64  `json:"user_id"`
	Rating    uint8   `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}

func reviewView(r *model.Review) reviewResp {
	return reviewResp{
		ID:        r.ID,
		HotelID:   r.HotelID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type favoriteResp struct {
	ID      uint64 `json:"id"`
	HotelID uint64 `json:"hotel_id"`
}
