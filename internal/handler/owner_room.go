package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// RoomHandler serves the owner's room CRUD.  Every write is followed by
// an explicit recompute of the hotel's derived nightly price; the
// recompute is idempotent so a retried request settles on the same
// value.
type RoomHandler struct {
	Rooms  *repository.RoomRepo
	Hotels *repository.HotelRepo
}

func NewRoomHandler(r *repository.RoomRepo, h *repository.HotelRepo) *RoomHandler {
	return &RoomHandler{Rooms: r, Hotels: h}
}

type roomReq struct {
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	BedCount    uint32  `json:"bed_count"`
	MaxAdults   uint32  `json:"max_adults"`
	RoomType    string  `json:"room_type"`
}

func (req *roomReq) validate() error {
	if req.Price <= 0 {
		return errors.New("price must be positive")
	}
	if req.BedCount == 0 {
		return errors.New("bed_count must be positive")
	}
	if req.MaxAdults == 0 {
		return errors.New("max_adults must be positive")
	}
	req.RoomType = strings.ToUpper(strings.TrimSpace(req.RoomType))
	if !model.ValidRoomType(req.RoomType) {
		return errors.New("invalid room_type")
	}
	return nil
}

// ownHotel loads the caller's hotel or writes the error response.
func (h *RoomHandler) ownHotel(c echo.Context) (*model.Hotel, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hotel, err := h.Hotels.GetByOwner(ctx, userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return hotel, nil
}

// recompute refreshes the hotel's derived price after a room write.
func (h *RoomHandler) recompute(c echo.Context, hotelID uint64) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Hotels.RecomputePricePerNight(ctx, hotelID); err != nil {
		log.Error().Err(err).Uint64("hotel_id", hotelID).Msg("price recompute failed")
	}
}

// Create adds a room to the caller's hotel.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	hotel, errResp := h.ownHotel(c)
	if hotel == nil {
		return errResp
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	room := &model.Room{
		HotelID:     hotel.ID,
		Price:       req.Price,
		Description: req.Description,
		BedCount:    req.BedCount,
		MaxAdults:   req.MaxAdults,
		RoomType:    req.RoomType,
	}
	if err := h.Rooms.Create(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	h.recompute(c, hotel.ID)
	return c.JSON(http.StatusCreated, roomView(room))
}

// List returns every room of the caller's hotel.
func (h *RoomHandler) List(c echo.Context) error {
	hotel, errResp := h.ownHotel(c)
	if hotel == nil {
		return errResp
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rooms, err := h.Rooms.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": roomViews(rooms)})
}

// Update rewrites one of the caller's rooms.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	hotel, errResp := h.ownHotel(c)
	if hotel == nil {
		return errResp
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Rooms.Update(ctx, id, hotel.ID, req.Price, req.Description, req.BedCount, req.MaxAdults, req.RoomType)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.recompute(c, hotel.ID)

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, roomView(room))
}

// Delete removes one of the caller's rooms.  Bookings for the room go
// with it (cascade).
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	hotel, errResp := h.ownHotel(c)
	if hotel == nil {
		return errResp
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id, hotel.ID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.recompute(c, hotel.ID)
	return c.NoContent(http.StatusNoContent)
}
