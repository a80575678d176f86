package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// HotelHandler serves the owner's hotel profile endpoints.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

func NewHotelHandler(h *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: h}
}

type hotelProfileReq struct {
	Name        string  `json:"name"`
	Stars       uint8   `json:"stars"`
	Address     string  `json:"address"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

// MyHotel returns the caller's hotel record.
func (h *HotelHandler) MyHotel(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hotel, err := h.Hotels.GetByOwner(ctx, userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, hotelView(hotel))
}

// UpdateMyHotel rewrites the caller's hotel profile.  The approval flag
// and the derived nightly price cannot be set here.
func (h *HotelHandler) UpdateMyHotel(c echo.Context) error {
	var req hotelProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be between 0 and 5"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hotel, err := h.Hotels.GetByOwner(ctx, userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	err = h.Hotels.UpdateProfile(ctx, hotel.ID, userID(c),
		req.Name, req.Stars, strings.TrimSpace(req.Address), req.Website, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	updated, err := h.Hotels.GetByID(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, hotelView(updated))
}
