package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// FavoriteHandler serves the guest favorites endpoints.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Hotels    *repository.HotelRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, h *repository.HotelRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f, Hotels: h}
}

type favoriteReq struct {
	HotelID uint64 `json:"hotel_id"`
}

// Create marks a hotel as one of the caller's favorites.  Favoring the
// same hotel twice is a 409.
func (h *FavoriteHandler) Create(c echo.Context) error {
	var req favoriteReq
	if err := c.Bind(&req); err != nil || req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	f := &model.Favorite{UserID: userID(c), HotelID: req.HotelID}
	if err := h.Favorites.Create(ctx, f); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save favorite failed"})
	}
	return c.JSON(http.StatusCreated, favoriteResp{ID: f.ID, HotelID: f.HotelID})
}

// List returns the caller's favorites with hotel context.
func (h *FavoriteHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Favorites.ListByUser(ctx, userID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": list})
}

// Delete removes one of the caller's favorites.
func (h *FavoriteHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid favorite id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Favorites.Delete(ctx, id, userID(c)); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
