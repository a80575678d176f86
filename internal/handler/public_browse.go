package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints.  Responses
// here sit behind the cache and rate-limit middleware.
type PublicHandler struct {
	Hotels  *repository.HotelRepo
	Rooms   *repository.RoomRepo
	Reviews *repository.ReviewRepo
}

func NewPublicHandler(h *repository.HotelRepo, r *repository.RoomRepo, rv *repository.ReviewRepo) *PublicHandler {
	return &PublicHandler{Hotels: h, Rooms: r, Reviews: rv}
}

func atoiQuery(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return n, nil
}

func dateQuery(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, errors.New(name + " must be a YYYY-MM-DD date")
	}
	return &t, nil
}

// ListHotels returns approved hotels matching the optional filters:
// city (address substring), beds, adults (per-room minimums) and a
// check_in/check_out pair that keeps only hotels with a conflict-free
// matching room.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	var (
		q   repository.HotelSearchQuery
		err error
	)
	q.City = strings.TrimSpace(c.QueryParam("city"))
	if q.Beds, err = atoiQuery(c, "beds"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if q.Adults, err = atoiQuery(c, "adults"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if q.CheckIn, err = dateQuery(c, "check_in"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if q.CheckOut, err = dateQuery(c, "check_out"); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if (q.CheckIn == nil) != (q.CheckOut == nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be provided together"})
	}
	if q.CheckIn != nil && !q.CheckIn.Before(*q.CheckOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be before check_out"})
	}
	if page, _ := strconv.Atoi(c.QueryParam("page")); page > 0 {
		q.Page = page
	}
	if size, _ := strconv.Atoi(c.QueryParam("page_size")); size > 0 {
		q.PageSize = size
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hotels, total, err := h.Hotels.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "hotels": hotels})
}

// GetHotel returns one approved hotel with its rooms and reviews.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !hotel.IsApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	}

	rooms, err := h.Rooms.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	reviews, err := h.Reviews.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"hotel":   hotelView(hotel),
		"rooms":   roomViews(rooms),
		"reviews": reviews,
	})
}

// ListReviews returns the reviews for one hotel, newest first.
func (h *PublicHandler) ListReviews(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	reviews, err := h.Reviews.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}
