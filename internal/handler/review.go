package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// ReviewHandler serves the guest review endpoint.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Hotels  *repository.HotelRepo
}

func NewReviewHandler(r *repository.ReviewRepo, h *repository.HotelRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Hotels: h}
}

type reviewReq struct {
	HotelID uint64  `json:"hotel_id"`
	Rating  uint8   `json:"rating"`
	Comment *string `json:"comment"`
}

// Upsert creates the caller's review for a hotel or replaces the
// existing one.  201 on create, 200 on replace.
func (h *ReviewHandler) Upsert(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if trimmed == "" {
			req.Comment = nil
		} else {
			req.Comment = &trimmed
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rv := &model.Review{HotelID: req.HotelID, UserID: userID(c), Rating: req.Rating, Comment: req.Comment}
	created, err := h.Reviews.Upsert(ctx, rv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save review failed"})
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, reviewView(rv))
}
